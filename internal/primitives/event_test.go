package primitives

import "testing"

func TestNewEvent(t *testing.T) {
	e := NewEvent("state.rename", EntityState, "q1", "q0")
	if e.Type != "state.rename" {
		t.Errorf("got Type=%q want state.rename", e.Type)
	}
	if e.Entity != EntityState || e.Label != "q1" {
		t.Errorf("got Entity=%q Label=%q", e.Entity, e.Label)
	}
	if v, ok := e.Data.(string); !ok || v != "q0" {
		t.Errorf("got Data=%v (%T) want q0", e.Data, e.Data)
	}
}

func TestEventImmutability(t *testing.T) {
	e := NewEvent("symbol.add", EntitySymbol, "a", nil)
	eCopy := e
	eCopy.Type = "modified"
	eCopy.Label = "b"
	if e.Type != "symbol.add" {
		t.Error("original Type was mutated")
	}
	if e.Label != "a" {
		t.Error("original Label was mutated")
	}
}
