package primitives

import (
	"errors"
	"testing"
)

func TestParseCompareOp(t *testing.T) {
	tests := []struct {
		in      string
		want    CompareOp
		wantErr bool
	}{
		{"=", OpEq, false},
		{"==", OpEq, false},
		{"!=", OpNe, false},
		{"≠", OpNe, false},
		{"<", OpLt, false},
		{"<=", OpLe, false},
		{"≤", OpLe, false},
		{">", OpGt, false},
		{" >= ", OpGe, false},
		{"≥", OpGe, false},
		{"=<", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCompareOp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCompareOp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidValue) {
			t.Errorf("ParseCompareOp(%q) error %v does not wrap ErrInvalidValue", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCompareOp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCounterUpdate(t *testing.T) {
	tests := []struct {
		in      string
		want    CounterUpdate
		wantErr bool
	}{
		{"*", CounterUpdate{Op: UpdateReset}, false},
		{"0", CounterUpdate{Op: UpdateNoop}, false},
		{"+1", CounterUpdate{Op: UpdateAdd, K: 1}, false},
		{"+12", CounterUpdate{Op: UpdateAdd, K: 12}, false},
		{"+0", CounterUpdate{}, true},
		{"+", CounterUpdate{}, true},
		{"-1", CounterUpdate{}, true},
		{"3", CounterUpdate{}, true},
	}
	for _, tt := range tests {
		got, err := ParseCounterUpdate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCounterUpdate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCounterUpdate(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if err == nil && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestUnionTargets(t *testing.T) {
	got := UnionTargets(TargetsOf("q1", "q2"), TargetsOf("q2", "q3", "q1"))
	want := []string{"q1", "q2", "q3"}
	if len(got) != len(want) {
		t.Fatalf("UnionTargets() = %v, want %v", got, want)
	}
	for i, s := range want {
		if got[i].State != s {
			t.Errorf("target %d = %s, want %s", i, got[i].State, s)
		}
	}

	// SAFA targets differ by insertion choice.
	safa := UnionTargets(
		[]Target{{State: "q1", Insert: None}},
		[]Target{{State: "q1", Insert: "H1"}, {State: "q1", Insert: None}},
	)
	if len(safa) != 2 {
		t.Errorf("UnionTargets() with insertions = %v, want 2 targets", safa)
	}
}

func TestTargetsOfCollapsesDuplicates(t *testing.T) {
	if got := TargetsOf("q1", "q1", "q0"); len(got) != 2 {
		t.Errorf("TargetsOf() = %v, want 2 targets", got)
	}
}

func TestTransitionCloneIsDeep(t *testing.T) {
	tr := Transition{Source: "q0", Symbol: "a", Targets: TargetsOf("q1")}
	c := tr.Clone()
	c.Targets[0].State = "q9"
	if tr.Targets[0].State != "q1" {
		t.Error("Clone shares Targets")
	}
}
