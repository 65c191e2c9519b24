package core

import (
	"fmt"
	"strings"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// AddUpdate adds an RA update-function entry mapping (state, symbol) to a
// register. A second entry for the same (state, symbol) is rejected.
func (e *Editor) AddUpdate(u primitives.UpdateEntry) error {
	u = trimUpdate(u)
	return e.command("update.add", primitives.EntityUpdate, updateLabel(u), func(m *primitives.Model) error {
		if err := e.checkUpdate(u); err != nil {
			return err
		}
		if m.UpdateIndex(u.Key()) >= 0 {
			return &primitives.DuplicateEntityError{Entity: primitives.EntityUpdate, Label: updateLabel(u)}
		}
		m.Updates = append(m.Updates, u)
		return nil
	})
}

// ReplaceUpdate overwrites the entry at pos.
func (e *Editor) ReplaceUpdate(pos int, u primitives.UpdateEntry) error {
	u = trimUpdate(u)
	return e.command("update.replace", primitives.EntityUpdate, updateLabel(u), func(m *primitives.Model) error {
		return e.replaceUpdateIn(m, pos, u)
	})
}

func (e *Editor) replaceUpdateIn(m *primitives.Model, pos int, u primitives.UpdateEntry) error {
	if err := e.checkUpdate(u); err != nil {
		return err
	}
	if err := checkPos(primitives.EntityUpdate, pos, len(m.Updates)); err != nil {
		return err
	}
	if i := m.UpdateIndex(u.Key()); i >= 0 && i != pos {
		return &primitives.DuplicateEntityError{Entity: primitives.EntityUpdate, Label: updateLabel(u)}
	}
	m.Updates[pos] = u
	return nil
}

// DeleteUpdate removes the entry at pos. Nothing references update entries,
// so no integrity check applies.
func (e *Editor) DeleteUpdate(pos int) error {
	return e.command("update.delete", primitives.EntityUpdate, "", func(m *primitives.Model) error {
		if !e.variant.Capabilities().Registers {
			return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "update function"}
		}
		if err := checkPos(primitives.EntityUpdate, pos, len(m.Updates)); err != nil {
			return err
		}
		m.Updates = slices.Delete(m.Updates, pos, pos+1)
		return nil
	})
}

func (e *Editor) checkUpdate(u primitives.UpdateEntry) error {
	if !e.variant.Capabilities().Registers {
		return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "update function"}
	}
	for _, f := range []struct{ name, value string }{
		{"state", u.State},
		{"symbol", u.Symbol},
		{"register", u.Register},
	} {
		if f.value == "" {
			return &primitives.IncompleteTransitionError{Entity: primitives.EntityUpdate, Field: f.name}
		}
	}
	return nil
}

func trimUpdate(u primitives.UpdateEntry) primitives.UpdateEntry {
	return primitives.UpdateEntry{
		State:    strings.TrimSpace(u.State),
		Symbol:   strings.TrimSpace(u.Symbol),
		Register: strings.TrimSpace(u.Register),
	}
}

func updateLabel(u primitives.UpdateEntry) string {
	return fmt.Sprintf("for state %s and symbol %s", u.State, u.Symbol)
}
