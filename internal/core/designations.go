package core

import (
	"fmt"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// SetInitial replaces the initial designation. Kinds without MultiInitial
// accept at most one state.
func (e *Editor) SetInitial(states ...string) error {
	return e.command("initial.set", primitives.EntityState, "", func(m *primitives.Model) error {
		states = dedupe(states)
		if len(states) > 1 && !e.variant.Capabilities().MultiInitial {
			return fmt.Errorf("%w: %s has a single initial state, got %d", primitives.ErrInvalidValue, e.variant.Kind(), len(states))
		}
		m.Initial = states
		return nil
	})
}

// ToggleInitial adds or removes state from the initial designation. For
// single-initial kinds selecting a state replaces the previous one.
func (e *Editor) ToggleInitial(state string) error {
	return e.command("initial.toggle", primitives.EntityState, state, func(m *primitives.Model) error {
		if e.variant.Capabilities().MultiInitial {
			m.Initial = toggle(m.Initial, state)
			return nil
		}
		if slices.Contains(m.Initial, state) {
			m.Initial = nil
		} else {
			m.Initial = []string{state}
		}
		return nil
	})
}

// SetAccepting replaces the accepting set (Fl for CMA).
func (e *Editor) SetAccepting(states ...string) error {
	return e.command("accepting.set", primitives.EntityState, "", func(m *primitives.Model) error {
		m.Accepting = dedupe(states)
		return nil
	})
}

// ToggleAccepting adds or removes state from the accepting set.
func (e *Editor) ToggleAccepting(state string) error {
	return e.command("accepting.toggle", primitives.EntityState, state, func(m *primitives.Model) error {
		m.Accepting = toggle(m.Accepting, state)
		return nil
	})
}

// SetGlobalAccepting replaces the CMA global accepting set Fg.
func (e *Editor) SetGlobalAccepting(states ...string) error {
	return e.command("global-accepting.set", primitives.EntityState, "", func(m *primitives.Model) error {
		if !e.variant.Capabilities().GlobalAccepting {
			return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "global accepting states"}
		}
		m.GlobalAccepting = dedupe(states)
		return nil
	})
}

// ToggleGlobalAccepting adds or removes state from Fg.
func (e *Editor) ToggleGlobalAccepting(state string) error {
	return e.command("global-accepting.toggle", primitives.EntityState, state, func(m *primitives.Model) error {
		if !e.variant.Capabilities().GlobalAccepting {
			return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "global accepting states"}
		}
		m.GlobalAccepting = toggle(m.GlobalAccepting, state)
		return nil
	})
}

func dedupe(labels []string) []string {
	var out []string
	for _, l := range labels {
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}

func toggle(labels []string, label string) []string {
	if i := slices.Index(labels, label); i >= 0 {
		return slices.Delete(slices.Clone(labels), i, i+1)
	}
	return append(slices.Clone(labels), label)
}
