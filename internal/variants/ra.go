package variants

import (
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// RA is a register automaton. Each transition names the register it
// tests or updates.
type RA struct{}

func (RA) Kind() primitives.Kind { return primitives.RA }

func (RA) Capabilities() core.Capabilities {
	return core.Capabilities{Registers: true}
}

func (RA) GroupKey(t primitives.Transition) primitives.GroupKey {
	return primitives.GroupKey{Source: t.Source, Symbol: t.Symbol, Register: t.Register}
}

func (RA) Normalize(t primitives.Transition) primitives.Transition {
	return primitives.Transition{
		Source:   t.Source,
		Symbol:   t.Symbol,
		Register: t.Register,
		Targets:  plainTargets(t.Targets),
	}
}

func (RA) CheckTransition(t primitives.Transition, _ *primitives.Model) error {
	if err := checkCommon(t); err != nil {
		return err
	}
	if t.Register == "" {
		return &primitives.IncompleteTransitionError{Field: "register"}
	}
	return nil
}

func (RA) DeleteScope(m *primitives.Model, pos int) []int { return single(m, pos) }
