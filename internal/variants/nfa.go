package variants

import (
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// NFA is a nondeterministic finite automaton with ε-moves.
type NFA struct{}

func (NFA) Kind() primitives.Kind { return primitives.NFA }

func (NFA) Capabilities() core.Capabilities {
	return core.Capabilities{MultiInitial: true, Epsilon: true, Emptiness: true}
}

func (NFA) GroupKey(t primitives.Transition) primitives.GroupKey {
	return primitives.GroupKey{Source: t.Source, Symbol: t.Symbol}
}

func (NFA) Normalize(t primitives.Transition) primitives.Transition {
	return primitives.Transition{Source: t.Source, Symbol: t.Symbol, Targets: plainTargets(t.Targets)}
}

func (NFA) CheckTransition(t primitives.Transition, _ *primitives.Model) error {
	return checkCommon(t)
}

// DeleteScope removes every row sharing (source, symbol) with the row at pos.
func (v NFA) DeleteScope(m *primitives.Model, pos int) []int {
	if pos < 0 || pos >= len(m.Transitions) {
		return nil
	}
	key := v.GroupKey(m.Transitions[pos])
	var out []int
	for i, t := range m.Transitions {
		if v.GroupKey(t) == key {
			out = append(out, i)
		}
	}
	return out
}
