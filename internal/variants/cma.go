package variants

import (
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// CMA is a class-memory automaton. The guard is the state in which the
// current data value last occurred, or None.
type CMA struct{}

func (CMA) Kind() primitives.Kind { return primitives.CMA }

func (CMA) Capabilities() core.Capabilities {
	return core.Capabilities{GlobalAccepting: true}
}

func (CMA) GroupKey(t primitives.Transition) primitives.GroupKey {
	return primitives.GroupKey{Source: t.Source, Symbol: t.Symbol, Guard: primitives.Guard{Last: t.Guard.Last}}
}

func (CMA) Normalize(t primitives.Transition) primitives.Transition {
	last := t.Guard.Last
	if last == "" {
		last = primitives.None
	}
	return primitives.Transition{
		Source:  t.Source,
		Symbol:  t.Symbol,
		Guard:   primitives.Guard{Last: last},
		Targets: plainTargets(t.Targets),
	}
}

func (CMA) CheckTransition(t primitives.Transition, _ *primitives.Model) error {
	return checkCommon(t)
}

func (CMA) DeleteScope(m *primitives.Model, pos int) []int { return single(m, pos) }
