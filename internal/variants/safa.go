package variants

import (
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// SAFA is a set-augmented finite automaton. The guard tests membership in
// an auxiliary set; each target carries its own insertion choice.
type SAFA struct{}

func (SAFA) Kind() primitives.Kind { return primitives.SAFA }

func (SAFA) Capabilities() core.Capabilities {
	return core.Capabilities{Sets: true, Emptiness: true}
}

func (SAFA) GroupKey(t primitives.Transition) primitives.GroupKey {
	return primitives.GroupKey{
		Source: t.Source,
		Symbol: t.Symbol,
		Guard:  primitives.Guard{Set: t.Guard.Set, Member: t.Guard.Member},
	}
}

func (SAFA) Normalize(t primitives.Transition) primitives.Transition {
	targets := make([]primitives.Target, 0, len(t.Targets))
	for _, tg := range t.Targets {
		if tg.Insert == "" {
			tg.Insert = primitives.None
		}
		targets = append(targets, tg)
	}
	return primitives.Transition{
		Source:  t.Source,
		Symbol:  t.Symbol,
		Guard:   primitives.Guard{Set: t.Guard.Set, Member: t.Guard.Member},
		Targets: primitives.UnionTargets(nil, targets),
	}
}

func (SAFA) CheckTransition(t primitives.Transition, _ *primitives.Model) error {
	if err := checkCommon(t); err != nil {
		return err
	}
	if t.Guard.Set == "" {
		return &primitives.IncompleteTransitionError{Field: "guard set"}
	}
	return nil
}

func (SAFA) DeleteScope(m *primitives.Model, pos int) []int { return single(m, pos) }
