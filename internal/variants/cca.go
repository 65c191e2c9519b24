package variants

import (
	"fmt"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// CCA is a class-counting automaton: a counter comparison guard and a
// counter update instruction.
type CCA struct{}

func (CCA) Kind() primitives.Kind { return primitives.CCA }

func (CCA) Capabilities() core.Capabilities {
	return core.Capabilities{MultiInitial: true}
}

func (CCA) GroupKey(t primitives.Transition) primitives.GroupKey {
	return primitives.GroupKey{
		Source: t.Source,
		Symbol: t.Symbol,
		Guard:  primitives.Guard{Op: t.Guard.Op, Threshold: t.Guard.Threshold},
		Update: t.Update,
	}
}

func (CCA) Normalize(t primitives.Transition) primitives.Transition {
	update := t.Update
	if update.Op != primitives.UpdateAdd {
		update.K = 0
	}
	return primitives.Transition{
		Source:  t.Source,
		Symbol:  t.Symbol,
		Guard:   primitives.Guard{Op: t.Guard.Op, Threshold: t.Guard.Threshold},
		Update:  update,
		Targets: plainTargets(t.Targets),
	}
}

func (CCA) CheckTransition(t primitives.Transition, _ *primitives.Model) error {
	if err := checkCommon(t); err != nil {
		return err
	}
	if t.Guard.Op == "" {
		return &primitives.IncompleteTransitionError{Field: "comparison operator"}
	}
	if _, err := primitives.ParseCompareOp(string(t.Guard.Op)); err != nil {
		return err
	}
	if t.Guard.Threshold < 0 {
		return fmt.Errorf("%w: threshold %d must be non-negative", primitives.ErrInvalidValue, t.Guard.Threshold)
	}
	switch t.Update.Op {
	case "":
		return &primitives.IncompleteTransitionError{Field: "counter update"}
	case primitives.UpdateReset, primitives.UpdateNoop:
	case primitives.UpdateAdd:
		if t.Update.K < 1 {
			return fmt.Errorf("%w: counter increment %d must be at least 1", primitives.ErrInvalidValue, t.Update.K)
		}
	default:
		return fmt.Errorf("%w: counter update %q", primitives.ErrInvalidValue, t.Update.Op)
	}
	return nil
}

func (CCA) DeleteScope(m *primitives.Model, pos int) []int { return single(m, pos) }
