package core

import (
	"log/slog"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// AddTransition adds t to the transition relation. If a row with the same
// grouping key exists, its target set becomes the union of both target sets;
// otherwise t is appended. Re-adding an identical transition is a no-op.
func (e *Editor) AddTransition(t primitives.Transition) error {
	t = e.variant.Normalize(t)
	return e.command("transition.add", primitives.EntityTransition, t.Source, func(m *primitives.Model) error {
		if err := e.variant.CheckTransition(t, m); err != nil {
			return err
		}
		key := e.variant.GroupKey(t)
		i := slices.IndexFunc(m.Transitions, func(existing primitives.Transition) bool {
			return e.variant.GroupKey(existing) == key
		})
		if i < 0 {
			m.Transitions = append(m.Transitions, t)
			return nil
		}
		m.Transitions[i].Targets = primitives.UnionTargets(m.Transitions[i].Targets, t.Targets)
		e.logger.Debug("transition merged", slog.Int("row", i+1), slog.String("source", t.Source), slog.String("symbol", t.Symbol))
		return nil
	})
}

// ReplaceTransition overwrites the row at pos with t. It never merges, even
// when t shares a grouping key with another row.
func (e *Editor) ReplaceTransition(pos int, t primitives.Transition) error {
	t = e.variant.Normalize(t)
	return e.command("transition.replace", primitives.EntityTransition, t.Source, func(m *primitives.Model) error {
		return e.replaceTransitionIn(m, pos, t)
	})
}

func (e *Editor) replaceTransitionIn(m *primitives.Model, pos int, t primitives.Transition) error {
	if err := checkPos(primitives.EntityTransition, pos, len(m.Transitions)); err != nil {
		return err
	}
	if err := e.variant.CheckTransition(t, m); err != nil {
		return err
	}
	m.Transitions[pos] = t
	return nil
}

// DeleteTransition removes the row at pos. For NFA every row sharing its
// (source, symbol) pair is removed too; see Variant.DeleteScope.
func (e *Editor) DeleteTransition(pos int) error {
	return e.command("transition.delete", primitives.EntityTransition, "", func(m *primitives.Model) error {
		if err := checkPos(primitives.EntityTransition, pos, len(m.Transitions)); err != nil {
			return err
		}
		scope := e.variant.DeleteScope(m, pos)
		kept := m.Transitions[:0]
		for i, t := range m.Transitions {
			if !slices.Contains(scope, i) {
				kept = append(kept, t)
			}
		}
		m.Transitions = kept
		return nil
	})
}
