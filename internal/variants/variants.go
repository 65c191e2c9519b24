// Package variants provides the per-kind rules plugged into core.Editor.
package variants

import (
	"fmt"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

var registry = map[primitives.Kind]core.Variant{
	primitives.NFA:  NFA{},
	primitives.RA:   RA{},
	primitives.SAFA: SAFA{},
	primitives.CCA:  CCA{},
	primitives.CMA:  CMA{},
}

// For returns the variant of kind.
func For(kind primitives.Kind) (core.Variant, error) {
	v, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown automaton kind %q", primitives.ErrUnsupported, kind)
	}
	return v, nil
}

// MustFor is For for kinds known at compile time.
func MustFor(kind primitives.Kind) core.Variant {
	v, err := For(kind)
	if err != nil {
		panic(err)
	}
	return v
}

// checkCommon holds the completeness checks shared by every kind.
func checkCommon(t primitives.Transition) error {
	switch {
	case t.Source == "":
		return &primitives.IncompleteTransitionError{Field: "source"}
	case t.Symbol == "":
		return &primitives.IncompleteTransitionError{Field: "symbol"}
	case len(t.Targets) == 0:
		return &primitives.IncompleteTransitionError{Field: "targets"}
	}
	for _, tg := range t.Targets {
		if tg.State == "" {
			return &primitives.IncompleteTransitionError{Field: "target state"}
		}
	}
	return nil
}

func plainTargets(targets []primitives.Target) []primitives.Target {
	out := make([]primitives.Target, 0, len(targets))
	for _, tg := range targets {
		out = append(out, primitives.Target{State: tg.State})
	}
	return primitives.UnionTargets(nil, out)
}

// single returns the row itself; every kind except NFA deletes one row.
func single(m *primitives.Model, pos int) []int {
	if pos < 0 || pos >= len(m.Transitions) {
		return nil
	}
	return []int{pos}
}
