// Package primitives defines the foundational data structures for automaton specifications.
// Transition carries a source, an input symbol, a kind-specific guard and
// instruction, and a non-empty target set. Fields a kind does not use stay zero.
package primitives

import (
	"fmt"
	"strconv"
	"strings"
)

// CompareOp is a CCA counter comparison.
type CompareOp string

const (
	OpEq CompareOp = "="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// ParseCompareOp accepts the ASCII operators and their unicode spellings.
func ParseCompareOp(s string) (CompareOp, error) {
	switch strings.TrimSpace(s) {
	case "=", "==":
		return OpEq, nil
	case "!=", "≠":
		return OpNe, nil
	case "<":
		return OpLt, nil
	case "<=", "≤":
		return OpLe, nil
	case ">":
		return OpGt, nil
	case ">=", "≥":
		return OpGe, nil
	}
	return "", fmt.Errorf("%w: comparison operator %q", ErrInvalidValue, s)
}

// UpdateOp is the kind of CCA counter update.
type UpdateOp string

const (
	UpdateReset UpdateOp = "*"
	UpdateNoop  UpdateOp = "0"
	UpdateAdd   UpdateOp = "+"
)

// CounterUpdate is the CCA instruction: reset, no-op, or add K.
type CounterUpdate struct {
	Op UpdateOp `json:"op,omitempty" yaml:"op,omitempty"`
	K  int      `json:"k,omitempty" yaml:"k,omitempty"`
}

// ParseCounterUpdate parses "*", "0" or "+k" (k >= 1).
func ParseCounterUpdate(s string) (CounterUpdate, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == string(UpdateReset):
		return CounterUpdate{Op: UpdateReset}, nil
	case s == string(UpdateNoop):
		return CounterUpdate{Op: UpdateNoop}, nil
	case strings.HasPrefix(s, "+"):
		k, err := strconv.Atoi(s[1:])
		if err != nil || k < 1 {
			return CounterUpdate{}, fmt.Errorf("%w: counter update %q must be +k with k >= 1", ErrInvalidValue, s)
		}
		return CounterUpdate{Op: UpdateAdd, K: k}, nil
	}
	return CounterUpdate{}, fmt.Errorf("%w: counter update %q (want *, 0 or +k)", ErrInvalidValue, s)
}

// String renders the update in its input notation.
func (u CounterUpdate) String() string {
	if u.Op == UpdateAdd {
		return fmt.Sprintf("+%d", u.K)
	}
	return string(u.Op)
}

// Guard is the kind-specific transition predicate.
//
//	SAFA: Set + Member (Member=true is p(), false is !p())
//	CCA:  Op + Threshold
//	CMA:  Last (a state label or None)
type Guard struct {
	Set       string    `json:"set,omitempty" yaml:"set,omitempty"`
	Member    bool      `json:"member,omitempty" yaml:"member,omitempty"`
	Op        CompareOp `json:"op,omitempty" yaml:"op,omitempty"`
	Threshold int       `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Last      string    `json:"last,omitempty" yaml:"last,omitempty"`
}

// Target is one member of a target set. Insert is only meaningful for SAFA,
// where each target carries its own insertion choice (a set name or None).
type Target struct {
	State  string `json:"state" yaml:"state"`
	Insert string `json:"insert,omitempty" yaml:"insert,omitempty"`
}

func (t Target) String() string {
	if t.Insert == "" {
		return t.State
	}
	return t.State + ":" + t.Insert
}

// Transition is one row of the transition relation.
type Transition struct {
	Source   string        `json:"source" yaml:"source"`
	Symbol   string        `json:"symbol" yaml:"symbol"`
	Register string        `json:"register,omitempty" yaml:"register,omitempty"`
	Guard    Guard         `json:"guard,omitempty" yaml:"guard,omitempty"`
	Update   CounterUpdate `json:"update,omitempty" yaml:"update,omitempty"`
	Targets  []Target      `json:"targets" yaml:"targets"`
}

// GroupKey is the hashable projection of a transition minus its target set.
// Variants zero the fields that are not part of their grouping key.
type GroupKey struct {
	Source   string
	Symbol   string
	Register string
	Guard    Guard
	Update   CounterUpdate
}

// Clone returns a deep copy.
func (t Transition) Clone() Transition {
	t.Targets = append([]Target(nil), t.Targets...)
	return t
}

// TargetStates returns the state labels of the target set in order.
func (t Transition) TargetStates() []string {
	out := make([]string, len(t.Targets))
	for i, tg := range t.Targets {
		out[i] = tg.State
	}
	return out
}

// UnionTargets appends every target of add not already present, keeping
// first-seen order. Duplicate targets collapse.
func UnionTargets(base, add []Target) []Target {
	out := make([]Target, 0, len(base)+len(add))
	seen := make(map[Target]struct{}, len(base)+len(add))
	for _, list := range [][]Target{base, add} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// TargetsOf builds a plain target set from state labels.
func TargetsOf(states ...string) []Target {
	out := make([]Target, 0, len(states))
	for _, s := range states {
		out = append(out, Target{State: s})
	}
	return UnionTargets(nil, out)
}
