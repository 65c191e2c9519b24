// Package primitives defines the foundational data structures for automaton specifications.
//
// Model is the complete, serializable snapshot of one automaton specification:
// entity collections, the transition relation, designations, the RA update
// function and the stored test cases.
// Validation checks label uniqueness, reference existence and target-set shape.
package primitives

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Model defines a complete automaton specification.
type Model struct {
	Kind            Kind          `json:"kind" yaml:"kind"`
	Description     string        `json:"description,omitempty" yaml:"description,omitempty"`
	States          []string      `json:"states" yaml:"states"`
	Alphabet        []string      `json:"alphabet" yaml:"alphabet"`
	Registers       []Register    `json:"registers,omitempty" yaml:"registers,omitempty"`
	Sets            []string      `json:"sets,omitempty" yaml:"sets,omitempty"`
	Transitions     []Transition  `json:"transitions" yaml:"transitions"`
	Initial         []string      `json:"initial" yaml:"initial"`
	Accepting       []string      `json:"accepting" yaml:"accepting"`
	GlobalAccepting []string      `json:"globalAccepting,omitempty" yaml:"globalAccepting,omitempty"`
	Updates         []UpdateEntry `json:"updates,omitempty" yaml:"updates,omitempty"`
	TestCases       []TestCase    `json:"testCases,omitempty" yaml:"testCases,omitempty"`
}

// NewModel returns an empty model of the given kind.
func NewModel(kind Kind) *Model {
	return &Model{Kind: kind}
}

// Clone returns a deep copy sharing no slices with m.
func (m *Model) Clone() *Model {
	c := *m
	c.States = slices.Clone(m.States)
	c.Alphabet = slices.Clone(m.Alphabet)
	c.Sets = slices.Clone(m.Sets)
	c.Initial = slices.Clone(m.Initial)
	c.Accepting = slices.Clone(m.Accepting)
	c.GlobalAccepting = slices.Clone(m.GlobalAccepting)
	c.Updates = slices.Clone(m.Updates)
	if m.Registers != nil {
		c.Registers = make([]Register, len(m.Registers))
		for i, r := range m.Registers {
			c.Registers[i] = Register{Index: r.Index}
			if r.Initial != nil {
				c.Registers[i].Initial = IntPtr(*r.Initial)
			}
		}
	}
	if m.Transitions != nil {
		c.Transitions = make([]Transition, len(m.Transitions))
		for i, t := range m.Transitions {
			c.Transitions[i] = t.Clone()
		}
	}
	if m.TestCases != nil {
		c.TestCases = make([]TestCase, len(m.TestCases))
		for i, tc := range m.TestCases {
			c.TestCases[i] = tc.Clone()
		}
	}
	return &c
}

// HasState reports whether label is a state.
func (m *Model) HasState(label string) bool { return slices.Contains(m.States, label) }

// HasSymbol reports whether label is an alphabet symbol.
func (m *Model) HasSymbol(label string) bool { return slices.Contains(m.Alphabet, label) }

// HasSet reports whether label is an auxiliary set name.
func (m *Model) HasSet(label string) bool { return slices.Contains(m.Sets, label) }

// RegisterIndex returns the position of the register with the given index, or -1.
func (m *Model) RegisterIndex(index string) int {
	return slices.IndexFunc(m.Registers, func(r Register) bool { return r.Index == index })
}

// UpdateIndex returns the position of the update entry for key, or -1.
func (m *Model) UpdateIndex(key UpdateKey) int {
	return slices.IndexFunc(m.Updates, func(u UpdateEntry) bool { return u.Key() == key })
}

// Validate checks the structural invariants of the snapshot:
// - Known Kind
// - Unique, non-empty labels per collection
// - Every transition/designation/update reference exists
// - Non-empty, duplicate-free target sets
// - At most one initial state unless the kind admits several
func (m *Model) Validate() error {
	if _, err := ParseKind(string(m.Kind)); err != nil {
		return err
	}
	if err := uniqueLabels(EntityState, m.States); err != nil {
		return err
	}
	if err := uniqueLabels(EntitySymbol, m.Alphabet); err != nil {
		return err
	}
	if err := uniqueLabels(EntitySet, m.Sets); err != nil {
		return err
	}
	indexes := make([]string, len(m.Registers))
	for i, r := range m.Registers {
		indexes[i] = r.Index
		if r.Initial != nil && *r.Initial <= 0 {
			return fmt.Errorf("register %q: %w: initial value must be positive", r.Index, ErrInvalidValue)
		}
	}
	if err := uniqueLabels(EntityRegister, indexes); err != nil {
		return err
	}

	for i, t := range m.Transitions {
		if err := m.validateTransition(t); err != nil {
			return fmt.Errorf("transition %d: %w", i+1, err)
		}
	}

	for _, d := range []struct {
		name   string
		states []string
	}{
		{"initial", m.Initial},
		{"accepting", m.Accepting},
		{"global accepting", m.GlobalAccepting},
	} {
		for _, s := range d.states {
			if !m.HasState(s) {
				return &UnknownEntityError{Entity: EntityState, Label: s, Field: d.name}
			}
		}
	}
	if len(m.Initial) > 1 && !m.Kind.MultiInitial() {
		return fmt.Errorf("%w: %s has a single initial state, got %d", ErrInvalidValue, m.Kind, len(m.Initial))
	}

	seen := make(map[UpdateKey]struct{}, len(m.Updates))
	for i, u := range m.Updates {
		if _, dup := seen[u.Key()]; dup {
			return &DuplicateEntityError{Entity: EntityUpdate, Label: fmt.Sprintf("for state %s and symbol %s", u.State, u.Symbol)}
		}
		seen[u.Key()] = struct{}{}
		field := fmt.Sprintf("update %d", i+1)
		if !m.HasState(u.State) {
			return &UnknownEntityError{Entity: EntityState, Label: u.State, Field: field}
		}
		if !m.HasSymbol(u.Symbol) {
			return &UnknownEntityError{Entity: EntitySymbol, Label: u.Symbol, Field: field}
		}
		if m.RegisterIndex(u.Register) < 0 {
			return &UnknownEntityError{Entity: EntityRegister, Label: u.Register, Field: field}
		}
	}
	return nil
}

func (m *Model) validateTransition(t Transition) error {
	if !m.HasState(t.Source) {
		return &UnknownEntityError{Entity: EntityState, Label: t.Source, Field: "source"}
	}
	if !m.HasSymbol(t.Symbol) && !(m.Kind == NFA && t.Symbol == Epsilon) {
		return &UnknownEntityError{Entity: EntitySymbol, Label: t.Symbol, Field: "symbol"}
	}
	if t.Register != "" && m.RegisterIndex(t.Register) < 0 {
		return &UnknownEntityError{Entity: EntityRegister, Label: t.Register, Field: "register"}
	}
	if t.Guard.Set != "" && !m.HasSet(t.Guard.Set) {
		return &UnknownEntityError{Entity: EntitySet, Label: t.Guard.Set, Field: "guard"}
	}
	if t.Guard.Last != "" && t.Guard.Last != None && !m.HasState(t.Guard.Last) {
		return &UnknownEntityError{Entity: EntityState, Label: t.Guard.Last, Field: "last occurrence"}
	}
	if len(t.Targets) == 0 {
		return &IncompleteTransitionError{Field: "targets"}
	}
	seen := make(map[Target]struct{}, len(t.Targets))
	for _, tg := range t.Targets {
		if _, dup := seen[tg]; dup {
			return fmt.Errorf("duplicate target %s", tg)
		}
		seen[tg] = struct{}{}
		if !m.HasState(tg.State) {
			return &UnknownEntityError{Entity: EntityState, Label: tg.State, Field: "target"}
		}
		if tg.Insert != "" && tg.Insert != None && !m.HasSet(tg.Insert) {
			return &UnknownEntityError{Entity: EntitySet, Label: tg.Insert, Field: "target insertion"}
		}
	}
	return nil
}

func uniqueLabels(entity EntityType, labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l == "" {
			return fmt.Errorf("%s label is required: %w", entity, errors.New("empty label"))
		}
		if _, dup := seen[l]; dup {
			return &DuplicateEntityError{Entity: entity, Label: l}
		}
		seen[l] = struct{}{}
	}
	return nil
}
