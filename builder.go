package automatonx

import (
	"fmt"
	"strings"

	"github.com/comalice/automatonx/internal/primitives"
)

// Builder provides a fluent API for constructing a model. Every call is
// recorded and replayed as an editor command by Build, so a built model has
// passed exactly the checks interactive editing applies, including
// merge-on-add for transitions.
type Builder struct {
	kind  Kind
	steps []step
}

type step struct {
	desc string
	run  func(ed *Editor) error
}

// RuleBuilder configures one transition. Finish it with To/Insert, then
// continue the Builder chain with Done.
type RuleBuilder struct {
	b *Builder
	t Transition
}

// NewBuilder creates a builder for kind.
func NewBuilder(kind Kind) *Builder {
	return &Builder{kind: kind}
}

func (b *Builder) add(desc string, run func(ed *Editor) error) *Builder {
	b.steps = append(b.steps, step{desc: desc, run: run})
	return b
}

// States adds states in order.
func (b *Builder) States(labels ...string) *Builder {
	for _, l := range labels {
		l := l
		b.add("state "+l, func(ed *Editor) error { return ed.AddState(l) })
	}
	return b
}

// Symbols adds alphabet symbols in order.
func (b *Builder) Symbols(labels ...string) *Builder {
	for _, l := range labels {
		l := l
		b.add("symbol "+l, func(ed *Editor) error { return ed.AddSymbol(l) })
	}
	return b
}

// Sets adds SAFA set names in order.
func (b *Builder) Sets(names ...string) *Builder {
	for _, n := range names {
		n := n
		b.add("set "+n, func(ed *Editor) error { return ed.AddSet(n) })
	}
	return b
}

// Register adds an RA register; value is a positive integer or Unset.
func (b *Builder) Register(index, value string) *Builder {
	return b.add("register "+index, func(ed *Editor) error {
		v, err := primitives.ParseRegisterValue(value)
		if err != nil {
			return err
		}
		return ed.AddRegister(index, v)
	})
}

// Transition adds a plain transition from source on symbol to targets.
func (b *Builder) Transition(source, symbol string, targets ...string) *Builder {
	return b.Rule(source, symbol).To(targets...).Done()
}

// Rule starts a transition with kind-specific fields.
func (b *Builder) Rule(source, symbol string) *RuleBuilder {
	return &RuleBuilder{b: b, t: Transition{Source: source, Symbol: symbol}}
}

// Initial sets the initial state(s).
func (b *Builder) Initial(states ...string) *Builder {
	return b.add("initial "+strings.Join(states, ","), func(ed *Editor) error { return ed.SetInitial(states...) })
}

// Accepting sets the accepting states (CMA: local accepting).
func (b *Builder) Accepting(states ...string) *Builder {
	return b.add("accepting "+strings.Join(states, ","), func(ed *Editor) error { return ed.SetAccepting(states...) })
}

// GlobalAccepting sets the CMA global accepting states.
func (b *Builder) GlobalAccepting(states ...string) *Builder {
	return b.add("global accepting "+strings.Join(states, ","), func(ed *Editor) error { return ed.SetGlobalAccepting(states...) })
}

// Update adds an RA update function entry U(state, symbol) = register.
func (b *Builder) Update(state, symbol, register string) *Builder {
	u := UpdateEntry{State: state, Symbol: symbol, Register: register}
	return b.add(fmt.Sprintf("update (%s, %s)", state, symbol), func(ed *Editor) error { return ed.AddUpdate(u) })
}

// TestCase adds a test case in the kind's text notation.
func (b *Builder) TestCase(lines ...string) *Builder {
	for _, l := range lines {
		l := l
		b.add("test case "+l, func(ed *Editor) error { return ed.AddTestCase(l) })
	}
	return b
}

// Describe sets the language description.
func (b *Builder) Describe(text string) *Builder {
	return b.add("description", func(ed *Editor) error { return ed.SetDescription(text) })
}

// Build replays the recorded steps on a new Editor. The first failing step
// aborts the build.
func (b *Builder) Build(opts ...Option) (*Editor, error) {
	ed, err := New(b.kind, opts...)
	if err != nil {
		return nil, err
	}
	for i, s := range b.steps {
		if err := s.run(ed); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.desc, err)
		}
	}
	return ed, nil
}

// Model builds and returns the resulting model.
func (b *Builder) Model() (*Model, error) {
	ed, err := b.Build()
	if err != nil {
		return nil, err
	}
	return ed.Snapshot(), nil
}

// Register sets the RA register compared by the transition.
func (rb *RuleBuilder) Register(index string) *RuleBuilder {
	rb.t.Register = index
	return rb
}

// InSet guards a SAFA transition with p(): the value is in set.
func (rb *RuleBuilder) InSet(set string) *RuleBuilder {
	rb.t.Guard.Set, rb.t.Guard.Member = set, true
	return rb
}

// NotInSet guards a SAFA transition with !p(): the value is not in set.
func (rb *RuleBuilder) NotInSet(set string) *RuleBuilder {
	rb.t.Guard.Set, rb.t.Guard.Member = set, false
	return rb
}

// When guards a CCA transition with "counter op n"; op uses the
// ParseCompareOp spellings.
func (rb *RuleBuilder) When(op string, n int) *RuleBuilder {
	rb.t.Guard.Op, rb.t.Guard.Threshold = primitives.CompareOp(op), n
	return rb
}

// Counter sets the CCA counter update: "*", "0" or "+k".
func (rb *RuleBuilder) Counter(update string) *RuleBuilder {
	u, err := primitives.ParseCounterUpdate(update)
	if err != nil {
		u = CounterUpdate{Op: primitives.UpdateOp(update)}
	}
	rb.t.Update = u
	return rb
}

// Last sets the CMA last-occurrence state (None for no occurrence).
func (rb *RuleBuilder) Last(state string) *RuleBuilder {
	rb.t.Guard.Last = state
	return rb
}

// To appends plain targets.
func (rb *RuleBuilder) To(states ...string) *RuleBuilder {
	for _, s := range states {
		rb.t.Targets = append(rb.t.Targets, Target{State: s})
	}
	return rb
}

// Insert appends a SAFA target that inserts the read value into set.
func (rb *RuleBuilder) Insert(state, set string) *RuleBuilder {
	rb.t.Targets = append(rb.t.Targets, Target{State: state, Insert: set})
	return rb
}

// Done records the transition and returns the Builder.
func (rb *RuleBuilder) Done() *Builder {
	t := rb.t.Clone()
	if op, err := primitives.ParseCompareOp(string(t.Guard.Op)); err == nil {
		t.Guard.Op = op
	}
	return rb.b.add("transition "+FormatTransition(rb.b.kind, t), func(ed *Editor) error {
		return ed.AddTransition(t)
	})
}
