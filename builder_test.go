package automatonx_test

import (
	"errors"
	"testing"

	"github.com/comalice/automatonx"
)

func TestBuilderNFAMergesTargets(t *testing.T) {
	m, err := automatonx.NewBuilder(automatonx.NFA).
		States("q0", "q1").
		Symbols("a").
		Transition("q0", "a", "q0").
		Transition("q0", "a", "q1").
		Transition("q0", automatonx.Epsilon, "q1").
		Initial("q0").
		Accepting("q1").
		Model()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Transitions) != 2 {
		t.Fatalf("expected merged rows, got %d", len(m.Transitions))
	}
	if got := m.Transitions[0].TargetStates(); len(got) != 2 || got[0] != "q0" || got[1] != "q1" {
		t.Errorf("targets = %v, want [q0 q1]", got)
	}
}

func TestBuilderRA(t *testing.T) {
	m, err := automatonx.NewBuilder(automatonx.RA).
		States("q0", "q1").
		Symbols("a").
		Register("1", "4").
		Register("2", automatonx.Unset).
		Rule("q0", "a").Register("1").To("q1").Done().
		Update("q0", "a", "2").
		Initial("q0").
		TestCase("(a,4),(a,⊥)").
		Model()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Registers) != 2 || m.Registers[1].Initial != nil {
		t.Errorf("registers = %+v", m.Registers)
	}
	if len(m.Updates) != 1 || len(m.TestCases) != 1 {
		t.Errorf("updates %+v, test cases %+v", m.Updates, m.TestCases)
	}
}

func TestBuilderSAFA(t *testing.T) {
	m, err := automatonx.NewBuilder(automatonx.SAFA).
		States("q0").
		Symbols("a").
		Sets("H1").
		Rule("q0", "a").NotInSet("H1").Insert("q0", "H1").Done().
		Rule("q0", "a").InSet("H1").To("q0").Done().
		Initial("q0").
		Model()
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Transitions) != 2 {
		t.Fatalf("guards differ, want 2 rows, got %d", len(m.Transitions))
	}
	if m.Transitions[1].Targets[0].Insert != automatonx.None {
		t.Errorf("missing insertion defaults to None, got %q", m.Transitions[1].Targets[0].Insert)
	}
}

func TestBuilderCCAAndCMA(t *testing.T) {
	if _, err := automatonx.NewBuilder(automatonx.CCA).
		States("q0").
		Symbols("a").
		Rule("q0", "a").When("≤", 2).Counter("+1").To("q0").Done().
		Initial("q0").
		Model(); err != nil {
		t.Fatal(err)
	}

	m, err := automatonx.NewBuilder(automatonx.CMA).
		States("q0", "q1").
		Symbols("a").
		Rule("q0", "a").Last(automatonx.None).To("q1").Done().
		Rule("q1", "a").Last("q0").To("q1").Done().
		Initial("q0").
		Accepting("q1").
		GlobalAccepting("q1").
		Describe("data words where a repeats").
		Model()
	if err != nil {
		t.Fatal(err)
	}
	if m.Description == "" || len(m.GlobalAccepting) != 1 {
		t.Errorf("unexpected model %+v", m)
	}
}

func TestBuilderReportsFailingStep(t *testing.T) {
	_, err := automatonx.NewBuilder(automatonx.NFA).
		States("q0", "q0").
		Build()
	if !errors.Is(err, automatonx.ErrDuplicateEntity) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = automatonx.NewBuilder(automatonx.CCA).
		States("q0").
		Symbols("a").
		Rule("q0", "a").When("<", 1).Counter("+0").To("q0").Done().
		Build()
	if err == nil {
		t.Fatal("expected invalid counter update to fail")
	}

	_, err = automatonx.NewBuilder(automatonx.RA).
		States("q0", "q1").
		Initial("q0", "q1").
		Build()
	if err == nil {
		t.Fatal("RA takes a single initial state")
	}
}
