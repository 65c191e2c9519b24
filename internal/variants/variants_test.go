package variants

import (
	"errors"
	"testing"

	"github.com/comalice/automatonx/internal/primitives"
)

func TestFor(t *testing.T) {
	for _, k := range primitives.Kinds {
		v, err := For(k)
		if err != nil {
			t.Fatalf("For(%s): %v", k, err)
		}
		if v.Kind() != k {
			t.Errorf("For(%s).Kind() = %s", k, v.Kind())
		}
	}
	if _, err := For("DFA"); !errors.Is(err, primitives.ErrUnsupported) {
		t.Errorf("For(DFA): got %v", err)
	}
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		kind                                       primitives.Kind
		registers, sets, multi, global, emptiness bool
	}{
		{primitives.NFA, false, false, true, false, true},
		{primitives.RA, true, false, false, false, false},
		{primitives.SAFA, false, true, false, false, true},
		{primitives.CCA, false, false, true, false, false},
		{primitives.CMA, false, false, false, true, false},
	}
	for _, tt := range tests {
		c := MustFor(tt.kind).Capabilities()
		if c.Registers != tt.registers || c.Sets != tt.sets || c.MultiInitial != tt.multi ||
			c.GlobalAccepting != tt.global || c.Emptiness != tt.emptiness {
			t.Errorf("%s capabilities = %+v", tt.kind, c)
		}
		if c.MultiInitial != tt.kind.MultiInitial() {
			t.Errorf("%s: MultiInitial capability disagrees with the kind", tt.kind)
		}
	}
}

func TestGroupKeyIgnoresTargets(t *testing.T) {
	a := primitives.Transition{
		Source:   "q0",
		Symbol:   "a",
		Register: "1",
		Guard:    primitives.Guard{Set: "H", Member: true, Op: primitives.OpGe, Threshold: 1, Last: "q0"},
		Update:   primitives.CounterUpdate{Op: primitives.UpdateReset},
		Targets:  primitives.TargetsOf("q1"),
	}
	b := a
	b.Targets = primitives.TargetsOf("q2")
	for _, k := range primitives.Kinds {
		v := MustFor(k)
		if v.GroupKey(a) != v.GroupKey(b) {
			t.Errorf("%s: group key depends on targets", k)
		}
	}
}

func TestGroupKeyFields(t *testing.T) {
	base := primitives.Transition{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q1")}
	withRegister := base
	withRegister.Register = "2"
	withLast := base
	withLast.Guard.Last = "q1"

	if (NFA{}).GroupKey(base) != (NFA{}).GroupKey(withRegister) {
		t.Error("NFA key must ignore register")
	}
	if (RA{}).GroupKey(base) == (RA{}).GroupKey(withRegister) {
		t.Error("RA key must include register")
	}
	if (CMA{}).GroupKey(base) == (CMA{}).GroupKey(withLast) {
		t.Error("CMA key must include last-occurrence state")
	}
	if (CCA{}).GroupKey(base) != (CCA{}).GroupKey(withLast) {
		t.Error("CCA key must ignore last-occurrence state")
	}
}

func TestNormalize(t *testing.T) {
	in := primitives.Transition{
		Source:   "q0",
		Symbol:   "a",
		Register: "1",
		Guard:    primitives.Guard{Set: "H"},
		Update:   primitives.CounterUpdate{Op: primitives.UpdateReset, K: 4},
		Targets:  []primitives.Target{{State: "q1", Insert: "H"}, {State: "q1", Insert: "H"}},
	}

	nfa := NFA{}.Normalize(in)
	if nfa.Register != "" || nfa.Guard != (primitives.Guard{}) || len(nfa.Targets) != 1 || nfa.Targets[0].Insert != "" {
		t.Errorf("NFA normalize = %+v", nfa)
	}
	safa := SAFA{}.Normalize(primitives.Transition{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q1")})
	if safa.Targets[0].Insert != primitives.None {
		t.Errorf("SAFA insertion = %q, want %q", safa.Targets[0].Insert, primitives.None)
	}
	cca := CCA{}.Normalize(in)
	if cca.Update.K != 0 {
		t.Errorf("CCA reset kept K=%d", cca.Update.K)
	}
	cma := CMA{}.Normalize(primitives.Transition{Source: "q0", Symbol: "a"})
	if cma.Guard.Last != primitives.None {
		t.Errorf("CMA last = %q", cma.Guard.Last)
	}
}

func TestCheckTransition(t *testing.T) {
	ok := primitives.TargetsOf("q0")
	tests := []struct {
		name string
		v    interface {
			CheckTransition(primitives.Transition, *primitives.Model) error
		}
		tr      primitives.Transition
		wantErr error
	}{
		{"nfa ok", NFA{}, primitives.Transition{Source: "q0", Symbol: "a", Targets: ok}, nil},
		{"missing source", NFA{}, primitives.Transition{Symbol: "a", Targets: ok}, primitives.ErrIncompleteTransition},
		{"missing symbol", CMA{}, primitives.Transition{Source: "q0", Targets: ok}, primitives.ErrIncompleteTransition},
		{"ra missing register", RA{}, primitives.Transition{Source: "q0", Symbol: "a", Targets: ok}, primitives.ErrIncompleteTransition},
		{"safa missing set", SAFA{}, primitives.Transition{Source: "q0", Symbol: "a", Targets: ok}, primitives.ErrIncompleteTransition},
		{"cca missing op", CCA{}, primitives.Transition{Source: "q0", Symbol: "a", Update: primitives.CounterUpdate{Op: primitives.UpdateNoop}, Targets: ok}, primitives.ErrIncompleteTransition},
		{
			"cca negative threshold", CCA{},
			primitives.Transition{Source: "q0", Symbol: "a", Guard: primitives.Guard{Op: primitives.OpEq, Threshold: -1}, Update: primitives.CounterUpdate{Op: primitives.UpdateNoop}, Targets: ok},
			primitives.ErrInvalidValue,
		},
		{
			"cca zero increment", CCA{},
			primitives.Transition{Source: "q0", Symbol: "a", Guard: primitives.Guard{Op: primitives.OpEq}, Update: primitives.CounterUpdate{Op: primitives.UpdateAdd}, Targets: ok},
			primitives.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.CheckTransition(tt.tr, nil)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteScope(t *testing.T) {
	m := &primitives.Model{Transitions: []primitives.Transition{
		{Source: "q0", Symbol: "a"},
		{Source: "q1", Symbol: "a"},
		{Source: "q0", Symbol: "a", Register: "2"},
	}}
	if got := (NFA{}).DeleteScope(m, 2); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("NFA scope = %v, want [0 2]", got)
	}
	if got := (RA{}).DeleteScope(m, 2); len(got) != 1 || got[0] != 2 {
		t.Errorf("RA scope = %v, want [2]", got)
	}
	if got := (CCA{}).DeleteScope(m, 9); got != nil {
		t.Errorf("out of range scope = %v", got)
	}
}
