package primitives

import (
	"errors"
	"testing"
)

func sampleNFA() *Model {
	return &Model{
		Kind:     NFA,
		States:   []string{"q0", "q1"},
		Alphabet: []string{"a", "b"},
		Transitions: []Transition{
			{Source: "q0", Symbol: "a", Targets: TargetsOf("q1")},
			{Source: "q1", Symbol: Epsilon, Targets: TargetsOf("q0")},
		},
		Initial:   []string{"q0"},
		Accepting: []string{"q1"},
	}
}

func TestModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *Model)
		wantErr error
	}{
		{
			name:   "valid nfa",
			mutate: func(m *Model) {},
		},
		{
			name:    "unknown kind",
			mutate:  func(m *Model) { m.Kind = "DFA" },
			wantErr: ErrUnsupported,
		},
		{
			name:    "duplicate state",
			mutate:  func(m *Model) { m.States = append(m.States, "q0") },
			wantErr: ErrDuplicateEntity,
		},
		{
			name:    "unknown transition source",
			mutate:  func(m *Model) { m.Transitions[0].Source = "q9" },
			wantErr: ErrUnknownEntity,
		},
		{
			name:    "unknown target",
			mutate:  func(m *Model) { m.Transitions[0].Targets = TargetsOf("q9") },
			wantErr: ErrUnknownEntity,
		},
		{
			name:    "empty targets",
			mutate:  func(m *Model) { m.Transitions[0].Targets = nil },
			wantErr: ErrIncompleteTransition,
		},
		{
			name:    "epsilon outside nfa",
			mutate:  func(m *Model) { m.Kind = CMA },
			wantErr: ErrUnknownEntity,
		},
		{
			name:    "initial not a state",
			mutate:  func(m *Model) { m.Initial = []string{"q7"} },
			wantErr: ErrUnknownEntity,
		},
		{
			name:   "several initial states on nfa",
			mutate: func(m *Model) { m.Initial = []string{"q0", "q1"} },
		},
		{
			name: "several initial states on cma",
			mutate: func(m *Model) {
				m.Kind = CMA
				m.Transitions = m.Transitions[:1]
				m.Initial = []string{"q0", "q1"}
			},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "accepting not a state",
			mutate:  func(m *Model) { m.Accepting = []string{"q7"} },
			wantErr: ErrUnknownEntity,
		},
		{
			name: "non-positive register value",
			mutate: func(m *Model) {
				m.Kind = RA
				m.Transitions = m.Transitions[:1]
				m.Registers = []Register{{Index: "1", Initial: IntPtr(0)}}
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "duplicate update entry",
			mutate: func(m *Model) {
				m.Kind = RA
				m.Transitions = m.Transitions[:1]
				m.Registers = []Register{{Index: "1"}}
				m.Updates = []UpdateEntry{
					{State: "q0", Symbol: "a", Register: "1"},
					{State: "q0", Symbol: "a", Register: "1"},
				}
			},
			wantErr: ErrDuplicateEntity,
		},
		{
			name: "update names unknown register",
			mutate: func(m *Model) {
				m.Kind = RA
				m.Transitions = m.Transitions[:1]
				m.Updates = []UpdateEntry{{State: "q0", Symbol: "a", Register: "3"}}
			},
			wantErr: ErrUnknownEntity,
		},
		{
			name: "safa insertion must be a set or none",
			mutate: func(m *Model) {
				m.Kind = SAFA
				m.Sets = []string{"H1"}
				m.Transitions = []Transition{{
					Source:  "q0",
					Symbol:  "a",
					Guard:   Guard{Set: "H1", Member: true},
					Targets: []Target{{State: "q1", Insert: "H2"}},
				}}
			},
			wantErr: ErrUnknownEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sampleNFA()
			tt.mutate(m)
			err := m.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelCloneIsDeep(t *testing.T) {
	m := sampleNFA()
	m.Kind = RA
	m.Transitions = m.Transitions[:1]
	m.Registers = []Register{{Index: "1", Initial: IntPtr(5)}}
	m.TestCases = []TestCase{{Steps: []Step{{Symbol: "a", Value: IntPtr(3)}}}}

	c := m.Clone()
	c.States[0] = "changed"
	c.Transitions[0].Targets[0].State = "changed"
	*c.Registers[0].Initial = 99
	*c.TestCases[0].Steps[0].Value = 99

	if m.States[0] != "q0" {
		t.Error("States shared with clone")
	}
	if m.Transitions[0].Targets[0].State != "q1" {
		t.Error("Targets shared with clone")
	}
	if *m.Registers[0].Initial != 5 {
		t.Error("register value shared with clone")
	}
	if *m.TestCases[0].Steps[0].Value != 3 {
		t.Error("test case value shared with clone")
	}
}

func TestComputeVersion(t *testing.T) {
	a := sampleNFA()
	b := sampleNFA()
	if ComputeVersion(a) != ComputeVersion(b) {
		t.Error("equal models produced different versions")
	}
	b.Accepting = []string{"q0"}
	if ComputeVersion(a) == ComputeVersion(b) {
		t.Error("different models produced the same version")
	}
	c := sampleNFA()
	c.Sets = []string{}
	c.GlobalAccepting = []string{}
	if ComputeVersion(a) != ComputeVersion(c) {
		t.Error("empty and nil collections produced different versions")
	}
	if len(ComputeVersion(a)) != 16 {
		t.Errorf("version %q: want 16 hex chars", ComputeVersion(a))
	}
}
