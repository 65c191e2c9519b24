// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
)

// GenNFA creates an NFA with n states s0..s(n-1) over {a, b}: a moves to the
// next state, b loops. Every state has one test case.
func GenNFA(n int) *primitives.Model {
	if n < 1 {
		n = 1
	}
	m := primitives.NewModel(primitives.NFA)
	m.Alphabet = []string{"a", "b"}
	for i := 0; i < n; i++ {
		m.States = append(m.States, fmt.Sprintf("s%d", i))
	}
	for i := 0; i < n; i++ {
		src, next := m.States[i], m.States[(i+1)%n]
		m.Transitions = append(m.Transitions,
			primitives.Transition{Source: src, Symbol: "a", Targets: primitives.TargetsOf(next)},
			primitives.Transition{Source: src, Symbol: "b", Targets: primitives.TargetsOf(src)},
		)
		m.TestCases = append(m.TestCases, primitives.TestCase{Word: "ab"})
	}
	m.Initial = []string{m.States[0]}
	m.Accepting = []string{m.States[n-1]}
	return m
}

// GenRA creates an RA with n states and n registers in a chain, with one
// update entry per state.
func GenRA(n int) *primitives.Model {
	if n < 1 {
		n = 1
	}
	m := primitives.NewModel(primitives.RA)
	m.Alphabet = []string{"a"}
	for i := 0; i < n; i++ {
		m.States = append(m.States, fmt.Sprintf("q%d", i))
		m.Registers = append(m.Registers, primitives.Register{Index: fmt.Sprint(i + 1), Initial: primitives.IntPtr(i + 1)})
	}
	for i := 0; i < n; i++ {
		m.Transitions = append(m.Transitions, primitives.Transition{
			Source: m.States[i], Symbol: "a", Register: m.Registers[i].Index,
			Targets: primitives.TargetsOf(m.States[(i+1)%n]),
		})
		m.Updates = append(m.Updates, primitives.UpdateEntry{State: m.States[i], Symbol: "a", Register: m.Registers[i].Index})
	}
	m.Initial = []string{m.States[0]}
	return m
}

// SnapshotFromEditor creates a ProjectSnapshot from an editor.
func SnapshotFromEditor(ed *core.Editor) core.ProjectSnapshot {
	snap := ed.Project()
	snap.Timestamp = time.Now()
	return snap
}

// GenSnapshotYAML generates YAML bytes for a project of the given size.
func GenSnapshotYAML(numStates int) []byte {
	snap := core.ProjectSnapshot{
		ProjectID: fmt.Sprintf("nfa_%d", numStates),
		Model:     *GenNFA(numStates),
		Timestamp: time.Now(),
	}
	snap.Version = primitives.ComputeVersion(&snap.Model)
	data, err := yaml.Marshal(snap)
	if err != nil {
		panic(err)
	}
	return data
}
