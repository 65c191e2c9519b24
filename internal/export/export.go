// Package export converts a Model into the canonical submission shape of the
// evaluation service and declares the request/response wire types.
//
// Every multi-valued field becomes an ordered list in model order, every
// guard becomes an explicit tuple, and the RA update function becomes a
// list of (state, symbol, register) triples.
package export

import (
	"fmt"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// Guard flag values on the wire: "0" is p(), "1" is !p().
const (
	FlagMember    = "0"
	FlagNotMember = "1"
)

// NFAConfig is the NFA submission. T rows are [source, symbol, [targets...]].
type NFAConfig struct {
	Q  []string `json:"Q"`
	E  []string `json:"E"`
	T  [][]any  `json:"T"`
	Q0 []string `json:"q0"`
	F  []string `json:"F"`
}

// RAConfig is the RA submission. T rows are [source, symbol, register,
// [targets...]]; R0 maps register index to its initial value or null.
type RAConfig struct {
	Q  []string        `json:"Q"`
	E  []string        `json:"E"`
	T  [][]any         `json:"T"`
	R0 map[string]*int `json:"R0"`
	U  [][3]string     `json:"U"`
	Q0 string          `json:"q0"`
	F  []string        `json:"F"`
}

// SAFAConfig is the SAFA submission. T rows are
// [source, symbol, [set, flag], [[target, insertion]...]].
type SAFAConfig struct {
	Q  []string `json:"Q"`
	E  []string `json:"E"`
	H  []string `json:"H"`
	T  [][]any  `json:"T"`
	Q0 string   `json:"q0"`
	F  []string `json:"F"`
}

// CCAConfig is the CCA submission. T rows are
// [source, symbol, [op, threshold], update, [targets...]].
type CCAConfig struct {
	Q []string `json:"Q"`
	E []string `json:"E"`
	T [][]any  `json:"T"`
	I []string `json:"I"`
	F []string `json:"F"`
}

// CMAConfig is the CMA submission. T rows are [source, symbol, last, [targets...]].
type CMAConfig struct {
	Q  []string `json:"Q"`
	E  []string `json:"E"`
	T  [][]any  `json:"T"`
	Q0 string   `json:"q0"`
	Fl []string `json:"Fl"`
	Fg []string `json:"Fg"`
}

// Config returns the kind-specific submission struct for m.
func Config(m *primitives.Model) (any, error) {
	switch m.Kind {
	case primitives.NFA:
		return nfaConfig(m), nil
	case primitives.RA:
		return raConfig(m), nil
	case primitives.SAFA:
		return safaConfig(m), nil
	case primitives.CCA:
		return ccaConfig(m), nil
	case primitives.CMA:
		return cmaConfig(m), nil
	}
	return nil, &primitives.UnsupportedError{Kind: m.Kind, Op: "export"}
}

func nfaConfig(m *primitives.Model) NFAConfig {
	// Rows sharing (source, symbol) are submitted as one row.
	type key struct{ src, sym string }
	var order []key
	targets := make(map[key][]primitives.Target)
	for _, t := range m.Transitions {
		k := key{t.Source, t.Symbol}
		if _, ok := targets[k]; !ok {
			order = append(order, k)
		}
		targets[k] = primitives.UnionTargets(targets[k], t.Targets)
	}
	rows := make([][]any, 0, len(order))
	for _, k := range order {
		rows = append(rows, []any{k.src, k.sym, stateList(targets[k])})
	}
	return NFAConfig{
		Q:  list(m.States),
		E:  list(m.Alphabet),
		T:  rows,
		Q0: list(m.Initial),
		F:  list(m.Accepting),
	}
}

func raConfig(m *primitives.Model) RAConfig {
	rows := make([][]any, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		rows = append(rows, []any{t.Source, t.Symbol, t.Register, stateList(t.Targets)})
	}
	r0 := make(map[string]*int, len(m.Registers))
	for _, r := range m.Registers {
		if r.Initial == nil {
			r0[r.Index] = nil
			continue
		}
		r0[r.Index] = primitives.IntPtr(*r.Initial)
	}
	u := make([][3]string, 0, len(m.Updates))
	for _, e := range m.Updates {
		u = append(u, [3]string{e.State, e.Symbol, e.Register})
	}
	return RAConfig{
		Q:  list(m.States),
		E:  list(m.Alphabet),
		T:  rows,
		R0: r0,
		U:  u,
		Q0: single(m.Initial),
		F:  list(m.Accepting),
	}
}

func safaConfig(m *primitives.Model) SAFAConfig {
	rows := make([][]any, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		flag := FlagNotMember
		if t.Guard.Member {
			flag = FlagMember
		}
		pairs := make([][2]string, 0, len(t.Targets))
		for _, tg := range t.Targets {
			ins := tg.Insert
			if ins == "" {
				ins = primitives.None
			}
			pairs = append(pairs, [2]string{tg.State, ins})
		}
		rows = append(rows, []any{t.Source, t.Symbol, [2]string{t.Guard.Set, flag}, pairs})
	}
	return SAFAConfig{
		Q:  list(m.States),
		E:  list(m.Alphabet),
		H:  list(m.Sets),
		T:  rows,
		Q0: single(m.Initial),
		F:  list(m.Accepting),
	}
}

func ccaConfig(m *primitives.Model) CCAConfig {
	rows := make([][]any, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		rows = append(rows, []any{
			t.Source,
			t.Symbol,
			[]any{string(t.Guard.Op), t.Guard.Threshold},
			t.Update.String(),
			stateList(t.Targets),
		})
	}
	return CCAConfig{
		Q: list(m.States),
		E: list(m.Alphabet),
		T: rows,
		I: list(m.Initial),
		F: list(m.Accepting),
	}
}

func cmaConfig(m *primitives.Model) CMAConfig {
	rows := make([][]any, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		last := t.Guard.Last
		if last == "" {
			last = primitives.None
		}
		rows = append(rows, []any{t.Source, t.Symbol, last, stateList(t.Targets)})
	}
	return CMAConfig{
		Q:  list(m.States),
		E:  list(m.Alphabet),
		T:  rows,
		Q0: single(m.Initial),
		Fl: list(m.Accepting),
		Fg: list(m.GlobalAccepting),
	}
}

// TestCases renders the stored test cases: NFA cases as plain strings,
// stepped cases as [[symbol, value|null]...].
func TestCases(m *primitives.Model) []any {
	out := make([]any, 0, len(m.TestCases))
	for _, tc := range m.TestCases {
		if !m.Kind.Stepped() {
			out = append(out, tc.Word)
			continue
		}
		steps := make([][]any, 0, len(tc.Steps))
		for _, s := range tc.Steps {
			var v any
			if s.Value != nil {
				v = *s.Value
			}
			steps = append(steps, []any{s.Symbol, v})
		}
		out = append(out, steps)
	}
	return out
}

// list never returns nil so empty collections marshal as [].
func list(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func stateList(targets []primitives.Target) []string {
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if !slices.Contains(out, t.State) {
			out = append(out, t.State)
		}
	}
	return out
}

func single(states []string) string {
	if len(states) == 0 {
		return ""
	}
	return states[0]
}

// Describe returns a one-line human summary of the submission, for logs.
func Describe(m *primitives.Model) string {
	return fmt.Sprintf("%s |Q|=%d |E|=%d |T|=%d tests=%d", m.Kind, len(m.States), len(m.Alphabet), len(m.Transitions), len(m.TestCases))
}
