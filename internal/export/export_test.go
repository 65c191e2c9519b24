package export

import (
	"encoding/json"
	"testing"

	"github.com/comalice/automatonx/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNFAConfigCoalescesRows(t *testing.T) {
	m := &primitives.Model{
		Kind:     primitives.NFA,
		States:   []string{"q0", "q1", "q2"},
		Alphabet: []string{"a"},
		Transitions: []primitives.Transition{
			{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q1")},
			{Source: "q1", Symbol: primitives.Epsilon, Targets: primitives.TargetsOf("q2")},
			{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q2", "q1")},
		},
		Initial:   []string{"q0"},
		Accepting: []string{"q2"},
	}
	cfg, err := Config(m)
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Q": ["q0","q1","q2"],
		"E": ["a"],
		"T": [["q0","a",["q1","q2"]], ["q1","ε",["q2"]]],
		"q0": ["q0"],
		"F": ["q2"]
	}`, string(data))
}

func TestRAConfig(t *testing.T) {
	m := &primitives.Model{
		Kind:      primitives.RA,
		States:    []string{"q0", "q1"},
		Alphabet:  []string{"a"},
		Registers: []primitives.Register{{Index: "1"}, {Index: "2", Initial: primitives.IntPtr(4)}},
		Transitions: []primitives.Transition{
			{Source: "q0", Symbol: "a", Register: "1", Targets: primitives.TargetsOf("q1")},
		},
		Initial:   []string{"q0"},
		Accepting: []string{"q1"},
		Updates:   []primitives.UpdateEntry{{State: "q0", Symbol: "a", Register: "2"}},
	}
	cfg, err := Config(m)
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Q": ["q0","q1"],
		"E": ["a"],
		"T": [["q0","a","1",["q1"]]],
		"R0": {"1": null, "2": 4},
		"U": [["q0","a","2"]],
		"q0": "q0",
		"F": ["q1"]
	}`, string(data))
}

func TestSAFAConfigUsesExplicitTuples(t *testing.T) {
	m := &primitives.Model{
		Kind:     primitives.SAFA,
		States:   []string{"q0", "q1"},
		Alphabet: []string{"a"},
		Sets:     []string{"H1"},
		Transitions: []primitives.Transition{{
			Source:  "q0",
			Symbol:  "a",
			Guard:   primitives.Guard{Set: "H1", Member: false},
			Targets: []primitives.Target{{State: "q1", Insert: "H1"}, {State: "q0", Insert: primitives.None}},
		}},
		Initial: []string{"q0"},
	}
	cfg, err := Config(m)
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Q": ["q0","q1"],
		"E": ["a"],
		"H": ["H1"],
		"T": [["q0","a",["H1","1"],[["q1","H1"],["q0","-"]]]],
		"q0": "q0",
		"F": []
	}`, string(data))
}

func TestCCAAndCMAConfig(t *testing.T) {
	cca := &primitives.Model{
		Kind:     primitives.CCA,
		States:   []string{"q0"},
		Alphabet: []string{"a"},
		Transitions: []primitives.Transition{{
			Source:  "q0",
			Symbol:  "a",
			Guard:   primitives.Guard{Op: primitives.OpLe, Threshold: 2},
			Update:  primitives.CounterUpdate{Op: primitives.UpdateAdd, K: 3},
			Targets: primitives.TargetsOf("q0"),
		}},
		Initial:   []string{"q0"},
		Accepting: []string{"q0"},
	}
	data, err := json.Marshal(ccaConfig(cca))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q":["q0"],"E":["a"],"T":[["q0","a",["<=",2],"+3",["q0"]]],"I":["q0"],"F":["q0"]}`, string(data))

	cma := &primitives.Model{
		Kind:            primitives.CMA,
		States:          []string{"q0"},
		Alphabet:        []string{"a"},
		Transitions:     []primitives.Transition{{Source: "q0", Symbol: "a", Targets: primitives.TargetsOf("q0")}},
		Initial:         []string{"q0"},
		Accepting:       []string{"q0"},
		GlobalAccepting: []string{"q0"},
	}
	data, err = json.Marshal(cmaConfig(cma))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q":["q0"],"E":["a"],"T":[["q0","a","-",["q0"]]],"q0":"q0","Fl":["q0"],"Fg":["q0"]}`, string(data))
}

func TestTestCases(t *testing.T) {
	nfa := &primitives.Model{Kind: primitives.NFA, TestCases: []primitives.TestCase{{Word: "ab"}}}
	data, err := json.Marshal(TestCases(nfa))
	require.NoError(t, err)
	assert.JSONEq(t, `["ab"]`, string(data))

	ra := &primitives.Model{Kind: primitives.RA, TestCases: []primitives.TestCase{{
		Steps: []primitives.Step{{Symbol: "a", Value: primitives.IntPtr(1)}, {Symbol: "b"}},
	}}}
	data, err = json.Marshal(TestCases(ra))
	require.NoError(t, err)
	assert.JSONEq(t, `[[["a",1],["b",null]]]`, string(data))
}

func TestEvaluateRequestShape(t *testing.T) {
	m := &primitives.Model{Kind: primitives.NFA, States: []string{"q0"}, Initial: []string{"q0"}}
	req, err := NewEvaluateRequest(m)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"automata_type": "NFA",
		"config": {"Q":["q0"],"E":[],"T":[],"q0":["q0"],"F":[]},
		"test_cases": []
	}`, string(data))

	_, err = Config(&primitives.Model{Kind: "DFA"})
	assert.ErrorIs(t, err, primitives.ErrUnsupported)
}

func TestEmptinessResponseAcceptsBothKeys(t *testing.T) {
	for _, body := range []string{`{"success":true,"result":true}`, `{"success":true,"results":true}`} {
		var resp EmptinessResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		empty, ok := resp.Empty()
		assert.True(t, ok, body)
		assert.True(t, empty, body)
	}

	var resp EmptinessResponse
	require.NoError(t, json.Unmarshal([]byte(`{"success":false,"error":"boom"}`), &resp))
	_, ok := resp.Empty()
	assert.False(t, ok)
}
