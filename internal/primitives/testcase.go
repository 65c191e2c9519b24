package primitives

import "strings"

// Step is one (symbol, value) pair of a stepped test case. A nil Value is
// only legal for RA, where it stands for the unset marker.
type Step struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Value  *int   `json:"value" yaml:"value"`
}

// TestCase is either a plain word (NFA) or an ordered list of steps.
type TestCase struct {
	Word  string `json:"word,omitempty" yaml:"word,omitempty"`
	Steps []Step `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// Clone returns a deep copy.
func (tc TestCase) Clone() TestCase {
	if tc.Steps != nil {
		steps := make([]Step, len(tc.Steps))
		for i, s := range tc.Steps {
			steps[i] = Step{Symbol: s.Symbol}
			if s.Value != nil {
				steps[i].Value = IntPtr(*s.Value)
			}
		}
		tc.Steps = steps
	}
	return tc
}

// Symbols returns the symbols the test case reads, in order.
func (tc TestCase) Symbols() []string {
	if tc.Steps == nil {
		out := make([]string, 0, len(tc.Word))
		for _, r := range tc.Word {
			out = append(out, string(r))
		}
		return out
	}
	out := make([]string, len(tc.Steps))
	for i, s := range tc.Steps {
		out[i] = s.Symbol
	}
	return out
}

// String renders the test case in its input notation.
func (tc TestCase) String() string {
	if tc.Steps == nil {
		return tc.Word
	}
	parts := make([]string, len(tc.Steps))
	for i, s := range tc.Steps {
		parts[i] = "(" + s.Symbol + "," + FormatValue(s.Value) + ")"
	}
	return strings.Join(parts, ",")
}
