// Package grammar parses and validates the one-line test-case notation.
//
// NFA test cases are plain words: every character must be an alphabet
// symbol. Every other kind uses stepped input, (symbol,value),(symbol,value),
// where the admissible values depend on the kind.
package grammar

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// ValueRule validates the value half of one step. It returns the parsed value
// (nil for the unset marker) or a short description of the violated constraint.
type ValueRule func(text string) (value *int, violation string)

var rules = map[primitives.Kind]ValueRule{
	primitives.RA:   positiveOrUnset,
	primitives.SAFA: positive,
	primitives.CCA:  nonNegative,
	primitives.CMA:  positive,
}

// RuleFor returns the value rule of a stepped kind.
func RuleFor(kind primitives.Kind) (ValueRule, bool) {
	r, ok := rules[kind]
	return r, ok
}

// Parse turns one line of input into a canonical test case for kind, checking
// symbols against alphabet. Failures are *primitives.MalformedTestCaseError.
func Parse(kind primitives.Kind, alphabet []string, line string) (primitives.TestCase, error) {
	if !kind.Stepped() {
		return parseWord(alphabet, line)
	}
	rule, ok := RuleFor(kind)
	if !ok {
		return primitives.TestCase{}, &primitives.UnsupportedError{Kind: kind, Op: "test cases"}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	if cleaned == "" {
		return primitives.TestCase{}, syntaxError(0, "please enter a test case")
	}
	if !strings.HasPrefix(cleaned, "(") || !strings.HasSuffix(cleaned, ")") {
		return primitives.TestCase{}, syntaxError(0, "input must start with ( and end with )")
	}

	pairs := strings.Split(cleaned, "),(")
	steps := make([]primitives.Step, 0, len(pairs))
	for i, pair := range pairs {
		if i == 0 {
			pair = pair[1:]
		}
		if i == len(pairs)-1 {
			pair = pair[:len(pair)-1]
		}
		symbol, valueText, found := strings.Cut(pair, ",")
		if !found {
			return primitives.TestCase{}, syntaxError(i+1, "missing comma in pair: "+pair)
		}
		step, err := checkStep(i+1, alphabet, rule, symbol, valueText)
		if err != nil {
			return primitives.TestCase{}, err
		}
		steps = append(steps, step)
	}
	return primitives.TestCase{Steps: steps}, nil
}

func parseWord(alphabet []string, word string) (primitives.TestCase, error) {
	if word == "" {
		return primitives.TestCase{}, syntaxError(0, "please enter a test case")
	}
	if invalid := invalidChars(alphabet, word); len(invalid) > 0 {
		return primitives.TestCase{}, &primitives.MalformedTestCaseError{
			Fault:   primitives.FaultUnknownSymbol,
			Invalid: invalid,
		}
	}
	return primitives.TestCase{Word: word}, nil
}

// invalidChars lists, once each and in first-seen order, the characters of
// word that are not alphabet symbols.
func invalidChars(alphabet []string, word string) []string {
	var invalid []string
	for _, r := range word {
		c := string(r)
		if !slices.Contains(alphabet, c) && !slices.Contains(invalid, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

func checkStep(n int, alphabet []string, rule ValueRule, symbol, valueText string) (primitives.Step, error) {
	if symbol == "" || !slices.Contains(alphabet, symbol) {
		return primitives.Step{}, &primitives.MalformedTestCaseError{
			Fault:  primitives.FaultUnknownSymbol,
			Step:   n,
			Symbol: symbol,
		}
	}
	value, violation := rule(valueText)
	if violation != "" {
		return primitives.Step{}, &primitives.MalformedTestCaseError{
			Fault:  primitives.FaultInvalidValue,
			Step:   n,
			Symbol: symbol,
			Value:  valueText,
			Detail: violation,
		}
	}
	return primitives.Step{Symbol: symbol, Value: value}, nil
}

// Check re-validates a stored test case against the current alphabet.
func Check(kind primitives.Kind, alphabet []string, tc primitives.TestCase) error {
	if !kind.Stepped() {
		_, err := parseWord(alphabet, tc.Word)
		return err
	}
	rule, ok := RuleFor(kind)
	if !ok {
		return &primitives.UnsupportedError{Kind: kind, Op: "test cases"}
	}
	if len(tc.Steps) == 0 {
		return syntaxError(0, "test case has no steps")
	}
	for i, s := range tc.Steps {
		if _, err := checkStep(i+1, alphabet, rule, s.Symbol, primitives.FormatValue(s.Value)); err != nil {
			return err
		}
	}
	return nil
}

// Format renders tc back into the notation Parse accepts.
func Format(kind primitives.Kind, tc primitives.TestCase) string {
	if !kind.Stepped() {
		return tc.Word
	}
	return tc.String()
}

func syntaxError(step int, detail string) error {
	return &primitives.MalformedTestCaseError{Fault: primitives.FaultSyntax, Step: step, Detail: detail}
}

func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func positive(s string) (*int, string) {
	n, ok := digits(s)
	if !ok || n <= 0 {
		return nil, "must be a positive integer"
	}
	return &n, ""
}

func positiveOrUnset(s string) (*int, string) {
	if s == primitives.Unset {
		return nil, ""
	}
	n, ok := digits(s)
	if !ok || n <= 0 {
		return nil, "must be a positive integer or " + primitives.Unset
	}
	return &n, ""
}

func nonNegative(s string) (*int, string) {
	n, ok := digits(s)
	if !ok {
		return nil, "must be a non-negative integer"
	}
	return &n, ""
}
