package core

import (
	"fmt"
	"strings"

	"github.com/comalice/automatonx/internal/grammar"
	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// TestCaseIssue reports a stored test case that no longer validates.
type TestCaseIssue struct {
	Pos  int
	Case string
	Err  error
}

func (i TestCaseIssue) String() string {
	return fmt.Sprintf("test case %d %q: %v", i.Pos+1, i.Case, i.Err)
}

// AddTestCase parses line with the kind's grammar and appends the result.
// Duplicate test cases are allowed.
func (e *Editor) AddTestCase(line string) error {
	return e.command("testcase.add", primitives.EntityTestCase, line, func(m *primitives.Model) error {
		tc, err := grammar.Parse(m.Kind, m.Alphabet, line)
		if err != nil {
			return err
		}
		m.TestCases = append(m.TestCases, tc)
		return nil
	})
}

// ReplaceTestCase parses line and overwrites the test case at pos.
func (e *Editor) ReplaceTestCase(pos int, line string) error {
	return e.command("testcase.replace", primitives.EntityTestCase, line, func(m *primitives.Model) error {
		return replaceTestCaseIn(m, pos, line)
	})
}

func replaceTestCaseIn(m *primitives.Model, pos int, line string) error {
	if err := checkPos(primitives.EntityTestCase, pos, len(m.TestCases)); err != nil {
		return err
	}
	tc, err := grammar.Parse(m.Kind, m.Alphabet, line)
	if err != nil {
		return err
	}
	m.TestCases[pos] = tc
	return nil
}

// DeleteTestCase removes the test case at pos.
func (e *Editor) DeleteTestCase(pos int) error {
	return e.command("testcase.delete", primitives.EntityTestCase, "", func(m *primitives.Model) error {
		if err := checkPos(primitives.EntityTestCase, pos, len(m.TestCases)); err != nil {
			return err
		}
		m.TestCases = slices.Delete(m.TestCases, pos, pos+1)
		return nil
	})
}

// ValidateTestCases re-checks every stored test case against the current
// alphabet. Symbols may have been deleted or renamed since a case was added.
// A non-empty result is also recorded in the error slot.
func (e *Editor) ValidateTestCases() []TestCaseIssue {
	e.mu.Lock()
	defer e.mu.Unlock()
	issues := checkTestCases(e.model)
	if len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, is := range issues {
			msgs[i] = is.String()
		}
		e.lastErr = strings.Join(msgs, "; ")
	}
	return issues
}

func checkTestCases(m *primitives.Model) []TestCaseIssue {
	var issues []TestCaseIssue
	for i, tc := range m.TestCases {
		if err := grammar.Check(m.Kind, m.Alphabet, tc); err != nil {
			issues = append(issues, TestCaseIssue{Pos: i, Case: grammar.Format(m.Kind, tc), Err: err})
		}
	}
	return issues
}
