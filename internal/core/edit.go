package core

import (
	"fmt"
	"strings"

	"github.com/comalice/automatonx/internal/grammar"
	"github.com/comalice/automatonx/internal/primitives"
)

// BeginEdit opens the cursor of target at pos and returns the text form of
// the entity under it. An open cursor on the same target is moved.
func (e *Editor) BeginEdit(target EditTarget, pos int) (string, error) {
	e.mu.RLock()
	key, err := keyAt(e.model, target, pos)
	e.mu.RUnlock()
	if err != nil {
		return "", e.fail(err)
	}
	e.cursors.Begin(target, pos, key)
	return key, nil
}

// CancelEdit closes the cursor of target without changing the model.
func (e *Editor) CancelEdit(target EditTarget) {
	e.cursors.Clear(target)
}

// Editing returns the position under the cursor of target, if one is open.
func (e *Editor) Editing(target EditTarget) (int, bool) {
	cur, ok := e.cursors.Get(target)
	return cur.Pos, ok
}

// CommitStateEdit renames the state under the cursor.
func (e *Editor) CommitStateEdit(label string) error {
	return e.commitLabel(stateLabels, label)
}

// CommitSymbolEdit renames the symbol under the cursor.
func (e *Editor) CommitSymbolEdit(label string) error {
	return e.commitLabel(symbolLabels, label)
}

// CommitSetEdit renames the set under the cursor.
func (e *Editor) CommitSetEdit(name string) error {
	return e.commitLabel(setLabels, name)
}

func (e *Editor) commitLabel(lk labelKind, label string) error {
	label = strings.TrimSpace(label)
	return e.commit(lk.target, string(lk.entity)+".rename", lk.entity, label, func(m *primitives.Model, pos int) error {
		return e.renameIn(m, lk, pos, label)
	})
}

// CommitRegisterEdit replaces the register under the cursor.
func (e *Editor) CommitRegisterEdit(index string, initial *int) error {
	index = strings.TrimSpace(index)
	return e.commit(EditRegister, "register.edit", primitives.EntityRegister, index, func(m *primitives.Model, pos int) error {
		return e.editRegisterIn(m, pos, index, initial)
	})
}

// CommitTransitionEdit replaces the transition under the cursor. Like
// ReplaceTransition it never merges.
func (e *Editor) CommitTransitionEdit(t primitives.Transition) error {
	t = e.variant.Normalize(t)
	return e.commit(EditTransition, "transition.replace", primitives.EntityTransition, t.Source, func(m *primitives.Model, pos int) error {
		return e.replaceTransitionIn(m, pos, t)
	})
}

// CommitUpdateEdit replaces the update-function entry under the cursor.
func (e *Editor) CommitUpdateEdit(u primitives.UpdateEntry) error {
	u = trimUpdate(u)
	return e.commit(EditUpdate, "update.replace", primitives.EntityUpdate, updateLabel(u), func(m *primitives.Model, pos int) error {
		return e.replaceUpdateIn(m, pos, u)
	})
}

// CommitTestCaseEdit re-parses line and replaces the test case under the cursor.
func (e *Editor) CommitTestCaseEdit(line string) error {
	return e.commit(EditTestCase, "testcase.replace", primitives.EntityTestCase, line, func(m *primitives.Model, pos int) error {
		return replaceTestCaseIn(m, pos, line)
	})
}

// commit verifies the cursor of target still points at the entity captured
// by BeginEdit, applies fn at that position and closes the cursor.
func (e *Editor) commit(target EditTarget, name string, entity primitives.EntityType, label string, fn func(m *primitives.Model, pos int) error) error {
	cur, ok := e.cursors.Get(target)
	if !ok {
		return e.fail(fmt.Errorf("no %s is being edited", target))
	}
	err := e.command(name, entity, label, func(m *primitives.Model) error {
		got, err := keyAt(m, target, cur.Pos)
		if err != nil {
			return &primitives.StaleCursorError{Entity: entity, Pos: cur.Pos, Want: cur.Key, Got: "nothing"}
		}
		if got != cur.Key {
			return &primitives.StaleCursorError{Entity: entity, Pos: cur.Pos, Want: cur.Key, Got: got}
		}
		return fn(m, cur.Pos)
	})
	if err == nil {
		e.cursors.Clear(target)
	}
	return err
}

// keyAt renders the identity of the entity at pos in target's collection.
func keyAt(m *primitives.Model, target EditTarget, pos int) (string, error) {
	switch target {
	case EditState:
		if err := checkPos(primitives.EntityState, pos, len(m.States)); err != nil {
			return "", err
		}
		return m.States[pos], nil
	case EditSymbol:
		if err := checkPos(primitives.EntitySymbol, pos, len(m.Alphabet)); err != nil {
			return "", err
		}
		return m.Alphabet[pos], nil
	case EditSet:
		if err := checkPos(primitives.EntitySet, pos, len(m.Sets)); err != nil {
			return "", err
		}
		return m.Sets[pos], nil
	case EditRegister:
		if err := checkPos(primitives.EntityRegister, pos, len(m.Registers)); err != nil {
			return "", err
		}
		r := m.Registers[pos]
		return r.Index + "=" + r.ValueString(), nil
	case EditTransition:
		if err := checkPos(primitives.EntityTransition, pos, len(m.Transitions)); err != nil {
			return "", err
		}
		return FormatTransition(m.Kind, m.Transitions[pos]), nil
	case EditUpdate:
		if err := checkPos(primitives.EntityUpdate, pos, len(m.Updates)); err != nil {
			return "", err
		}
		u := m.Updates[pos]
		return fmt.Sprintf("(%s, %s) -> %s", u.State, u.Symbol, u.Register), nil
	case EditTestCase:
		if err := checkPos(primitives.EntityTestCase, pos, len(m.TestCases)); err != nil {
			return "", err
		}
		return grammar.Format(m.Kind, m.TestCases[pos]), nil
	}
	return "", fmt.Errorf("unknown edit target %q", target)
}

// FormatTransition renders a transition row the way it is listed to users:
// (source, symbol, guard...) --> {targets}.
func FormatTransition(kind primitives.Kind, t primitives.Transition) string {
	parts := []string{t.Source, t.Symbol}
	switch kind {
	case primitives.RA:
		parts = append(parts, t.Register)
	case primitives.SAFA:
		check := "!" + t.Guard.Set + "()"
		if t.Guard.Member {
			check = t.Guard.Set + "()"
		}
		parts = append(parts, check)
	case primitives.CCA:
		parts = append(parts, fmt.Sprintf("%s%d", t.Guard.Op, t.Guard.Threshold), t.Update.String())
	case primitives.CMA:
		parts = append(parts, t.Guard.Last)
	}
	targets := make([]string, len(t.Targets))
	for i, tg := range t.Targets {
		targets[i] = tg.String()
	}
	return "(" + strings.Join(parts, ", ") + ") --> {" + strings.Join(targets, ", ") + "}"
}
