package core

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/comalice/automatonx/internal/primitives"
	"golang.org/x/exp/slices"
)

// labelKind describes one label collection of the model.
type labelKind struct {
	entity   primitives.EntityType
	target   EditTarget
	list     func(m *primitives.Model) *[]string
	cascade  func(m *primitives.Model, from, to string)
	reserved []string
	requires func(c Capabilities) bool
}

var (
	stateLabels = labelKind{
		entity:   primitives.EntityState,
		target:   EditState,
		list:     func(m *primitives.Model) *[]string { return &m.States },
		cascade:  cascadeState,
		reserved: []string{primitives.None},
	}
	symbolLabels = labelKind{
		entity:   primitives.EntitySymbol,
		target:   EditSymbol,
		list:     func(m *primitives.Model) *[]string { return &m.Alphabet },
		cascade:  cascadeSymbol,
		reserved: []string{primitives.Epsilon},
	}
	setLabels = labelKind{
		entity:   primitives.EntitySet,
		target:   EditSet,
		list:     func(m *primitives.Model) *[]string { return &m.Sets },
		cascade:  cascadeSet,
		reserved: []string{primitives.None},
		requires: func(c Capabilities) bool { return c.Sets },
	}
)

// AddState appends a new state label.
func (e *Editor) AddState(label string) error { return e.addLabel(stateLabels, label) }

// RenameState renames the state at pos and rewrites every reference to it.
func (e *Editor) RenameState(pos int, label string) error { return e.renameLabel(stateLabels, pos, label) }

// DeleteState removes the state at pos unless it is referenced.
func (e *Editor) DeleteState(pos int) error { return e.deleteLabel(stateLabels, pos) }

// AddSymbol appends a new alphabet symbol.
func (e *Editor) AddSymbol(label string) error { return e.addLabel(symbolLabels, label) }

// RenameSymbol renames the symbol at pos and rewrites every reference to it.
func (e *Editor) RenameSymbol(pos int, label string) error {
	return e.renameLabel(symbolLabels, pos, label)
}

// DeleteSymbol removes the symbol at pos unless it is referenced.
func (e *Editor) DeleteSymbol(pos int) error { return e.deleteLabel(symbolLabels, pos) }

// AddSet appends a new auxiliary set name (SAFA).
func (e *Editor) AddSet(name string) error { return e.addLabel(setLabels, name) }

// RenameSet renames the set at pos and rewrites every guard and insertion.
func (e *Editor) RenameSet(pos int, name string) error { return e.renameLabel(setLabels, pos, name) }

// DeleteSet removes the set at pos unless it is referenced.
func (e *Editor) DeleteSet(pos int) error { return e.deleteLabel(setLabels, pos) }

func (e *Editor) supports(lk labelKind) error {
	if lk.requires != nil && !lk.requires(e.variant.Capabilities()) {
		return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: string(lk.entity) + "s"}
	}
	return nil
}

func checkLabel(entity primitives.EntityType, label string, reserved []string) error {
	if label == "" {
		return &primitives.IncompleteTransitionError{Entity: entity, Field: "label"}
	}
	if slices.Contains(reserved, label) {
		return &primitives.ReservedLabelError{Entity: entity, Label: label}
	}
	return nil
}

func (e *Editor) addLabel(lk labelKind, label string) error {
	label = strings.TrimSpace(label)
	return e.command(string(lk.entity)+".add", lk.entity, label, func(m *primitives.Model) error {
		if err := e.supports(lk); err != nil {
			return err
		}
		if err := checkLabel(lk.entity, label, lk.reserved); err != nil {
			return err
		}
		list := lk.list(m)
		if slices.Contains(*list, label) {
			return &primitives.DuplicateEntityError{Entity: lk.entity, Label: label}
		}
		*list = append(*list, label)
		return nil
	})
}

func (e *Editor) renameLabel(lk labelKind, pos int, label string) error {
	label = strings.TrimSpace(label)
	return e.command(string(lk.entity)+".rename", lk.entity, label, func(m *primitives.Model) error {
		return e.renameIn(m, lk, pos, label)
	})
}

func (e *Editor) renameIn(m *primitives.Model, lk labelKind, pos int, label string) error {
	if err := e.supports(lk); err != nil {
		return err
	}
	list := lk.list(m)
	if err := checkPos(lk.entity, pos, len(*list)); err != nil {
		return err
	}
	if err := checkLabel(lk.entity, label, lk.reserved); err != nil {
		return err
	}
	from := (*list)[pos]
	if from == label {
		return nil
	}
	var collided bool
	*list, collided = renameAt(*list, pos, label)
	if collided {
		e.logger.Warn("rename collides with an existing label; entries merged",
			slog.String("entity", string(lk.entity)),
			slog.String("from", from),
			slog.String("to", label))
	}
	lk.cascade(m, from, label)
	return nil
}

func (e *Editor) deleteLabel(lk labelKind, pos int) error {
	return e.command(string(lk.entity)+".delete", lk.entity, "", func(m *primitives.Model) error {
		if err := e.supports(lk); err != nil {
			return err
		}
		list := lk.list(m)
		if err := checkPos(lk.entity, pos, len(*list)); err != nil {
			return err
		}
		if err := guardDelete(m, lk.entity, (*list)[pos]); err != nil {
			return err
		}
		*list = slices.Delete(*list, pos, pos+1)
		return nil
	})
}

// AddRegister appends an RA register. A nil initial value is the unset marker.
func (e *Editor) AddRegister(index string, initial *int) error {
	index = strings.TrimSpace(index)
	return e.command("register.add", primitives.EntityRegister, index, func(m *primitives.Model) error {
		if err := e.checkRegister(index, initial); err != nil {
			return err
		}
		if m.RegisterIndex(index) >= 0 {
			return &primitives.DuplicateEntityError{Entity: primitives.EntityRegister, Label: index}
		}
		m.Registers = append(m.Registers, primitives.Register{Index: index, Initial: copyInt(initial)})
		return nil
	})
}

// EditRegister replaces the register at pos. A changed index is cascaded into
// transitions and the update function.
func (e *Editor) EditRegister(pos int, index string, initial *int) error {
	index = strings.TrimSpace(index)
	return e.command("register.edit", primitives.EntityRegister, index, func(m *primitives.Model) error {
		return e.editRegisterIn(m, pos, index, initial)
	})
}

func (e *Editor) editRegisterIn(m *primitives.Model, pos int, index string, initial *int) error {
	if err := e.checkRegister(index, initial); err != nil {
		return err
	}
	if err := checkPos(primitives.EntityRegister, pos, len(m.Registers)); err != nil {
		return err
	}
	from := m.Registers[pos].Index
	if i := m.RegisterIndex(index); i >= 0 && i != pos {
		e.logger.Warn("rename collides with an existing label; entries merged",
			slog.String("entity", string(primitives.EntityRegister)),
			slog.String("from", from),
			slog.String("to", index))
		m.Registers[i].Initial = copyInt(initial)
		m.Registers = slices.Delete(m.Registers, pos, pos+1)
	} else {
		m.Registers[pos] = primitives.Register{Index: index, Initial: copyInt(initial)}
	}
	if from != index {
		cascadeRegister(m, from, index)
	}
	return nil
}

// DeleteRegister removes the register at pos unless it is referenced.
func (e *Editor) DeleteRegister(pos int) error {
	return e.command("register.delete", primitives.EntityRegister, "", func(m *primitives.Model) error {
		if !e.variant.Capabilities().Registers {
			return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "registers"}
		}
		if err := checkPos(primitives.EntityRegister, pos, len(m.Registers)); err != nil {
			return err
		}
		if err := guardDelete(m, primitives.EntityRegister, m.Registers[pos].Index); err != nil {
			return err
		}
		m.Registers = slices.Delete(m.Registers, pos, pos+1)
		return nil
	})
}

func (e *Editor) checkRegister(index string, initial *int) error {
	if !e.variant.Capabilities().Registers {
		return &primitives.UnsupportedError{Kind: e.variant.Kind(), Op: "registers"}
	}
	if index == "" {
		return &primitives.IncompleteTransitionError{Entity: primitives.EntityRegister, Field: "index"}
	}
	if initial != nil && *initial <= 0 {
		return fmt.Errorf("register %s: %w: value must be a positive integer", index, primitives.ErrInvalidValue)
	}
	return nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return primitives.IntPtr(*v)
}
