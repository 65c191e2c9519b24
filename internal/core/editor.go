// Package core provides the editable automaton model.
// This includes the Editor, the rename cascade, the transition relation
// store, the referential integrity guard and the edit cursors.
// Dependencies: internal/primitives, internal/grammar, internal/export.
// Kind-specific rules are injected through the Variant interface.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/automatonx/internal/primitives"
)

// ErrNoEvaluator is returned by Evaluate and CheckEmptiness when the Editor
// was built without WithEvaluator.
var ErrNoEvaluator = errors.New("no evaluation service configured")

// Option applies configuration to Editor via functional options pattern.
type Option func(*Editor)

// Editor owns one automaton model and applies commands to it.
// Commands are serialized: each runs against a clone of the current model
// and the clone replaces the model only if the command and Model.Validate
// both succeed, so a failed command leaves the model untouched.
// Safe for concurrent use.
type Editor struct {
	id      string
	variant Variant
	seed    *primitives.Model

	mu         sync.RWMutex
	model      *primitives.Model
	cursors    *CursorManager
	lastErr    string
	generation uint64 // bumped by Clear so in-flight results are dropped
	evaluation *EvaluationResult
	emptiness  *EmptinessResult

	logger     *slog.Logger
	persister  Persister
	publisher  EventPublisher
	evaluator  Evaluator
	visualizer Visualizer
}

// NewEditor creates an Editor for the variant's kind.
func NewEditor(v Variant, opts ...Option) (*Editor, error) {
	if v == nil {
		return nil, errors.New("variant is required")
	}
	e := &Editor{
		variant: v,
		cursors: NewCursorManager(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default().With(slog.String("component", "editor"))
	}

	e.model = primitives.NewModel(v.Kind())
	if e.seed != nil {
		if e.seed.Kind != v.Kind() {
			return nil, fmt.Errorf("model kind %s does not match editor kind %s", e.seed.Kind, v.Kind())
		}
		if err := e.seed.Validate(); err != nil {
			return nil, fmt.Errorf("invalid model: %w", err)
		}
		e.model = e.seed.Clone()
		e.seed = nil
	}
	return e, nil
}

// ID returns the project ID, empty unless set with WithID.
func (e *Editor) ID() string { return e.id }

// Kind returns the automaton kind being edited.
func (e *Editor) Kind() primitives.Kind { return e.variant.Kind() }

// Capabilities returns the kind's optional features.
func (e *Editor) Capabilities() Capabilities { return e.variant.Capabilities() }

// Snapshot returns a deep copy of the current model.
func (e *Editor) Snapshot() *primitives.Model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model.Clone()
}

// Version returns the content version of the current model.
func (e *Editor) Version() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return primitives.ComputeVersion(e.model)
}

// Project returns the serializable snapshot of the editor.
func (e *Editor) Project() ProjectSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.projectLocked()
}

func (e *Editor) projectLocked() ProjectSnapshot {
	return ProjectSnapshot{
		ProjectID: e.id,
		Version:   primitives.ComputeVersion(e.model),
		Model:     *e.model.Clone(),
		Timestamp: time.Now(),
	}
}

// LastError returns the message of the most recent failed command, or ""
// if the most recent command succeeded.
func (e *Editor) LastError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// Description returns the free-text language description.
func (e *Editor) Description() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model.Description
}

// SetDescription replaces the language description.
func (e *Editor) SetDescription(text string) error {
	return e.command("model.describe", "", "", func(m *primitives.Model) error {
		m.Description = text
		return nil
	})
}

// Restore validates m and makes it the current model. Open edit cursors are
// cancelled; cached results are kept and will read as stale.
func (e *Editor) Restore(m *primitives.Model) error {
	if m == nil {
		return errors.New("model is required")
	}
	err := e.command("model.restore", "", "", func(next *primitives.Model) error {
		if m.Kind != e.variant.Kind() {
			return fmt.Errorf("model kind %s does not match editor kind %s", m.Kind, e.variant.Kind())
		}
		*next = *m.Clone()
		return nil
	})
	if err == nil {
		e.cursors.Reset()
	}
	return err
}

// Clear resets the model, every edit cursor, the error slot and the cached
// evaluation results. Requests still in flight are discarded on arrival.
func (e *Editor) Clear() {
	e.mu.Lock()
	e.model = primitives.NewModel(e.variant.Kind())
	e.lastErr = ""
	e.generation++
	e.evaluation = nil
	e.emptiness = nil
	snap := e.projectLocked()
	e.mu.Unlock()

	e.cursors.Reset()
	e.afterCommit(primitives.NewEvent("model.clear", "", "", nil), snap)
}

// Visualize returns the Graphviz DOT rendering of the current model.
func (e *Editor) Visualize() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.visualizer == nil {
		return "ERROR: No visualizer configured. Use WithVisualizer(&production.DefaultVisualizer{})"
	}
	return e.visualizer.ExportDOT(e.model)
}

// command runs fn against a clone of the model and swaps the clone in when
// fn and Validate succeed. The outcome is recorded in the error slot.
func (e *Editor) command(name string, entity primitives.EntityType, label string, fn func(m *primitives.Model) error) error {
	e.mu.Lock()
	next := e.model.Clone()
	err := safely(func() error {
		if err := fn(next); err != nil {
			return err
		}
		return next.Validate()
	})
	if err != nil {
		e.lastErr = err.Error()
		e.mu.Unlock()
		e.logger.Debug("command rejected",
			slog.String("command", name),
			slog.String("label", label),
			slog.Any("error", err))
		return err
	}
	e.model = next
	e.lastErr = ""
	snap := e.projectLocked()
	e.mu.Unlock()

	e.afterCommit(primitives.NewEvent(name, entity, label, nil), snap)
	return nil
}

// fail records err in the error slot for checks that run outside command.
func (e *Editor) fail(err error) error {
	e.mu.Lock()
	e.lastErr = err.Error()
	e.mu.Unlock()
	return err
}

func safely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return fn()
}

// afterCommit persists and publishes a committed change. Failures are
// logged; the command itself already succeeded.
func (e *Editor) afterCommit(event primitives.Event, snap ProjectSnapshot) {
	e.logger.Debug("command applied",
		slog.String("command", event.Type),
		slog.String("label", event.Label),
		slog.String("version", snap.Version))

	ctx := context.Background()
	if e.persister != nil {
		if err := e.persister.Save(ctx, snap); err != nil {
			e.logger.Error("persist snapshot", slog.String("project", e.id), slog.Any("error", err))
		}
	}
	if e.publisher != nil {
		md := ChangeMetadata{ProjectID: e.id, Version: snap.Version, Timestamp: snap.Timestamp}
		if err := e.publisher.Publish(ctx, event, md); err != nil {
			e.logger.Warn("publish change", slog.String("event", event.Type), slog.Any("error", err))
		}
	}
}

func checkPos(entity primitives.EntityType, pos, n int) error {
	if pos < 0 || pos >= n {
		return &primitives.PositionError{Entity: entity, Pos: pos, Len: n}
	}
	return nil
}
