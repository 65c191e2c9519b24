// Package core provides the editable automaton model.
// Options for configuring Editor instances.
package core

import (
	"log/slog"

	"github.com/comalice/automatonx/internal/primitives"
)

// WithLogger configures the Editor's structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// WithPersister configures the Editor to save a ProjectSnapshot after every
// successful command. Save failures are logged, not returned.
func WithPersister(p Persister) Option {
	return func(e *Editor) {
		e.persister = p
	}
}

// WithPublisher configures the Editor with an EventPublisher for change events.
func WithPublisher(pb EventPublisher) Option {
	return func(e *Editor) {
		e.publisher = pb
	}
}

// WithEvaluator configures the client used by Evaluate and CheckEmptiness.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Editor) {
		e.evaluator = ev
	}
}

// WithVisualizer configures the Editor with a custom Visualizer.
func WithVisualizer(v Visualizer) Option {
	return func(e *Editor) {
		e.visualizer = v
	}
}

// WithID sets the project ID carried by snapshots and change metadata.
func WithID(id string) Option {
	return func(e *Editor) {
		e.id = id
	}
}

// WithModel seeds the Editor with an existing model. The model must be of
// the variant's kind; NewEditor returns an error otherwise.
func WithModel(m *primitives.Model) Option {
	return func(e *Editor) {
		e.seed = m
	}
}
