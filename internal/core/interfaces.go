package core

import (
	"context"
	"time"

	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
)

// Capabilities describes which optional entity families and designations a
// kind has.
type Capabilities struct {
	Registers       bool // register collection and update function (RA)
	Sets            bool // auxiliary set names (SAFA)
	MultiInitial    bool // initial designation is a set (NFA, CCA)
	GlobalAccepting bool // second accepting set Fg (CMA)
	Epsilon         bool // ε-labelled transitions (NFA)
	Emptiness       bool // emptiness check supported by the service (NFA, SAFA)
}

// Variant carries every kind-specific rule the editor needs. One exists per
// Kind; see internal/variants.
type Variant interface {
	Kind() primitives.Kind
	Capabilities() Capabilities

	// GroupKey projects t onto the fields that decide merge-on-add.
	GroupKey(t primitives.Transition) primitives.GroupKey

	// Normalize zeroes fields the kind does not use, fills default markers
	// and collapses duplicate targets.
	Normalize(t primitives.Transition) primitives.Transition

	// CheckTransition reports missing or out-of-range fields of a normalized
	// transition. Reference existence is checked by Model.Validate.
	CheckTransition(t primitives.Transition, m *primitives.Model) error

	// DeleteScope returns the ascending row indexes removed when the row at
	// pos is deleted.
	DeleteScope(m *primitives.Model, pos int) []int
}

// Evaluator submits a model snapshot to the external evaluation service.
type Evaluator interface {
	Evaluate(ctx context.Context, m *primitives.Model) ([]export.CaseResult, error)
	CheckEmptiness(ctx context.Context, m *primitives.Model) (bool, error)
}

// Persister stores project snapshots.
type Persister interface {
	Save(ctx context.Context, snapshot ProjectSnapshot) error
	Load(ctx context.Context, projectID string) (ProjectSnapshot, error)
}

// ProjectSnapshot is the serializable state of one editor.
type ProjectSnapshot struct {
	ProjectID string           `json:"projectID" yaml:"projectID"`
	Version   string           `json:"version" yaml:"version"`
	Model     primitives.Model `json:"model" yaml:"model"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
}

// ChangeMetadata accompanies every published change event.
type ChangeMetadata struct {
	ProjectID string    `json:"projectID" yaml:"projectID"`
	Version   string    `json:"version" yaml:"version"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event primitives.Event, metadata ChangeMetadata) error
	Close() error
}

type Visualizer interface {
	ExportDOT(m *primitives.Model) string
}
