// Package automatonx edits specifications of five automaton kinds: NFA,
// register automata (RA), set-augmented finite automata (SAFA), class
// counting automata (CCA) and class memory automata (CMA).
//
// An Editor owns one model and applies atomic commands to it. Renames are
// cascaded into every reference, deletes of referenced entities are refused,
// and adding a transition whose key already exists merges the target sets.
// Test cases are parsed with the kind's grammar, and a snapshot can be sent
// to an external evaluation service.
//
//	ed, err := automatonx.New(automatonx.NFA)
//	ed.AddState("q0")
//	ed.AddSymbol("a")
//	ed.AddTransition(automatonx.Transition{Source: "q0", Symbol: "a", Targets: automatonx.TargetsOf("q0")})
package automatonx

import (
	"context"
	"fmt"

	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/evalclient"
	"github.com/comalice/automatonx/internal/export"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/production"
	"github.com/comalice/automatonx/internal/variants"
)

type (
	Editor           = core.Editor
	Option           = core.Option
	Capabilities     = core.Capabilities
	EditTarget       = core.EditTarget
	ProjectSnapshot  = core.ProjectSnapshot
	ChangeMetadata   = core.ChangeMetadata
	Evaluator        = core.Evaluator
	Persister        = core.Persister
	EventPublisher   = core.EventPublisher
	EvaluationResult = core.EvaluationResult
	EmptinessResult  = core.EmptinessResult
	TestCaseIssue    = core.TestCaseIssue

	Kind          = primitives.Kind
	Model         = primitives.Model
	Transition    = primitives.Transition
	Target        = primitives.Target
	Guard         = primitives.Guard
	CounterUpdate = primitives.CounterUpdate
	Register      = primitives.Register
	UpdateEntry   = primitives.UpdateEntry
	TestCase      = primitives.TestCase
	Step          = primitives.Step
	Event         = primitives.Event

	CaseResult = export.CaseResult
	Request    = export.EvaluateRequest
	Client     = evalclient.Client
	Store      = production.Store
)

const (
	NFA  = primitives.NFA
	RA   = primitives.RA
	SAFA = primitives.SAFA
	CCA  = primitives.CCA
	CMA  = primitives.CMA

	Epsilon = primitives.Epsilon
	Unset   = primitives.Unset
	None    = primitives.None
)

const (
	EditState      = core.EditState
	EditSymbol     = core.EditSymbol
	EditRegister   = core.EditRegister
	EditSet        = core.EditSet
	EditTransition = core.EditTransition
	EditUpdate     = core.EditUpdate
	EditTestCase   = core.EditTestCase
)

// Error sentinels for errors.Is.
var (
	ErrDuplicateEntity      = primitives.ErrDuplicateEntity
	ErrReferencedEntity     = primitives.ErrReferencedEntity
	ErrUnknownEntity        = primitives.ErrUnknownEntity
	ErrReservedLabel        = primitives.ErrReservedLabel
	ErrMalformedTestCase    = primitives.ErrMalformedTestCase
	ErrIncompleteTransition = primitives.ErrIncompleteTransition
	ErrInvalidValue         = primitives.ErrInvalidValue
	ErrUnsupported          = primitives.ErrUnsupported
	ErrPosition             = primitives.ErrPosition
	ErrStaleCursor          = primitives.ErrStaleCursor
	ErrNetwork              = primitives.ErrNetwork
	ErrNoEvaluator          = core.ErrNoEvaluator
)

var (
	WithLogger     = core.WithLogger
	WithPersister  = core.WithPersister
	WithPublisher  = core.WithPublisher
	WithEvaluator  = core.WithEvaluator
	WithVisualizer = core.WithVisualizer
	WithID         = core.WithID
	WithModel      = core.WithModel

	ParseKind          = primitives.ParseKind
	ParseCompareOp     = primitives.ParseCompareOp
	ParseCounterUpdate = primitives.ParseCounterUpdate
	ParseRegisterValue = primitives.ParseRegisterValue
	TargetsOf          = primitives.TargetsOf
	IntPtr             = primitives.IntPtr
	FormatTransition   = core.FormatTransition
)

// New creates an Editor for kind. DOT rendering is enabled by default.
func New(kind Kind, opts ...Option) (*Editor, error) {
	v, err := variants.For(kind)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{core.WithVisualizer(&production.DefaultVisualizer{})}, opts...)
	return core.NewEditor(v, opts...)
}

// NewStore opens a project directory; format is "yaml" (default) or "json".
func NewStore(format, dir string) (Store, error) {
	return production.NewPersister(format, dir)
}

// Open loads project id from store into a new Editor that saves every
// committed change back to the store.
func Open(ctx context.Context, store Persister, id string, opts ...Option) (*Editor, error) {
	snap, err := store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", id, err)
	}
	base := []Option{WithID(id), WithModel(&snap.Model), WithPersister(store)}
	return New(snap.Model.Kind, append(base, opts...)...)
}

// NewClient returns an HTTP client for the evaluation service at baseURL,
// usable with WithEvaluator.
func NewClient(baseURL string) *Client {
	return evalclient.New(baseURL)
}

// Export returns the request body the evaluation service receives for m.
func Export(m *Model) (Request, error) {
	return export.NewEvaluateRequest(m)
}
