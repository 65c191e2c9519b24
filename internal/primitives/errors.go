package primitives

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels for errors.Is. Every typed error below matches exactly one.
var (
	ErrDuplicateEntity      = errors.New("duplicate entity")
	ErrReferencedEntity     = errors.New("entity is referenced")
	ErrUnknownEntity        = errors.New("unknown entity")
	ErrReservedLabel        = errors.New("reserved label")
	ErrMalformedTestCase    = errors.New("malformed test case")
	ErrIncompleteTransition = errors.New("incomplete transition")
	ErrInvalidValue         = errors.New("invalid value")
	ErrUnsupported          = errors.New("unsupported for automaton kind")
	ErrPosition             = errors.New("position out of range")
	ErrStaleCursor          = errors.New("stale edit cursor")
	ErrNetwork              = errors.New("evaluation service failure")
)

// EntityType names a collection of the model for messages and lookups.
type EntityType string

const (
	EntityState      EntityType = "state"
	EntitySymbol     EntityType = "symbol"
	EntityRegister   EntityType = "register"
	EntitySet        EntityType = "set"
	EntityTransition EntityType = "transition"
	EntityUpdate     EntityType = "update function entry"
	EntityTestCase   EntityType = "test case"
)

// DuplicateEntityError reports an add of an already-present label.
type DuplicateEntityError struct {
	Entity EntityType
	Label  string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Entity, e.Label)
}

func (e *DuplicateEntityError) Is(target error) bool { return target == ErrDuplicateEntity }

// ReferencedEntityError reports a delete blocked by a live reference. Usage
// names the first reference site found.
type ReferencedEntityError struct {
	Entity EntityType
	Label  string
	Usage  string
}

func (e *ReferencedEntityError) Error() string {
	return fmt.Sprintf("cannot delete %s %s as it's being used (%s)", e.Entity, e.Label, e.Usage)
}

func (e *ReferencedEntityError) Is(target error) bool { return target == ErrReferencedEntity }

// UnknownEntityError reports a reference to an entity that does not exist.
type UnknownEntityError struct {
	Entity EntityType
	Label  string
	Field  string
}

func (e *UnknownEntityError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown %s %q", e.Entity, e.Label)
	}
	return fmt.Sprintf("%s: unknown %s %q", e.Field, e.Entity, e.Label)
}

func (e *UnknownEntityError) Is(target error) bool { return target == ErrUnknownEntity }

// ReservedLabelError reports an attempt to add a reserved marker as a label.
type ReservedLabelError struct {
	Entity EntityType
	Label  string
}

func (e *ReservedLabelError) Error() string {
	return fmt.Sprintf("%q is reserved and cannot be used as a %s", e.Label, e.Entity)
}

func (e *ReservedLabelError) Is(target error) bool { return target == ErrReservedLabel }

// IncompleteTransitionError reports a required field missing before add/edit.
type IncompleteTransitionError struct {
	Entity EntityType
	Field  string
}

func (e *IncompleteTransitionError) Error() string {
	entity := e.Entity
	if entity == "" {
		entity = EntityTransition
	}
	return fmt.Sprintf("please fill all %s fields: %s is missing", entity, e.Field)
}

func (e *IncompleteTransitionError) Is(target error) bool { return target == ErrIncompleteTransition }

// PositionError reports an index outside a collection.
type PositionError struct {
	Entity EntityType
	Pos    int
	Len    int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("no %s at position %d (have %d)", e.Entity, e.Pos+1, e.Len)
}

func (e *PositionError) Is(target error) bool { return target == ErrPosition }

// UnsupportedError reports an operation the automaton kind does not have.
type UnsupportedError struct {
	Kind Kind
	Op   string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support %s", e.Kind, e.Op)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// StaleCursorError reports a commit whose captured key no longer matches the
// entity under the cursor.
type StaleCursorError struct {
	Entity EntityType
	Pos    int
	Want   string
	Got    string
}

func (e *StaleCursorError) Error() string {
	return fmt.Sprintf("%s at position %d changed while editing (was %s, now %s)", e.Entity, e.Pos+1, e.Want, e.Got)
}

func (e *StaleCursorError) Is(target error) bool { return target == ErrStaleCursor }

// TestCaseFault classifies a MalformedTestCaseError.
type TestCaseFault string

const (
	FaultUnknownSymbol TestCaseFault = "unknown symbol"
	FaultInvalidValue  TestCaseFault = "invalid value"
	FaultSyntax        TestCaseFault = "syntax error"
)

// MalformedTestCaseError identifies which step of a test case failed which
// constraint. Step is 1-based; 0 means the whole input.
type MalformedTestCaseError struct {
	Fault   TestCaseFault
	Step    int
	Symbol  string
	Value   string
	Invalid []string
	Detail  string
}

func (e *MalformedTestCaseError) Error() string {
	var b strings.Builder
	if e.Step > 0 {
		fmt.Fprintf(&b, "step %d: ", e.Step)
	}
	switch e.Fault {
	case FaultUnknownSymbol:
		if len(e.Invalid) > 0 {
			fmt.Fprintf(&b, "invalid characters in test case: %s", strings.Join(e.Invalid, ", "))
		} else {
			fmt.Fprintf(&b, "symbol '%s' is not in alphabet", e.Symbol)
		}
	case FaultInvalidValue:
		fmt.Fprintf(&b, "value '%s' %s", e.Value, e.Detail)
	default:
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *MalformedTestCaseError) Is(target error) bool { return target == ErrMalformedTestCase }

// NetworkError wraps a transport failure or a non-success response from the
// evaluation service.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Failed to connect to the server"
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
