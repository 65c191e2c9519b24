// Package primitives provides the foundational value types of an automaton
// specification: states, alphabet symbols, registers, auxiliary set names,
// transitions, designations, the RA update function and test cases.
//
// Everything here is a plain value. A Model is the complete snapshot the
// editor in internal/core swaps atomically; Clone produces a deep copy so a
// snapshot handed out can never observe a later mutation.
//
// Core invariants (checked by Model.Validate):
// - Labels are unique within their collection.
// - Every transition field that names an entity names an existing one.
// - Target sets are non-empty and duplicate-free.
// - Designations reference existing states.
//
// The error taxonomy shared by every layer lives in errors.go.
package primitives
