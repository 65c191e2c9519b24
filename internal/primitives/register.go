package primitives

import (
	"fmt"
	"strconv"
	"strings"
)

// Register is an RA register. A nil Initial is the unset sentinel.
type Register struct {
	Index   string `json:"index" yaml:"index"`
	Initial *int   `json:"initial" yaml:"initial"`
}

// ParseRegisterValue accepts "", "⊥" (unset) or a positive integer.
func ParseRegisterValue(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == Unset {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: register value must be a positive integer, got %q", ErrInvalidValue, s)
	}
	return &n, nil
}

// ValueString renders Initial, using Unset for nil.
func (r Register) ValueString() string {
	return FormatValue(r.Initial)
}

// UpdateKey identifies an RA update-function entry.
type UpdateKey struct {
	State  string
	Symbol string
}

// UpdateEntry maps (state, symbol) to a register index.
type UpdateEntry struct {
	State    string `json:"state" yaml:"state"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Register string `json:"register" yaml:"register"`
}

// Key returns the entry's lookup key.
func (u UpdateEntry) Key() UpdateKey {
	return UpdateKey{State: u.State, Symbol: u.Symbol}
}

// FormatValue renders an optional integer, using Unset for nil.
func FormatValue(v *int) string {
	if v == nil {
		return Unset
	}
	return strconv.Itoa(*v)
}

// IntPtr is a convenience for building optional values.
func IntPtr(n int) *int { return &n }
