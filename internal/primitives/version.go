// Package primitives provides content versioning for Model snapshots.
package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a deterministic content version for a Model:
// the first 8 bytes of SHA256 over its JSON encoding, hex encoded. Empty and
// nil collections hash the same.
func ComputeVersion(m *Model) string {
	data, err := json.Marshal(m.compact())
	if err != nil {
		// Fallback (should not happen for a validated model)
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}

// compact returns a copy whose empty collections are nil.
func (m *Model) compact() *Model {
	c := m.Clone()
	for _, p := range []*[]string{&c.States, &c.Alphabet, &c.Sets, &c.Initial, &c.Accepting, &c.GlobalAccepting} {
		if len(*p) == 0 {
			*p = nil
		}
	}
	if len(c.Registers) == 0 {
		c.Registers = nil
	}
	if len(c.Transitions) == 0 {
		c.Transitions = nil
	}
	if len(c.Updates) == 0 {
		c.Updates = nil
	}
	if len(c.TestCases) == 0 {
		c.TestCases = nil
	}
	return c
}
