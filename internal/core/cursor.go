// Package core provides the editable automaton model.
// CursorManager tracks the open edit cursor of each editable collection.
// Thread-safe for concurrent access.
package core

import (
	"sync"
)

// EditTarget names a collection that can be edited in place.
type EditTarget string

const (
	EditState      EditTarget = "state"
	EditSymbol     EditTarget = "symbol"
	EditRegister   EditTarget = "register"
	EditSet        EditTarget = "set"
	EditTransition EditTarget = "transition"
	EditUpdate     EditTarget = "update"
	EditTestCase   EditTarget = "testcase"
)

// Cursor is an open edit: the position under edit and the key of the entity
// that was there when the edit began.
type Cursor struct {
	Pos int
	Key string
}

// CursorManager holds at most one cursor per EditTarget.
// A commit compares the captured key with the entity currently at Pos so an
// edit never lands on a different entity after an intervening change.
type CursorManager struct {
	mu      sync.RWMutex
	cursors map[EditTarget]Cursor
}

// NewCursorManager creates an empty CursorManager.
func NewCursorManager() *CursorManager {
	return &CursorManager{
		cursors: make(map[EditTarget]Cursor),
	}
}

// Begin opens (or moves) the cursor of target.
func (c *CursorManager) Begin(target EditTarget, pos int, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursors[target] = Cursor{Pos: pos, Key: key}
}

// Get returns the open cursor of target, if any.
func (c *CursorManager) Get(target EditTarget) (Cursor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cur, ok := c.cursors[target]
	return cur, ok
}

// Clear closes the cursor of target.
func (c *CursorManager) Clear(target EditTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cursors, target)
}

// Reset closes every cursor.
func (c *CursorManager) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursors = make(map[EditTarget]Cursor)
}
