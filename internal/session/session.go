// Package session tracks pending multi-turn conversations per user.
package session

import "sync"

// Table holds which users currently owe the bot a feedback message.
// A session is single-use: it is consumed by the next text message from
// that user regardless of content, and never expires on its own.
// Safe for concurrent use; set and consume are atomic per user.
type Table struct {
	mu      sync.Mutex
	pending map[int64]struct{}
}

// NewTable creates an empty session table.
func NewTable() *Table {
	return &Table{pending: make(map[int64]struct{})}
}

// AwaitFeedback marks the user as owing a feedback message.
func (t *Table) AwaitFeedback(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[userID] = struct{}{}
}

// Consume clears the user's pending session and reports whether one existed.
// Only one of two concurrent callers can observe true.
func (t *Table) Consume(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[userID]
	if ok {
		delete(t.pending, userID)
	}
	return ok
}

// Awaiting reports whether the user has a pending session, without consuming it.
func (t *Table) Awaiting(userID int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[userID]
	return ok
}
