// Package runtime tracks live connections and routes validated envelopes
// between them and the persistence layer. It contains no game rules.
package runtime

import (
	"sync"

	"playroom/contract"
)

// Registry maps an authenticated identity to its single current live
// connection. It is the only shared mutable resource of the realtime layer
// and is safe for concurrent use from arbitrarily many connection
// goroutines.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]contract.Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]contract.Connection)}
}

// Register inserts or replaces the entry for userID in one atomic swap and
// returns the displaced connection (nil if none, or if conn was already
// registered) so the caller can close it. No lookup ever observes a missing
// entry for an identity mid-replacement.
func (r *Registry) Register(userID string, conn contract.Connection) contract.Connection {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.conns[userID]
	r.conns[userID] = conn
	if prev == conn {
		return nil
	}
	return prev
}

// Unregister removes the entry for userID only if it still holds conn. A
// stale connection's teardown can therefore never evict a newer replacement
// that has already been registered. Reports whether an entry was removed.
func (r *Registry) Unregister(userID string, conn contract.Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.conns[userID]; ok && current == conn {
		delete(r.conns, userID)
		return true
	}
	return false
}

func (r *Registry) Lookup(userID string) (contract.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[userID]
	return conn, ok
}

func (r *Registry) Has(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[userID]
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Snapshot returns a copy of the full mapping, isolated from subsequent
// mutation, so callers can iterate safely.
func (r *Registry) Snapshot() map[string]contract.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[string]contract.Connection, len(r.conns))
	for id, conn := range r.conns {
		snapshot[id] = conn
	}
	return snapshot
}
