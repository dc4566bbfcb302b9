package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Conn is a live handle to one user's connection. Send must be safe to call
// from multiple goroutines and must fail (not block forever) once the
// underlying transport is gone.
type Conn interface {
	Send(event Event) error
	Close() error
}

// Presence maps connected users to their live handle. Injected into the hub
// and the relay so tests can substitute a fake and so a shared store could
// replace the in-process table later.
type Presence interface {
	// Register upserts and returns the handle it displaced, if any.
	Register(userID uuid.UUID, conn Conn) (prev Conn)
	Lookup(userID uuid.UUID) (Conn, bool)
	// Remove drops the entry if it still holds conn; a nil conn matches any.
	// Reports whether an entry was removed.
	Remove(userID uuid.UUID, conn Conn) bool
	Online() []uuid.UUID
}

// Table is the single-process Presence implementation. At most one entry per
// user: a second connection replaces the first. Not persisted; every restart
// starts empty and clients re-establish presence by reconnecting.
type Table struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]Conn
}

func NewTable() *Table {
	return &Table{conns: make(map[uuid.UUID]Conn)}
}

func (t *Table) Register(userID uuid.UUID, conn Conn) Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev := t.conns[userID]
	t.conns[userID] = conn
	return prev
}

func (t *Table) Lookup(userID uuid.UUID) (Conn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	conn, ok := t.conns[userID]
	return conn, ok
}

// Remove is handle-compared so a replaced connection's late teardown cannot
// erase the registration that displaced it.
func (t *Table) Remove(userID uuid.UUID, conn Conn) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.conns[userID]
	if !ok {
		return false
	}
	if conn != nil && current != conn {
		return false
	}
	delete(t.conns, userID)
	return true
}

func (t *Table) Online() []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	users := make([]uuid.UUID, 0, len(t.conns))
	for id := range t.conns {
		users = append(users, id)
	}
	return users
}
