package realtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTable_RegisterReplaces verifies that a second registration for the same
// user displaces the first instead of duplicating it.
func TestTable_RegisterReplaces(t *testing.T) {
	table := NewTable()
	userID := uuid.New()
	conn1 := &fakeConn{}
	conn2 := &fakeConn{}

	prev := table.Register(userID, conn1)
	assert.Nil(t, prev, "first registration should displace nothing")

	prev = table.Register(userID, conn2)
	assert.Same(t, conn1, prev, "second registration should return the displaced handle")

	current, ok := table.Lookup(userID)
	require.True(t, ok)
	assert.Same(t, conn2, current, "lookup should return the latest handle")
	assert.Len(t, table.Online(), 1, "replacement must not duplicate the entry")
}

func TestTable_RemoveHandleCompared(t *testing.T) {
	table := NewTable()
	userID := uuid.New()
	oldConn := &fakeConn{}
	newConn := &fakeConn{}

	table.Register(userID, oldConn)
	table.Register(userID, newConn)

	// The displaced connection's teardown must not erase the new registration.
	removed := table.Remove(userID, oldConn)
	assert.False(t, removed)
	_, ok := table.Lookup(userID)
	assert.True(t, ok, "entry should survive a stale remove")

	removed = table.Remove(userID, newConn)
	assert.True(t, removed)
	_, ok = table.Lookup(userID)
	assert.False(t, ok)
}

func TestTable_RemoveAbsentIsNoop(t *testing.T) {
	table := NewTable()

	removed := table.Remove(uuid.New(), nil)
	assert.False(t, removed)
}

func TestTable_RemoveNilConnMatchesAny(t *testing.T) {
	table := NewTable()
	userID := uuid.New()
	table.Register(userID, &fakeConn{})

	assert.True(t, table.Remove(userID, nil))
	_, ok := table.Lookup(userID)
	assert.False(t, ok)
}

func TestTable_Online(t *testing.T) {
	table := NewTable()
	a := uuid.New()
	b := uuid.New()

	table.Register(a, &fakeConn{})
	table.Register(b, &fakeConn{})

	online := table.Online()
	assert.ElementsMatch(t, []uuid.UUID{a, b}, online)
}

// TestTable_ConcurrentAccess exercises the table from many goroutines; run
// with -race to check the guard.
func TestTable_ConcurrentAccess(t *testing.T) {
	table := NewTable()
	users := make([]uuid.UUID, 16)
	for i := range users {
		users[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := users[i%len(users)]
			conn := &fakeConn{}
			table.Register(userID, conn)
			table.Lookup(userID)
			table.Online()
			table.Remove(userID, conn)
		}(i)
	}
	wg.Wait()
}
