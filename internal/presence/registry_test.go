package presence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConn struct {
	id     string
	closed bool
	reason string
}

func (c *stubConn) ConnID() string { return c.id }
func (c *stubConn) ForceClose(reason string) {
	c.closed = true
	c.reason = reason
}

func TestRegistry_JoinSingleEntry(t *testing.T) {
	reg := NewRegistry()

	conn := &stubConn{id: "conn-1"}
	evicted, online := reg.Join("alice", conn)

	assert.Nil(t, evicted, "first join should evict nothing")
	assert.Equal(t, []string{"alice"}, online)
	assert.Equal(t, 1, reg.Count())

	got, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-1", got.ConnID())
}

func TestRegistry_ReconnectEvictsPrevious(t *testing.T) {
	reg := NewRegistry()

	first := &stubConn{id: "conn-1"}
	second := &stubConn{id: "conn-2"}

	reg.Join("alice", first)
	evicted, online := reg.Join("alice", second)

	require.NotNil(t, evicted, "second join must return the stale handle")
	assert.Equal(t, "conn-1", evicted.ConnID())
	assert.Equal(t, []string{"alice"}, online, "user stays online across reconnect")
	assert.Equal(t, 1, reg.Count(), "at most one entry per user")

	got, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", got.ConnID(), "newest connection wins")
}

func TestRegistry_StaleLeaveDoesNotTouchWinner(t *testing.T) {
	reg := NewRegistry()

	first := &stubConn{id: "conn-1"}
	second := &stubConn{id: "conn-2"}

	reg.Join("alice", first)
	reg.Join("alice", second)

	// The evicted connection's disconnect arrives after the reconnect.
	userID, removed, online := reg.Leave(first)

	assert.Empty(t, userID)
	assert.False(t, removed, "stale handle must not remove the winner's entry")
	assert.Equal(t, []string{"alice"}, online)

	got, ok := reg.Lookup("alice")
	require.True(t, ok)
	assert.Equal(t, "conn-2", got.ConnID())
}

func TestRegistry_LeaveRemovesOwner(t *testing.T) {
	reg := NewRegistry()

	conn := &stubConn{id: "conn-1"}
	reg.Join("alice", conn)

	userID, removed, online := reg.Leave(conn)

	assert.Equal(t, "alice", userID)
	assert.True(t, removed)
	assert.Empty(t, online)

	_, ok := reg.Lookup("alice")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Count())
}

func TestRegistry_LeaveUnknownConn(t *testing.T) {
	reg := NewRegistry()
	reg.Join("alice", &stubConn{id: "conn-1"})

	_, removed, online := reg.Leave(&stubConn{id: "never-joined"})

	assert.False(t, removed)
	assert.Equal(t, []string{"alice"}, online)
}

func TestRegistry_OnlineSnapshotSorted(t *testing.T) {
	reg := NewRegistry()

	for _, id := range []string{"charlie", "alice", "bob"} {
		reg.Join(id, &stubConn{id: "conn-" + id})
	}

	assert.Equal(t, []string{"alice", "bob", "charlie"}, reg.Online())
}

func TestRegistry_ConcurrentJoinsOneWinner(t *testing.T) {
	reg := NewRegistry()

	const n = 50
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			reg.Join("alice", &stubConn{id: fmt.Sprintf("conn-%d", i)})
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}

	assert.Equal(t, 1, reg.Count(), "racing joins must leave exactly one entry")
	_, ok := reg.Lookup("alice")
	assert.True(t, ok)
}
