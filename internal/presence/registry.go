package presence

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Conn is the live-connection handle the registry tracks. The websocket
// client satisfies it; tests use stubs.
type Conn interface {
	ConnID() string
	ForceClose(reason string)
}

type Entry struct {
	UserID   string
	Conn     Conn
	Status   string
	JoinedAt time.Time
}

// Registry is the authoritative map of user id -> live connection. Invariant:
// at most one entry per user id at any instant. All mutations run under one
// mutex so two connections can never both believe they won the slot.
type Registry struct {
	mu     sync.Mutex
	byUser map[string]*Entry
	byConn map[string]string // conn id -> user id, for disconnects keyed by connection identity
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]*Entry),
		byConn: make(map[string]string),
	}
}

// Join installs conn as the single live handle for userID. Any prior handle
// is removed first and returned so the caller can force-close it outside the
// lock. The returned list is the post-join online snapshot.
func (r *Registry) Join(userID string, conn Conn) (evicted Conn, online []string) {
	r.mu.Lock()
	if prev, ok := r.byUser[userID]; ok {
		delete(r.byConn, prev.Conn.ConnID())
		evicted = prev.Conn
	}
	r.byUser[userID] = &Entry{
		UserID:   userID,
		Conn:     conn,
		Status:   "online",
		JoinedAt: time.Now(),
	}
	r.byConn[conn.ConnID()] = userID
	online = r.onlineLocked()
	r.mu.Unlock()

	if evicted != nil {
		log.Info().Str("userID", userID).Str("evictedConn", evicted.ConnID()).Msg("presence: evicting stale session")
	}
	return evicted, online
}

// Leave removes the entry owned by conn. A stale connection that was already
// evicted by a reconnect does not touch the winner's entry: the reverse
// lookup is keyed by connection identity, not user id.
func (r *Registry) Leave(conn Conn) (userID string, removed bool, online []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[conn.ConnID()]
	if !ok {
		return "", false, r.onlineLocked()
	}

	delete(r.byConn, conn.ConnID())
	delete(r.byUser, userID)
	return userID, true, r.onlineLocked()
}

// Lookup resolves userID to its current live handle, if any. Absence is a
// normal outcome, not an error: the recipient gets the change on next fetch.
func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byUser[userID]
	if !ok {
		return nil, false
	}
	return entry.Conn, true
}

// Online returns the sorted online user-id snapshot.
func (r *Registry) Online() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.onlineLocked()
}

func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser)
}

func (r *Registry) onlineLocked() []string {
	ids := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
