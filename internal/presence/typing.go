package presence

import (
	"sync"
)

// TypingTarget names where a user is typing: a channel room or a direct
// recipient, never both.
type TypingTarget struct {
	ChannelID   string
	RecipientID string
}

// TypingTracker holds ephemeral typing state. Entries are cleared on the next
// non-typing signal, on message send, and on disconnect of the typing user.
type TypingTracker struct {
	mu     sync.Mutex
	byUser map[string]TypingTarget
}

func NewTypingTracker() *TypingTracker {
	return &TypingTracker{byUser: make(map[string]TypingTarget)}
}

func (t *TypingTracker) Set(userID string, target TypingTarget) {
	t.mu.Lock()
	t.byUser[userID] = target
	t.mu.Unlock()
}

func (t *TypingTracker) Clear(userID string) {
	t.mu.Lock()
	delete(t.byUser, userID)
	t.mu.Unlock()
}

func (t *TypingTracker) Get(userID string) (TypingTarget, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	target, ok := t.byUser[userID]
	return target, ok
}
