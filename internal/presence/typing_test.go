package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypingTracker_SetOverwritesTarget(t *testing.T) {
	tracker := NewTypingTracker()

	tracker.Set("alice", TypingTarget{ChannelID: "web-dev"})
	tracker.Set("alice", TypingTarget{RecipientID: "bob"})

	target, ok := tracker.Get("alice")
	require.True(t, ok)
	assert.Empty(t, target.ChannelID, "switching targets must drop the old one")
	assert.Equal(t, "bob", target.RecipientID)
}

func TestTypingTracker_Clear(t *testing.T) {
	tracker := NewTypingTracker()

	tracker.Set("alice", TypingTarget{ChannelID: "web-dev"})
	tracker.Clear("alice")

	_, ok := tracker.Get("alice")
	assert.False(t, ok)

	// Clearing an absent user is a no-op.
	tracker.Clear("never-typed")
}
