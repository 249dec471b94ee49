package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactions_ToggleAddThenRemove(t *testing.T) {
	r := Reactions{}

	added := r.Toggle("alice", "🔥")
	assert.True(t, added)
	assert.Equal(t, []string{"alice"}, r["🔥"])

	added = r.Toggle("bob", "🔥")
	assert.True(t, added)
	assert.Equal(t, []string{"alice", "bob"}, r["🔥"], "order of arrival is preserved")

	added = r.Toggle("alice", "🔥")
	assert.False(t, added, "second toggle removes")
	assert.Equal(t, []string{"bob"}, r["🔥"])
}

func TestReactions_ToggleIsInvolution(t *testing.T) {
	r := Reactions{}

	r.Toggle("alice", "👍")
	r.Toggle("alice", "👍")

	_, exists := r["👍"]
	assert.False(t, exists, "emptied emoji key must be pruned, not kept as an empty set")
	assert.Empty(t, r)
}

func TestReactions_DistinctEmojisIndependent(t *testing.T) {
	r := Reactions{}

	r.Toggle("alice", "👍")
	r.Toggle("alice", "👎")
	r.Toggle("alice", "👍")

	_, thumbsUp := r["👍"]
	assert.False(t, thumbsUp)
	assert.Equal(t, []string{"alice"}, r["👎"])
}

func TestReactions_NoCanonicalization(t *testing.T) {
	r := Reactions{}

	r.Toggle("alice", "thumbsup")
	r.Toggle("alice", "👍")

	assert.Len(t, r, 2, "emoji strings are compared literally")
}

func TestPairKey_Normalizes(t *testing.T) {
	lo, hi := PairKey("bob", "alice")
	assert.Equal(t, "alice", lo)
	assert.Equal(t, "bob", hi)

	lo2, hi2 := PairKey("alice", "bob")
	assert.Equal(t, lo, lo2, "pair key must not depend on argument order")
	assert.Equal(t, hi, hi2)
}

func TestConversation_Other(t *testing.T) {
	c := &Conversation{UserA: "alice", UserB: "bob"}

	assert.Equal(t, "bob", c.Other("alice"))
	assert.Equal(t, "alice", c.Other("bob"))
}
