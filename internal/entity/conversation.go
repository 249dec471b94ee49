package entity

import (
	"time"
)

// Conversation holds the unique pairing of two users. The pair is stored in
// lexicographic order so the unique index covers the unordered pair.
type Conversation struct {
	ID            string `gorm:"primaryKey"`
	UserA         string `gorm:"not null;uniqueIndex:idx_conversation_pair"`
	UserB         string `gorm:"not null;uniqueIndex:idx_conversation_pair"`
	LastMessageID string
	LastActivity  time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// PairKey normalizes an unordered participant pair into the stored order.
func PairKey(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// Participants returns both participant ids.
func (c *Conversation) Participants() []string {
	return []string{c.UserA, c.UserB}
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID string) string {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}

// ConversationMember carries the per-participant unread counter and read
// watermark for one side of a conversation.
type ConversationMember struct {
	ID             int64  `gorm:"primaryKey"`
	ConversationID string `gorm:"not null;uniqueIndex:idx_conversation_member"`
	UserID         string `gorm:"not null;uniqueIndex:idx_conversation_member"`
	UnreadCount    int64  `gorm:"not null;default:0"`
	LastReadAt     *time.Time
}
