package types

import (
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
)

type ReplyTo struct {
	MessageID string `json:"message_id"`
	Content   string `json:"content"`
	SenderID  string `json:"sender_id"`
}

type ChannelMessageBroadcast struct {
	MessageID   string    `json:"message_id"`
	ChannelID   string    `json:"channel_id"`
	SenderID    string    `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	Content     string    `json:"content"`
	MessageType string    `json:"message_type"`
	ReplyTo     *ReplyTo  `json:"reply_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type DirectMessageBroadcast struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	ReceiverID     string    `json:"receiver_id"`
	Content        string    `json:"content"`
	MessageType    string    `json:"message_type"`
	ReplyTo        *ReplyTo  `json:"reply_to,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageMutationBroadcast covers edit, delete, reaction, and pin fan-out.
// Kind selects the routing: channel mutations go to the channel room, dm
// mutations to the other participant's live connection.
type MessageMutationBroadcast struct {
	MessageID      string           `json:"message_id"`
	Kind           string           `json:"kind"`
	ChannelID      string           `json:"channel_id,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	TargetUserID   string           `json:"target_user_id,omitempty"`
	ActorID        string           `json:"actor_id"`
	Content        string           `json:"content,omitempty"`
	Reactions      entity.Reactions `json:"reactions,omitempty"`
	IsPinned       *bool            `json:"is_pinned,omitempty"`
}

type StatusBroadcast struct {
	UserID   string    `json:"user_id"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}
