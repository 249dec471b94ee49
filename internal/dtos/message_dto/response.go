package message_dto

import (
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
)

type SenderInfo struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	Role        string `json:"role"`
}

type ReplySnippet struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
}

type ChannelMessageResponse struct {
	MessageID    string              `json:"message_id"`
	ChannelID    string              `json:"channel_id"`
	Sender       SenderInfo          `json:"sender"`
	Content      string              `json:"content"`
	MessageType  string              `json:"message_type"`
	CodeLanguage string              `json:"code_language,omitempty"`
	ImageURL     string              `json:"image_url,omitempty"`
	Files        []entity.Attachment `json:"files,omitempty"`
	ReplyTo      *ReplySnippet       `json:"reply_to,omitempty"`
	Reactions    entity.Reactions    `json:"reactions,omitempty"`
	IsPinned     bool                `json:"is_pinned"`
	IsEdited     bool                `json:"is_edited"`
	EditedAt     *time.Time          `json:"edited_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type DirectMessageResponse struct {
	MessageID      string              `json:"message_id"`
	ConversationID string              `json:"conversation_id"`
	SenderID       string              `json:"sender_id"`
	ReceiverID     string              `json:"receiver_id"`
	Content        string              `json:"content"`
	MessageType    string              `json:"message_type"`
	CodeLanguage   string              `json:"code_language,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"`
	Files          []entity.Attachment `json:"files,omitempty"`
	ReplyTo        *ReplySnippet       `json:"reply_to,omitempty"`
	Reactions      entity.Reactions    `json:"reactions,omitempty"`
	Delivered      bool                `json:"delivered"`
	Read           bool                `json:"read"`
	IsEdited       bool                `json:"is_edited"`
	EditedAt       *time.Time          `json:"edited_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

type ListChannelMessagesResponse struct {
	Messages []ChannelMessageResponse `json:"messages"`
	Page     int64                    `json:"page"`
	HasMore  bool                     `json:"has_more"`
}

type ListDirectMessagesResponse struct {
	Messages []DirectMessageResponse `json:"messages"`
	Page     int64                   `json:"page"`
	HasMore  bool                    `json:"has_more"`
}

type ToggleReactionResponse struct {
	MessageID      string           `json:"message_id"`
	Kind           string           `json:"kind"`
	ChannelID      string           `json:"channel_id,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	SenderID       string           `json:"sender_id"`
	ReceiverID     string           `json:"receiver_id,omitempty"`
	Emoji          string           `json:"emoji"`
	Added          bool             `json:"added"`
	Reactions      entity.Reactions `json:"reactions,omitempty"`
}

type TogglePinResponse struct {
	MessageID string `json:"message_id"`
	ChannelID string `json:"channel_id"`
	IsPinned  bool   `json:"is_pinned"`
}

type SavedItemResponse struct {
	MessageID string    `json:"message_id"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	SenderID  string    `json:"sender_id"`
	SavedAt   time.Time `json:"saved_at"`
}

type EditMessageResponse struct {
	MessageID      string     `json:"message_id"`
	Kind           string     `json:"kind"`
	ChannelID      string     `json:"channel_id,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	SenderID       string     `json:"sender_id"`
	ReceiverID     string     `json:"receiver_id,omitempty"`
	Content        string     `json:"content"`
	IsEdited       bool       `json:"is_edited"`
	EditedAt       *time.Time `json:"edited_at,omitempty"`
}

type DeleteMessageResponse struct {
	MessageID      string `json:"message_id"`
	Kind           string `json:"kind"`
	ChannelID      string `json:"channel_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id,omitempty"`
}

type ConversationResponse struct {
	ConversationID string    `json:"conversation_id"`
	OtherUserID    string    `json:"other_user_id"`
	LastMessageID  string    `json:"last_message_id,omitempty"`
	LastActivity   time.Time `json:"last_activity"`
	UnreadCount    int64     `json:"unread_count"`
}

type MarkReadResponse struct {
	ConversationID string `json:"conversation_id"`
	UpdatedCount   int64  `json:"updated_count"`
}
