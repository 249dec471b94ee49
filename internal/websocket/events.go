package websocket

import (
	"encoding/json"
	"time"
)

// Event names shared with the web client. Inbound payloads are untrusted and
// re-run the same authorization checks as their REST equivalents.
const (
	EventJoin         = "join"
	EventJoinChannel  = "joinChannel"
	EventLeaveChannel = "leaveChannel"

	EventChannelMessage = "channelMessage"
	EventDirectMessage  = "directMessage"
	EventTyping         = "typing"
	EventMarkAsRead     = "markAsRead"

	EventUserTyping       = "userTyping"
	EventMessagesRead     = "messagesRead"
	EventOnlineUsers      = "onlineUsers"
	EventUserStatusUpdate = "userStatusUpdate"
	EventMessageDelivered = "messageDelivered"
	EventSessionReplaced  = "sessionReplaced"

	EventMessageEdited   = "messageEdited"
	EventMessageDeleted  = "messageDeleted"
	EventMessageReaction = "messageReaction"
	EventMessagePinned   = "messagePinned"
)

type InboundEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OutgoingEvent struct {
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

func NewEvent(event string, data any) OutgoingEvent {
	return OutgoingEvent{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
}

// Inbound payloads.

type JoinPayload struct {
	UserID string `json:"userId"`
}

type ChannelRoomPayload struct {
	ChannelID string `json:"channelId"`
}

type ChannelMessagePayload struct {
	ChannelID string          `json:"channelId"`
	SenderID  string          `json:"senderId"`
	Message   json.RawMessage `json:"message"`
}

type DirectMessagePayload struct {
	RecipientID string          `json:"recipientId"`
	SenderID    string          `json:"senderId"`
	Message     json.RawMessage `json:"message"`
}

type TypingPayload struct {
	ChannelID   string `json:"channelId,omitempty"`
	RecipientID string `json:"recipientId,omitempty"`
	SenderID    string `json:"senderId"`
	SenderName  string `json:"senderName"`
	IsTyping    bool   `json:"isTyping"`
}

type MarkAsReadPayload struct {
	MessageIDs []string `json:"messageIds"`
	SenderID   string   `json:"senderId"`
	ChannelID  string   `json:"channelId,omitempty"`
}

// Server-originated payloads.

type OnlineUsersPayload struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

type UserStatusPayload struct {
	UserID   string    `json:"userId"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"lastSeen"`
}

type MessageDeliveredPayload struct {
	MessageID   string `json:"messageId"`
	RecipientID string `json:"recipientId"`
}
