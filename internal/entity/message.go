package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MessageKind selects which of the two structurally parallel message stores
// an id refers to. A message id alone is not globally unique across kinds.
type MessageKind string

const (
	KindChannel MessageKind = "channel"
	KindDM      MessageKind = "dm"
)

func ValidKind(k MessageKind) bool {
	return k == KindChannel || k == KindDM
}

type MessageType string

const (
	TypeText   MessageType = "text"
	TypeCode   MessageType = "code"
	TypeImage  MessageType = "image"
	TypeFile   MessageType = "file"
	TypeSystem MessageType = "system"
)

// DeletedPlaceholder replaces the content of soft-deleted messages so reply
// chains keep resolving.
const DeletedPlaceholder = "[Message deleted]"

// Reactions maps an emoji (literal string, no canonicalization) to the
// ordered set of user ids that reacted with it. Keys with empty sets never
// persist.
type Reactions map[string][]string

// Toggle flips the (user, emoji) reaction: present removes, absent appends.
// Returns true when the reaction was added. Keys whose user set becomes
// empty are deleted.
func (r Reactions) Toggle(userID, emoji string) bool {
	users := r[emoji]
	for i, id := range users {
		if id == userID {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(r, emoji)
			} else {
				r[emoji] = users
			}
			return false
		}
	}
	r[emoji] = append(users, userID)
	return true
}

type Attachment struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Size int64  `bson:"size" json:"size"`
	Type string `bson:"type" json:"type"`
}

type ChannelMessage struct {
	ID           bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	ChannelID    string         `bson:"channel_id" json:"channel_id"`
	SenderID     string         `bson:"sender_id" json:"sender_id"`
	Content      string         `bson:"content" json:"content"`
	MessageType  MessageType    `bson:"message_type" json:"message_type"`
	CodeLanguage string         `bson:"code_language,omitempty" json:"code_language,omitempty"`
	Files        []Attachment   `bson:"files,omitempty" json:"files,omitempty"`
	ImageURL     string         `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ReplyTo      *bson.ObjectID `bson:"reply_to,omitempty" json:"reply_to,omitempty"`
	Reactions    Reactions      `bson:"reactions,omitempty" json:"reactions,omitempty"`
	IsPinned     bool           `bson:"is_pinned" json:"is_pinned"`
	IsDeleted    bool           `bson:"is_deleted" json:"is_deleted"`
	IsEdited     bool           `bson:"is_edited" json:"is_edited"`
	EditedAt     *time.Time     `bson:"edited_at,omitempty" json:"edited_at,omitempty"`
	CreatedAt    time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `bson:"updated_at" json:"updated_at"`
}

type DirectMessage struct {
	ID             bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	ConversationID string         `bson:"conversation_id" json:"conversation_id"`
	SenderID       string         `bson:"sender_id" json:"sender_id"`
	ReceiverID     string         `bson:"receiver_id" json:"receiver_id"`
	Content        string         `bson:"content" json:"content"`
	MessageType    MessageType    `bson:"message_type" json:"message_type"`
	CodeLanguage   string         `bson:"code_language,omitempty" json:"code_language,omitempty"`
	Files          []Attachment   `bson:"files,omitempty" json:"files,omitempty"`
	ImageURL       string         `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ReplyTo        *bson.ObjectID `bson:"reply_to,omitempty" json:"reply_to,omitempty"`
	Reactions      Reactions      `bson:"reactions,omitempty" json:"reactions,omitempty"`
	Delivered      bool           `bson:"delivered" json:"delivered"`
	Read           bool           `bson:"read" json:"read"`
	ReadAt         *time.Time     `bson:"read_at,omitempty" json:"read_at,omitempty"`
	IsDeleted      bool           `bson:"is_deleted" json:"is_deleted"`
	IsEdited       bool           `bson:"is_edited" json:"is_edited"`
	EditedAt       *time.Time     `bson:"edited_at,omitempty" json:"edited_at,omitempty"`
	CreatedAt      time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updated_at"`
}
