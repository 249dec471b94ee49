package entity

import (
	"time"
)

type Channel struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"uniqueIndex;not null"`
	Slug         string `gorm:"uniqueIndex;not null"`
	Description  string
	Icon         string
	DisplayOrder int       `gorm:"not null;default:0"`
	MessageCount int64     `gorm:"not null;default:0"`
	LastActivity time.Time `gorm:"not null"`
	IsDefault    bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type ChannelMember struct {
	ID        int64  `gorm:"primaryKey"`
	ChannelID string `gorm:"not null;uniqueIndex:idx_channel_member"`
	UserID    string `gorm:"not null;uniqueIndex:idx_channel_member"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	JoinedAt  time.Time `gorm:"autoCreateTime"`
}

// ChannelPin mirrors the pinned flag on the message document. TogglePin keeps
// the two in agreement; the flag is the primary write and the row is
// compensated if it cannot follow.
type ChannelPin struct {
	ID        int64  `gorm:"primaryKey"`
	ChannelID string `gorm:"not null;uniqueIndex:idx_channel_pin"`
	MessageID string `gorm:"not null;uniqueIndex:idx_channel_pin"`
	PinnedBy  string `gorm:"not null"`
	PinnedAt  time.Time `gorm:"autoCreateTime"`
}
