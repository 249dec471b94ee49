package entity

import (
	"time"
)

// SavedItem bookmarks a message of either kind for one user. The kind tag
// disambiguates which store to resolve the id against.
type SavedItem struct {
	ID        int64       `gorm:"primaryKey"`
	UserID    string      `gorm:"not null;uniqueIndex:idx_saved_user_message"`
	MessageID string      `gorm:"not null;uniqueIndex:idx_saved_user_message"`
	Kind      MessageKind `gorm:"not null"`
	SavedAt   time.Time   `gorm:"autoCreateTime"`
}
