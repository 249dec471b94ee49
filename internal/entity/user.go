package entity

import (
	"time"
)

type Role string

const (
	RoleCofounder Role = "cofounder"
	RoleCore      Role = "core"
	RoleMember    Role = "member"
)

type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
	StatusAway    PresenceStatus = "away"
	StatusBusy    PresenceStatus = "busy"
)

// ValidStatus reports whether s is one of the supported presence states.
func ValidStatus(s PresenceStatus) bool {
	switch s {
	case StatusOnline, StatusOffline, StatusAway, StatusBusy:
		return true
	}
	return false
}

// User identity and role are assigned by the external auth flow; the chat
// core treats them as immutable input.
type User struct {
	ID          string `gorm:"primaryKey"`
	Username    string `gorm:"uniqueIndex;not null"`
	DisplayName string
	Avatar      string
	Role        Role           `gorm:"not null;default:member"`
	Status      PresenceStatus `gorm:"not null;default:offline"`
	IsOnline    bool           `gorm:"not null;default:false"`
	LastSeen    time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// IsTeam reports whether the user belongs to the permanently-pinned team
// tiers (cofounder/core).
func (u *User) IsTeam() bool {
	return u.Role == RoleCofounder || u.Role == RoleCore
}
