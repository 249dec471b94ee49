package authz

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
)

// Membership is the caller's relationship to one channel, resolved by the
// channel repo before a check runs.
type Membership struct {
	IsMember bool
	IsAdmin  bool
}

// CanRead: default channels are readable by any authenticated user.
func CanRead(user *entity.User) bool {
	return user != nil
}

// CanWrite: cofounder/core bypass membership (team members are pinned to all
// channels), everyone else must have joined.
func CanWrite(user *entity.User, m Membership) bool {
	if user == nil {
		return false
	}
	return user.IsTeam() || m.IsMember
}

// CanAdminister: cofounders everywhere, channel admins in their channel.
func CanAdminister(user *entity.User, m Membership) bool {
	if user == nil {
		return false
	}
	return user.Role == entity.RoleCofounder || m.IsAdmin
}

// CanLeave: team members cannot leave channels.
func CanLeave(user *entity.User) bool {
	if user == nil {
		return false
	}
	return !user.IsTeam()
}

// CanEditMessage: sender only.
func CanEditMessage(user *entity.User, senderID string) bool {
	return user != nil && user.ID == senderID
}

// CanDeleteMessage: sender, channel admin, or cofounder.
func CanDeleteMessage(user *entity.User, senderID string, m Membership) bool {
	if user == nil {
		return false
	}
	return user.ID == senderID || CanAdminister(user, m)
}
