package authz

import (
	"testing"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	"github.com/stretchr/testify/assert"
)

func user(id string, role entity.Role) *entity.User {
	return &entity.User{ID: id, Role: role}
}

func TestCanRead(t *testing.T) {
	assert.True(t, CanRead(user("u1", entity.RoleMember)))
	assert.False(t, CanRead(nil))
}

func TestCanWrite(t *testing.T) {
	member := Membership{IsMember: true}
	outsider := Membership{}

	assert.True(t, CanWrite(user("u1", entity.RoleMember), member))
	assert.False(t, CanWrite(user("u1", entity.RoleMember), outsider))

	// Team tiers bypass the membership requirement.
	assert.True(t, CanWrite(user("u2", entity.RoleCofounder), outsider))
	assert.True(t, CanWrite(user("u3", entity.RoleCore), outsider))

	assert.False(t, CanWrite(nil, member))
}

func TestCanAdminister(t *testing.T) {
	admin := Membership{IsMember: true, IsAdmin: true}
	plain := Membership{IsMember: true}

	assert.True(t, CanAdminister(user("u1", entity.RoleMember), admin))
	assert.False(t, CanAdminister(user("u1", entity.RoleMember), plain))

	assert.True(t, CanAdminister(user("u2", entity.RoleCofounder), plain))
	// Core is pinned to channels but does not administer them.
	assert.False(t, CanAdminister(user("u3", entity.RoleCore), plain))

	assert.False(t, CanAdminister(nil, admin))
}

func TestCanLeave(t *testing.T) {
	assert.True(t, CanLeave(user("u1", entity.RoleMember)))
	assert.False(t, CanLeave(user("u2", entity.RoleCofounder)))
	assert.False(t, CanLeave(user("u3", entity.RoleCore)))
	assert.False(t, CanLeave(nil))
}

func TestCanEditMessage(t *testing.T) {
	assert.True(t, CanEditMessage(user("u1", entity.RoleMember), "u1"))
	assert.False(t, CanEditMessage(user("u1", entity.RoleMember), "u2"))
	// Admin rights do not extend to editing someone else's words.
	assert.False(t, CanEditMessage(user("boss", entity.RoleCofounder), "u2"))
	assert.False(t, CanEditMessage(nil, "u1"))
}

func TestCanDeleteMessage(t *testing.T) {
	admin := Membership{IsMember: true, IsAdmin: true}
	plain := Membership{IsMember: true}

	assert.True(t, CanDeleteMessage(user("u1", entity.RoleMember), "u1", plain))
	assert.False(t, CanDeleteMessage(user("u1", entity.RoleMember), "u2", plain))
	assert.True(t, CanDeleteMessage(user("mod", entity.RoleMember), "u2", admin))
	assert.True(t, CanDeleteMessage(user("boss", entity.RoleCofounder), "u2", plain))
	assert.False(t, CanDeleteMessage(nil, "u1", admin))
}
