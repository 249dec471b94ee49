package channel_dto

import "time"

type ChannelResponse struct {
	ChannelID    string    `json:"channel_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	DisplayOrder int       `json:"display_order"`
	MessageCount int64     `json:"message_count"`
	MemberCount  int64     `json:"member_count"`
	LastActivity time.Time `json:"last_activity"`
	IsMember     bool      `json:"is_member"`
}

type ChannelMemberInfo struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Avatar      string    `json:"avatar,omitempty"`
	IsAdmin     bool      `json:"is_admin"`
	IsOnline    bool      `json:"is_online"`
	JoinedAt    time.Time `json:"joined_at"`
}

type ChannelDetailResponse struct {
	ChannelResponse
	IsAdmin bool                `json:"is_admin"`
	Members []ChannelMemberInfo `json:"members"`
}

type MembershipChangeResponse struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	IsMember  bool   `json:"is_member"`
}
