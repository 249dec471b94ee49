package user_dto

import "time"

type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	IsOnline    bool      `json:"is_online"`
	LastSeen    time.Time `json:"last_seen"`
}

type UpdateStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
