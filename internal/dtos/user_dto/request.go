package user_dto

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline away busy"`
}
