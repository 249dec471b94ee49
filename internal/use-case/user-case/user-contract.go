package user_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/user_dto"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type UserServiceContract interface {
	ListUsers(ctx context.Context, callerID string) ([]user_dto.UserResponse, *app_error.AppError)
	GetUser(ctx context.Context, userID string) (*user_dto.UserResponse, *app_error.AppError)
	UpdateStatus(ctx context.Context, req user_dto.UpdateStatusRequest, userID string) (*user_dto.UpdateStatusResponse, *app_error.AppError)
}
