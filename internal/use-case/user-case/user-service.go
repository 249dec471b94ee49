package user_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/user_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
)

type UserService struct {
	AppState *state.AppState
	UserRepo user_repo.UserRepoContract
}

func NewUserService(appState *state.AppState) UserServiceContract {
	return &UserService{
		AppState: appState,
		UserRepo: user_repo.NewUserRepo(appState),
	}
}

// ListUsers returns everyone except the caller, online first.
func (s *UserService) ListUsers(ctx context.Context, callerID string) ([]user_dto.UserResponse, *app_error.AppError) {
	users, err := s.UserRepo.ListOthers(ctx, callerID)
	if err != nil {
		return nil, err
	}

	resp := make([]user_dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse(u))
	}
	return resp, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*user_dto.UserResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, req user_dto.UpdateStatusRequest, userID string) (*user_dto.UpdateStatusResponse, *app_error.AppError) {
	status := entity.PresenceStatus(req.Status)
	if err := s.UserRepo.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	return &user_dto.UpdateStatusResponse{
		ID:     userID,
		Status: req.Status,
	}, nil
}

func userResponse(u *entity.User) user_dto.UserResponse {
	return user_dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Role:        string(u.Role),
		Status:      string(u.Status),
		IsOnline:    u.IsOnline,
		LastSeen:    u.LastSeen,
	}
}
