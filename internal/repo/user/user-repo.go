package user_repo

import (
	"context"
	"errors"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserRepoContract {
	return &UserRepo{
		AppState: appState,
	}
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, *app_error.AppError) {
	var user entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("user not found", "not-found")
		}
		log.Error().Err(err).Str("userID", id).Msg("failed to fetch user")
		return nil, app_error.Unavailable("failed to fetch user", "db-error")
	}
	return &user, nil
}

func (r *UserRepo) ListOthers(ctx context.Context, excludeID string) ([]*entity.User, *app_error.AppError) {
	var users []*entity.User
	err := r.AppState.DB.WithContext(ctx).
		Where("id <> ?", excludeID).
		Order("is_online DESC, last_seen DESC").
		Find(&users).Error
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch users", "db-error")
	}
	return users, nil
}

func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, *app_error.AppError) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, app_error.Unavailable("failed to fetch users", "db-error")
	}
	return users, nil
}

func (r *UserRepo) UpdateStatus(ctx context.Context, id string, status entity.PresenceStatus) *app_error.AppError {
	if !entity.ValidStatus(status) {
		return app_error.InvalidInput("unsupported status value", "status")
	}

	err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"status":    status,
		"is_online": status == entity.StatusOnline,
	}).Error
	if err != nil {
		return app_error.Unavailable("failed to update status", "db-error")
	}
	return nil
}

// SetOnline/SetOffline back the websocket presence transitions; they satisfy
// websocket.StatusStore.

func (r *UserRepo) SetOnline(ctx context.Context, id string) error {
	return r.AppState.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"status":    entity.StatusOnline,
		"is_online": true,
		"last_seen": time.Now(),
	}).Error
}

func (r *UserRepo) SetOffline(ctx context.Context, id string, lastSeen time.Time) error {
	return r.AppState.DB.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"status":    entity.StatusOffline,
		"is_online": false,
		"last_seen": lastSeen,
	}).Error
}
