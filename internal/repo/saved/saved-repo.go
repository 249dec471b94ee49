package saved_repo

import (
	"context"
	"errors"
	"strings"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"gorm.io/gorm"
)

type SavedItemRepo struct {
	AppState *state.AppState
}

func NewSavedItemRepo(appState *state.AppState) SavedItemRepoContract {
	return &SavedItemRepo{
		AppState: appState,
	}
}

func (r *SavedItemRepo) Save(ctx context.Context, item *entity.SavedItem) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return app_error.Conflict("message already saved", "messageId")
		}
		return app_error.Unavailable("failed to save message", "db-error")
	}
	return nil
}

func (r *SavedItemRepo) Unsave(ctx context.Context, userID, messageID string) *app_error.AppError {
	res := r.AppState.DB.WithContext(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&entity.SavedItem{})
	if res.Error != nil {
		return app_error.Unavailable("failed to remove saved message", "db-error")
	}
	if res.RowsAffected == 0 {
		return app_error.NotFound("saved message not found", "not-found")
	}
	return nil
}

func (r *SavedItemRepo) List(ctx context.Context, userID string) ([]*entity.SavedItem, *app_error.AppError) {
	var items []*entity.SavedItem
	err := r.AppState.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch saved messages", "db-error")
	}
	return items, nil
}

func (r *SavedItemRepo) IsSaved(ctx context.Context, userID, messageID string) (bool, *app_error.AppError) {
	var count int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.SavedItem{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	if err != nil {
		return false, app_error.Unavailable("failed to check saved state", "db-error")
	}
	return count > 0, nil
}
