package saved_repo

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type SavedItemRepoContract interface {
	Save(ctx context.Context, item *entity.SavedItem) *app_error.AppError
	Unsave(ctx context.Context, userID, messageID string) *app_error.AppError
	List(ctx context.Context, userID string) ([]*entity.SavedItem, *app_error.AppError)
	IsSaved(ctx context.Context, userID, messageID string) (bool, *app_error.AppError)
}
