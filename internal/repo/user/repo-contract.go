package user_repo

import (
	"context"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type UserRepoContract interface {
	FindByID(ctx context.Context, id string) (*entity.User, *app_error.AppError)
	ListOthers(ctx context.Context, excludeID string) ([]*entity.User, *app_error.AppError)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, *app_error.AppError)
	UpdateStatus(ctx context.Context, id string, status entity.PresenceStatus) *app_error.AppError
	SetOnline(ctx context.Context, id string) error
	SetOffline(ctx context.Context, id string, lastSeen time.Time) error
}
