package channel_repo

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/authz"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type ChannelRepoContract interface {
	FindByID(ctx context.Context, id string) (*entity.Channel, *app_error.AppError)
	FindBySlug(ctx context.Context, slug string) (*entity.Channel, *app_error.AppError)
	List(ctx context.Context) ([]*entity.Channel, *app_error.AppError)
	Create(ctx context.Context, channel *entity.Channel, seedMembers []entity.ChannelMember) *app_error.AppError

	Membership(ctx context.Context, channelID, userID string) (authz.Membership, *app_error.AppError)
	Members(ctx context.Context, channelID string) ([]*entity.ChannelMember, *app_error.AppError)
	MemberCount(ctx context.Context, channelID string) (int64, *app_error.AppError)
	AddMember(ctx context.Context, channelID, userID string) *app_error.AppError
	RemoveMember(ctx context.Context, channelID, userID string) *app_error.AppError

	BumpActivity(ctx context.Context, channelID string) *app_error.AppError

	Pins(ctx context.Context, channelID string) ([]*entity.ChannelPin, *app_error.AppError)
	AddPin(ctx context.Context, channelID, messageID, pinnedBy string) *app_error.AppError
	RemovePin(ctx context.Context, channelID, messageID string) *app_error.AppError
}
