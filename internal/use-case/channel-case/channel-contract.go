package channel_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/channel_dto"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type ChannelServiceContract interface {
	ListChannels(ctx context.Context, userID string) ([]channel_dto.ChannelResponse, *app_error.AppError)
	GetChannel(ctx context.Context, channelID, userID string) (*channel_dto.ChannelDetailResponse, *app_error.AppError)
	JoinChannel(ctx context.Context, channelID, userID string) (*channel_dto.MembershipChangeResponse, *app_error.AppError)
	LeaveChannel(ctx context.Context, channelID, userID string) (*channel_dto.MembershipChangeResponse, *app_error.AppError)
	SeedDefaultChannels(ctx context.Context) *app_error.AppError
}
