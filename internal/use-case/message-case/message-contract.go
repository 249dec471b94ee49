package message_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type MessageServiceContract interface {
	SendChannelMessage(ctx context.Context, req message_dto.SendChannelMessageRequest, channelID, senderID string) (*message_dto.ChannelMessageResponse, *app_error.AppError)
	ListChannelMessages(ctx context.Context, req message_dto.ListMessagesRequest, channelID, userID string) (*message_dto.ListChannelMessagesResponse, *app_error.AppError)
	ListPinnedMessages(ctx context.Context, channelID, userID string) ([]message_dto.ChannelMessageResponse, *app_error.AppError)

	EditMessage(ctx context.Context, req message_dto.EditMessageRequest, kind entity.MessageKind, messageID, userID string) (*message_dto.EditMessageResponse, *app_error.AppError)
	DeleteMessage(ctx context.Context, kind entity.MessageKind, messageID, userID string) (*message_dto.DeleteMessageResponse, *app_error.AppError)
	TogglePin(ctx context.Context, channelID, messageID, userID string) (*message_dto.TogglePinResponse, *app_error.AppError)
	ToggleReaction(ctx context.Context, req message_dto.ToggleReactionRequest, kind entity.MessageKind, messageID, userID string) (*message_dto.ToggleReactionResponse, *app_error.AppError)

	SaveMessage(ctx context.Context, req message_dto.SaveMessageRequest, userID string) *app_error.AppError
	UnsaveMessage(ctx context.Context, userID, messageID string) *app_error.AppError
	ListSaved(ctx context.Context, userID string) ([]message_dto.SavedItemResponse, *app_error.AppError)
}
