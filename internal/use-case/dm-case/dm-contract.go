package dm_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type DMServiceContract interface {
	GetOrCreateConversation(ctx context.Context, userID, otherID string) (*message_dto.ConversationResponse, *app_error.AppError)
	ListConversations(ctx context.Context, userID string) ([]message_dto.ConversationResponse, *app_error.AppError)
	SendDirectMessage(ctx context.Context, req message_dto.SendDirectMessageRequest, senderID, receiverID string) (*message_dto.DirectMessageResponse, *app_error.AppError)
	ListDirectMessages(ctx context.Context, req message_dto.ListMessagesRequest, conversationID, userID string) (*message_dto.ListDirectMessagesResponse, *app_error.AppError)
	MarkConversationRead(ctx context.Context, conversationID, userID string) (*message_dto.MarkReadResponse, *app_error.AppError)
	MarkDelivered(ctx context.Context, messageID string) *app_error.AppError
}
