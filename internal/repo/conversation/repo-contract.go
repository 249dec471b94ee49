package conversation_repo

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
)

type ConversationRepoContract interface {
	FindOrCreate(ctx context.Context, userA, userB string) (*entity.Conversation, *app_error.AppError)
	FindByID(ctx context.Context, id string) (*entity.Conversation, *app_error.AppError)
	ListForUser(ctx context.Context, userID string) ([]*entity.Conversation, *app_error.AppError)

	// RecordSend stamps the conversation with the latest message and bumps
	// the recipient's unread counter.
	RecordSend(ctx context.Context, conversationID, messageID, recipientID string) *app_error.AppError
	ResetUnread(ctx context.Context, conversationID, userID string) *app_error.AppError
	UnreadCount(ctx context.Context, conversationID, userID string) (int64, *app_error.AppError)
	TotalUnread(ctx context.Context, userID string) (int64, *app_error.AppError)
}
