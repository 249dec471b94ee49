package message_repo

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageRepoContract interface {
	InsertChannelMessage(ctx context.Context, msg *entity.ChannelMessage) *app_error.AppError
	InsertDirectMessage(ctx context.Context, msg *entity.DirectMessage) *app_error.AppError

	FindChannelMessage(ctx context.Context, id bson.ObjectID) (*entity.ChannelMessage, *app_error.AppError)
	FindDirectMessage(ctx context.Context, id bson.ObjectID) (*entity.DirectMessage, *app_error.AppError)

	ListChannelMessages(ctx context.Context, channelID string, page, limit int64) ([]*entity.ChannelMessage, *app_error.AppError)
	ListDirectMessages(ctx context.Context, conversationID string, page, limit int64) ([]*entity.DirectMessage, *app_error.AppError)
	ListPinnedMessages(ctx context.Context, channelID string) ([]*entity.ChannelMessage, *app_error.AppError)

	// UpdateContent rewrites a live message's body and stamps the edit
	// marker. Deleted messages are never matched.
	UpdateContent(ctx context.Context, kind entity.MessageKind, id bson.ObjectID, content string) *app_error.AppError

	// SoftDelete blanks the message to the placeholder. Deleting an already
	// deleted message matches nothing and still succeeds.
	SoftDelete(ctx context.Context, kind entity.MessageKind, id bson.ObjectID) *app_error.AppError

	// SetPinned flips the pin flag only when it differs; returns false when
	// the message already carried the requested state.
	SetPinned(ctx context.Context, id bson.ObjectID, pinned bool) (bool, *app_error.AppError)

	SetReactions(ctx context.Context, kind entity.MessageKind, id bson.ObjectID, reactions entity.Reactions) *app_error.AppError

	// MarkConversationRead flips every unread message addressed to receiverID
	// in one sweep and returns how many were flipped.
	MarkConversationRead(ctx context.Context, conversationID, receiverID string) (int64, *app_error.AppError)
	MarkDelivered(ctx context.Context, id bson.ObjectID) *app_error.AppError
}
