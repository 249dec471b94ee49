package message_repo

import (
	"context"
	"errors"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	channelCollection = "channel_messages"
	directCollection  = "direct_messages"
)

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageRepoContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) collection(kind entity.MessageKind) *mongo.Collection {
	if kind == entity.KindDM {
		return r.AppState.Messages().Collection(directCollection)
	}
	return r.AppState.Messages().Collection(channelCollection)
}

func (r *MessageRepo) InsertChannelMessage(ctx context.Context, msg *entity.ChannelMessage) *app_error.AppError {
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	res, err := r.collection(entity.KindChannel).InsertOne(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("channelID", msg.ChannelID).Msg("failed to insert channel message")
		return app_error.Unavailable("failed to store message", "db-error")
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

func (r *MessageRepo) InsertDirectMessage(ctx context.Context, msg *entity.DirectMessage) *app_error.AppError {
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	res, err := r.collection(entity.KindDM).InsertOne(ctx, msg)
	if err != nil {
		log.Error().Err(err).Str("conversationID", msg.ConversationID).Msg("failed to insert direct message")
		return app_error.Unavailable("failed to store message", "db-error")
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

func (r *MessageRepo) FindChannelMessage(ctx context.Context, id bson.ObjectID) (*entity.ChannelMessage, *app_error.AppError) {
	var msg entity.ChannelMessage
	err := r.collection(entity.KindChannel).FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NotFound("message not found", "not-found")
		}
		return nil, app_error.Unavailable("failed to fetch message", "db-error")
	}
	return &msg, nil
}

func (r *MessageRepo) FindDirectMessage(ctx context.Context, id bson.ObjectID) (*entity.DirectMessage, *app_error.AppError) {
	var msg entity.DirectMessage
	err := r.collection(entity.KindDM).FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, app_error.NotFound("message not found", "not-found")
		}
		return nil, app_error.Unavailable("failed to fetch message", "db-error")
	}
	return &msg, nil
}

// ListChannelMessages pages newest-first through the collection, then
// reverses so callers receive ascending timestamps ready for rendering.
func (r *MessageRepo) ListChannelMessages(ctx context.Context, channelID string, page, limit int64) ([]*entity.ChannelMessage, *app_error.AppError) {
	page, limit = normalizePage(page, limit)

	filter := bson.M{"channel_id": channelID, "is_deleted": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection(entity.KindChannel).Find(ctx, filter, opts)
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch messages", "db-error")
	}
	defer cursor.Close(ctx)

	var messages []*entity.ChannelMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, app_error.Unavailable("failed to decode messages", "db-error")
	}

	reverse(messages)
	return messages, nil
}

func (r *MessageRepo) ListDirectMessages(ctx context.Context, conversationID string, page, limit int64) ([]*entity.DirectMessage, *app_error.AppError) {
	page, limit = normalizePage(page, limit)

	filter := bson.M{"conversation_id": conversationID, "is_deleted": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.collection(entity.KindDM).Find(ctx, filter, opts)
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch messages", "db-error")
	}
	defer cursor.Close(ctx)

	var messages []*entity.DirectMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, app_error.Unavailable("failed to decode messages", "db-error")
	}

	reverse(messages)
	return messages, nil
}

func (r *MessageRepo) ListPinnedMessages(ctx context.Context, channelID string) ([]*entity.ChannelMessage, *app_error.AppError) {
	filter := bson.M{"channel_id": channelID, "is_pinned": true, "is_deleted": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection(entity.KindChannel).Find(ctx, filter, opts)
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch pinned messages", "db-error")
	}
	defer cursor.Close(ctx)

	var messages []*entity.ChannelMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, app_error.Unavailable("failed to decode pinned messages", "db-error")
	}
	return messages, nil
}

func (r *MessageRepo) UpdateContent(ctx context.Context, kind entity.MessageKind, id bson.ObjectID, content string) *app_error.AppError {
	now := time.Now()
	res, err := r.collection(kind).UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{
			"content":    content,
			"is_edited":  true,
			"edited_at":  now,
			"updated_at": now,
		}},
	)
	if err != nil {
		return app_error.Unavailable("failed to edit message", "db-error")
	}
	if res.MatchedCount == 0 {
		return app_error.NotFound("message not found or deleted", "not-found")
	}
	return nil
}

func (r *MessageRepo) SoftDelete(ctx context.Context, kind entity.MessageKind, id bson.ObjectID) *app_error.AppError {
	_, err := r.collection(kind).UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_deleted": true,
			"content":    entity.DeletedPlaceholder,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return app_error.Unavailable("failed to delete message", "db-error")
	}
	return nil
}

func (r *MessageRepo) SetPinned(ctx context.Context, id bson.ObjectID, pinned bool) (bool, *app_error.AppError) {
	res, err := r.collection(entity.KindChannel).UpdateOne(ctx,
		bson.M{"_id": id, "is_pinned": !pinned, "is_deleted": false},
		bson.M{"$set": bson.M{
			"is_pinned":  pinned,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return false, app_error.Unavailable("failed to update pin state", "db-error")
	}
	return res.ModifiedCount > 0, nil
}

func (r *MessageRepo) SetReactions(ctx context.Context, kind entity.MessageKind, id bson.ObjectID, reactions entity.Reactions) *app_error.AppError {
	update := bson.M{"$set": bson.M{
		"reactions":  reactions,
		"updated_at": time.Now(),
	}}
	if len(reactions) == 0 {
		update = bson.M{
			"$unset": bson.M{"reactions": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	}

	res, err := r.collection(kind).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return app_error.Unavailable("failed to update reactions", "db-error")
	}
	if res.MatchedCount == 0 {
		return app_error.NotFound("message not found", "not-found")
	}
	return nil
}

func (r *MessageRepo) MarkConversationRead(ctx context.Context, conversationID, receiverID string) (int64, *app_error.AppError) {
	now := time.Now()
	res, err := r.collection(entity.KindDM).UpdateMany(ctx,
		bson.M{"conversation_id": conversationID, "receiver_id": receiverID, "read": false},
		bson.M{"$set": bson.M{
			"read":      true,
			"delivered": true,
			"read_at":   now,
		}},
	)
	if err != nil {
		return 0, app_error.Unavailable("failed to mark conversation read", "db-error")
	}
	return res.ModifiedCount, nil
}

func (r *MessageRepo) MarkDelivered(ctx context.Context, id bson.ObjectID) *app_error.AppError {
	_, err := r.collection(entity.KindDM).UpdateOne(ctx,
		bson.M{"_id": id, "delivered": false},
		bson.M{"$set": bson.M{"delivered": true}},
	)
	if err != nil {
		return app_error.Unavailable("failed to mark message delivered", "db-error")
	}
	return nil
}

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return page, limit
}

func reverse[T any](s []*T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
