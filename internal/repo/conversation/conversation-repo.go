package conversation_repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ConversationRepo struct {
	AppState *state.AppState
}

func NewConversationRepo(appState *state.AppState) ConversationRepoContract {
	return &ConversationRepo{
		AppState: appState,
	}
}

// FindOrCreate resolves the one conversation for an unordered user pair,
// creating it together with both member rows on first contact. Concurrent
// first-sends race on the unique pair index; the loser re-reads the winner's
// row.
func (r *ConversationRepo) FindOrCreate(ctx context.Context, userA, userB string) (*entity.Conversation, *app_error.AppError) {
	if userA == userB {
		return nil, app_error.InvalidInput("cannot start a conversation with yourself", "recipientId")
	}

	lo, hi := entity.PairKey(userA, userB)

	var conversation entity.Conversation
	err := r.AppState.DB.WithContext(ctx).
		Where("user_a = ? AND user_b = ?", lo, hi).
		First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Msg("failed to look up conversation")
		return nil, app_error.Unavailable("failed to fetch conversation", "db-error")
	}

	conversation = entity.Conversation{
		ID:           uuid.New().String(),
		UserA:        lo,
		UserB:        hi,
		LastActivity: time.Now(),
	}

	txErr := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		members := []entity.ConversationMember{
			{ConversationID: conversation.ID, UserID: lo},
			{ConversationID: conversation.ID, UserID: hi},
		}
		return tx.Create(&members).Error
	})
	if txErr != nil {
		if isDuplicate(txErr) {
			// Lost the race; the other sender created it.
			if err := r.AppState.DB.WithContext(ctx).
				Where("user_a = ? AND user_b = ?", lo, hi).
				First(&conversation).Error; err != nil {
				return nil, app_error.Unavailable("failed to fetch conversation", "db-error")
			}
			return &conversation, nil
		}
		log.Error().Err(txErr).Msg("failed to create conversation")
		return nil, app_error.Unavailable("failed to create conversation", "db-error")
	}

	return &conversation, nil
}

func (r *ConversationRepo) FindByID(ctx context.Context, id string) (*entity.Conversation, *app_error.AppError) {
	var conversation entity.Conversation
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("conversation not found", "not-found")
		}
		return nil, app_error.Unavailable("failed to fetch conversation", "db-error")
	}
	return &conversation, nil
}

func (r *ConversationRepo) ListForUser(ctx context.Context, userID string) ([]*entity.Conversation, *app_error.AppError) {
	var conversations []*entity.Conversation
	err := r.AppState.DB.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userID, userID).
		Order("last_activity DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch conversations", "db-error")
	}
	return conversations, nil
}

func (r *ConversationRepo) RecordSend(ctx context.Context, conversationID, messageID, recipientID string) *app_error.AppError {
	txErr := r.AppState.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entity.Conversation{}).Where("id = ?", conversationID).Updates(map[string]any{
			"last_message_id": messageID,
			"last_activity":   time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(&entity.ConversationMember{}).
			Where("conversation_id = ? AND user_id = ?", conversationID, recipientID).
			Update("unread_count", gorm.Expr("unread_count + ?", 1)).Error
	})
	if txErr != nil {
		return app_error.Unavailable("failed to record message send", "db-error")
	}
	return nil
}

func (r *ConversationRepo) ResetUnread(ctx context.Context, conversationID, userID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ConversationMember{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(map[string]any{
			"unread_count": 0,
			"last_read_at": time.Now(),
		}).Error
	if err != nil {
		return app_error.Unavailable("failed to reset unread counter", "db-error")
	}
	return nil
}

func (r *ConversationRepo) UnreadCount(ctx context.Context, conversationID, userID string) (int64, *app_error.AppError) {
	var member entity.ConversationMember
	err := r.AppState.DB.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, app_error.Unavailable("failed to fetch unread counter", "db-error")
	}
	return member.UnreadCount, nil
}

func (r *ConversationRepo) TotalUnread(ctx context.Context, userID string) (int64, *app_error.AppError) {
	var total int64
	err := r.AppState.DB.WithContext(ctx).Model(&entity.ConversationMember{}).
		Select("COALESCE(SUM(unread_count), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, app_error.Unavailable("failed to sum unread counters", "db-error")
	}
	return total, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
