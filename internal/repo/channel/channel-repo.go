package channel_repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/authz"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ChannelRepo struct {
	AppState *state.AppState
}

func NewChannelRepo(appState *state.AppState) ChannelRepoContract {
	return &ChannelRepo{
		AppState: appState,
	}
}

func (r *ChannelRepo) FindByID(ctx context.Context, id string) (*entity.Channel, *app_error.AppError) {
	var channel entity.Channel
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("channel not found", "not-found")
		}
		log.Error().Err(err).Str("channelID", id).Msg("failed to fetch channel")
		return nil, app_error.Unavailable("failed to fetch channel", "db-error")
	}
	return &channel, nil
}

func (r *ChannelRepo) FindBySlug(ctx context.Context, slug string) (*entity.Channel, *app_error.AppError) {
	var channel entity.Channel
	if err := r.AppState.DB.WithContext(ctx).Where("slug = ?", slug).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("channel not found", "not-found")
		}
		return nil, app_error.Unavailable("failed to fetch channel", "db-error")
	}
	return &channel, nil
}

func (r *ChannelRepo) List(ctx context.Context) ([]*entity.Channel, *app_error.AppError) {
	var channels []*entity.Channel
	err := r.AppState.DB.WithContext(ctx).
		Where("is_default = ?", true).
		Order("display_order ASC").
		Find(&channels).Error
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch channels", "db-error")
	}
	return channels, nil
}

func (r *ChannelRepo) Create(ctx context.Context, channel *entity.Channel, seedMembers []entity.ChannelMember) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(channel).Error; err != nil {
		tx.Rollback()
		if isDuplicate(err) {
			return app_error.Conflict("channel already exists", "slug")
		}
		return app_error.Unavailable("failed to create channel", "db-error")
	}

	if len(seedMembers) > 0 {
		if err := tx.Create(&seedMembers).Error; err != nil {
			tx.Rollback()
			return app_error.Unavailable("failed to seed channel members", "db-error")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.Unavailable("failed to commit channel creation", "db-error")
	}
	return nil
}

func (r *ChannelRepo) Membership(ctx context.Context, channelID, userID string) (authz.Membership, *app_error.AppError) {
	var member entity.ChannelMember
	err := r.AppState.DB.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Membership{}, nil
		}
		return authz.Membership{}, app_error.Unavailable("failed to fetch membership", "db-error")
	}
	return authz.Membership{IsMember: true, IsAdmin: member.IsAdmin}, nil
}

func (r *ChannelRepo) Members(ctx context.Context, channelID string) ([]*entity.ChannelMember, *app_error.AppError) {
	var members []*entity.ChannelMember
	if err := r.AppState.DB.WithContext(ctx).Where("channel_id = ?", channelID).Find(&members).Error; err != nil {
		return nil, app_error.Unavailable("failed to fetch channel members", "db-error")
	}
	return members, nil
}

func (r *ChannelRepo) MemberCount(ctx context.Context, channelID string) (int64, *app_error.AppError) {
	var count int64
	if err := r.AppState.DB.WithContext(ctx).Model(&entity.ChannelMember{}).Where("channel_id = ?", channelID).Count(&count).Error; err != nil {
		return 0, app_error.Unavailable("failed to count channel members", "db-error")
	}
	return count, nil
}

// AddMember is idempotent: joining twice is a no-op success.
func (r *ChannelRepo) AddMember(ctx context.Context, channelID, userID string) *app_error.AppError {
	member := entity.ChannelMember{
		ChannelID: channelID,
		UserID:    userID,
	}
	if err := r.AppState.DB.WithContext(ctx).Create(&member).Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return app_error.Unavailable("failed to join channel", "db-error")
	}
	return nil
}

func (r *ChannelRepo) RemoveMember(ctx context.Context, channelID, userID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&entity.ChannelMember{}).Error
	if err != nil {
		return app_error.Unavailable("failed to leave channel", "db-error")
	}
	return nil
}

// BumpActivity increments the message counter and stamps last activity. This
// is the secondary write after a successful message insert; a crash in
// between leaves the counter slightly stale, which is accepted drift.
func (r *ChannelRepo) BumpActivity(ctx context.Context, channelID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.Channel{}).Where("id = ?", channelID).Updates(map[string]any{
		"message_count": gorm.Expr("message_count + ?", 1),
		"last_activity": time.Now(),
	}).Error
	if err != nil {
		return app_error.Unavailable("failed to update channel activity", "db-error")
	}
	return nil
}

func (r *ChannelRepo) Pins(ctx context.Context, channelID string) ([]*entity.ChannelPin, *app_error.AppError) {
	var pins []*entity.ChannelPin
	err := r.AppState.DB.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("pinned_at DESC").
		Find(&pins).Error
	if err != nil {
		return nil, app_error.Unavailable("failed to fetch pins", "db-error")
	}
	return pins, nil
}

func (r *ChannelRepo) AddPin(ctx context.Context, channelID, messageID, pinnedBy string) *app_error.AppError {
	pin := entity.ChannelPin{
		ChannelID: channelID,
		MessageID: messageID,
		PinnedBy:  pinnedBy,
	}
	if err := r.AppState.DB.WithContext(ctx).Create(&pin).Error; err != nil {
		if isDuplicate(err) {
			return nil
		}
		return app_error.Unavailable("failed to pin message", "db-error")
	}
	return nil
}

func (r *ChannelRepo) RemovePin(ctx context.Context, channelID, messageID string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Where("channel_id = ? AND message_id = ?", channelID, messageID).
		Delete(&entity.ChannelPin{}).Error
	if err != nil {
		return app_error.Unavailable("failed to unpin message", "db-error")
	}
	return nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
