package channel_service

import (
	"context"
	"fmt"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/authz"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/channel_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	channel_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/channel"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const channelListTTL = 30 * time.Second

func channelListKey(userID string) string {
	return fmt.Sprintf("channels:list:%s", userID)
}

type ChannelService struct {
	AppState    *state.AppState
	ChannelRepo channel_repo.ChannelRepoContract
	UserRepo    user_repo.UserRepoContract
}

func NewChannelService(appState *state.AppState) ChannelServiceContract {
	return &ChannelService{
		AppState:    appState,
		ChannelRepo: channel_repo.NewChannelRepo(appState),
		UserRepo:    user_repo.NewUserRepo(appState),
	}
}

func (s *ChannelService) ListChannels(ctx context.Context, userID string) ([]channel_dto.ChannelResponse, *app_error.AppError) {
	cached, cacheErr := utils.GetCacheData[[]channel_dto.ChannelResponse](ctx, s.AppState.Redis, channelListKey(userID))
	if cacheErr == nil && cached != nil {
		return *cached, nil
	}

	channels, err := s.ChannelRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]channel_dto.ChannelResponse, 0, len(channels))
	for _, ch := range channels {
		membership, err := s.ChannelRepo.Membership(ctx, ch.ID, userID)
		if err != nil {
			return nil, err
		}
		count, err := s.ChannelRepo.MemberCount(ctx, ch.ID)
		if err != nil {
			return nil, err
		}
		resp = append(resp, channel_dto.ChannelResponse{
			ChannelID:    ch.ID,
			Name:         ch.Name,
			Slug:         ch.Slug,
			Description:  ch.Description,
			Icon:         ch.Icon,
			DisplayOrder: ch.DisplayOrder,
			MessageCount: ch.MessageCount,
			MemberCount:  count,
			LastActivity: ch.LastActivity,
			IsMember:     membership.IsMember,
		})
	}

	if err := utils.SetCacheData(ctx, s.AppState.Redis, channelListKey(userID), &resp, channelListTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache channel listing")
	}
	return resp, nil
}

// GetChannel resolves ref as a channel id first, then as a slug, so both
// /channels/{uuid} and /channels/web-dev work.
func (s *ChannelService) GetChannel(ctx context.Context, ref, userID string) (*channel_dto.ChannelDetailResponse, *app_error.AppError) {
	ch, err := s.ChannelRepo.FindByID(ctx, ref)
	if err != nil {
		ch, err = s.ChannelRepo.FindBySlug(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	membership, err := s.ChannelRepo.Membership(ctx, ch.ID, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.ChannelRepo.MemberCount(ctx, ch.ID)
	if err != nil {
		return nil, err
	}

	rows, err := s.ChannelRepo.Members(ctx, ch.ID)
	if err != nil {
		return nil, err
	}

	memberIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		memberIDs = append(memberIDs, row.UserID)
	}
	users, err := s.UserRepo.ListByIDs(ctx, memberIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	members := make([]channel_dto.ChannelMemberInfo, 0, len(rows))
	for _, row := range rows {
		info := channel_dto.ChannelMemberInfo{
			UserID:   row.UserID,
			IsAdmin:  row.IsAdmin,
			JoinedAt: row.JoinedAt,
		}
		if u, ok := usersByID[row.UserID]; ok {
			info.Username = u.Username
			info.DisplayName = u.DisplayName
			info.Avatar = u.Avatar
			info.IsOnline = u.IsOnline
		}
		members = append(members, info)
	}

	return &channel_dto.ChannelDetailResponse{
		ChannelResponse: channel_dto.ChannelResponse{
			ChannelID:    ch.ID,
			Name:         ch.Name,
			Slug:         ch.Slug,
			Description:  ch.Description,
			Icon:         ch.Icon,
			DisplayOrder: ch.DisplayOrder,
			MessageCount: ch.MessageCount,
			MemberCount:  count,
			LastActivity: ch.LastActivity,
			IsMember:     membership.IsMember,
		},
		IsAdmin: membership.IsAdmin,
		Members: members,
	}, nil
}

func (s *ChannelService) JoinChannel(ctx context.Context, channelID, userID string) (*channel_dto.MembershipChangeResponse, *app_error.AppError) {
	if _, err := s.ChannelRepo.FindByID(ctx, channelID); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.ChannelRepo.AddMember(ctx, channelID, userID); err != nil {
		return nil, err
	}

	if err := utils.DeleteCacheData(ctx, s.AppState.Redis, channelListKey(userID)); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate channel listing cache")
	}

	return &channel_dto.MembershipChangeResponse{
		ChannelID: channelID,
		UserID:    userID,
		IsMember:  true,
	}, nil
}

func (s *ChannelService) LeaveChannel(ctx context.Context, channelID, userID string) (*channel_dto.MembershipChangeResponse, *app_error.AppError) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !authz.CanLeave(user) {
		return nil, app_error.Forbidden("team members cannot leave channels", "role")
	}

	if err := s.ChannelRepo.RemoveMember(ctx, channelID, userID); err != nil {
		return nil, err
	}

	if err := utils.DeleteCacheData(ctx, s.AppState.Redis, channelListKey(userID)); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate channel listing cache")
	}

	return &channel_dto.MembershipChangeResponse{
		ChannelID: channelID,
		UserID:    userID,
		IsMember:  false,
	}, nil
}

var defaultChannels = []entity.Channel{
	{Name: "Web Dev", Slug: "web-dev", Description: "Backend + Frontend web development discussions", Icon: "🌐", DisplayOrder: 1},
	{Name: "App Dev", Slug: "app-dev", Description: "Mobile and desktop application development", Icon: "📱", DisplayOrder: 2},
	{Name: "Competitive Programming", Slug: "competitive-programming", Description: "CP discussions, problem solving, and contests", Icon: "🏆", DisplayOrder: 3},
	{Name: "AI/ML", Slug: "ai-ml", Description: "Artificial Intelligence and Machine Learning", Icon: "🤖", DisplayOrder: 4},
	{Name: "Cyber Security", Slug: "cyber-security", Description: "Security, CTFs, penetration testing, and more", Icon: "🔐", DisplayOrder: 5},
	{Name: "Operating System", Slug: "operating-system", Description: "OS concepts, Linux, Windows, kernel development", Icon: "💻", DisplayOrder: 6},
	{Name: "System Design", Slug: "system-design", Description: "Architecture, scalability, and system design interviews", Icon: "🏗️", DisplayOrder: 7},
	{Name: "Beginners", Slug: "beginners", Description: "C, Python & Java basics - Newcomer friendly!", Icon: "🌱", DisplayOrder: 8},
}

// SeedDefaultChannels creates any of the preset channels that do not exist
// yet. Safe to run on every boot.
func (s *ChannelService) SeedDefaultChannels(ctx context.Context) *app_error.AppError {
	for _, preset := range defaultChannels {
		if _, err := s.ChannelRepo.FindBySlug(ctx, preset.Slug); err == nil {
			continue
		}

		ch := preset
		ch.ID = uuid.New().String()
		ch.IsDefault = true
		ch.LastActivity = time.Now()
		if err := s.ChannelRepo.Create(ctx, &ch, nil); err != nil {
			if err.Code == 409 {
				continue
			}
			return err
		}
		log.Info().Str("slug", ch.Slug).Msg("seeded default channel")
	}
	return nil
}
