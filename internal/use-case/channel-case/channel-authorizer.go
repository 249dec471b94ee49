package channel_service

import (
	"context"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/authz"
	channel_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/channel"
	user_repo "github.com/Alpha4Coders/AlphaChat-V2/internal/repo/user"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/rs/zerolog/log"
)

// ChannelAuthorizer backs the socket-level permission checks. It satisfies
// websocket.Authorizer so the hub never imports the repo layer directly.
type ChannelAuthorizer struct {
	ChannelRepo channel_repo.ChannelRepoContract
	UserRepo    user_repo.UserRepoContract
}

func NewChannelAuthorizer(appState *state.AppState) *ChannelAuthorizer {
	return &ChannelAuthorizer{
		ChannelRepo: channel_repo.NewChannelRepo(appState),
		UserRepo:    user_repo.NewUserRepo(appState),
	}
}

func (a *ChannelAuthorizer) CanSubscribe(ctx context.Context, userID, channelID string) bool {
	user, err := a.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return false
	}
	if _, cerr := a.ChannelRepo.FindByID(ctx, channelID); cerr != nil {
		return false
	}
	return authz.CanRead(user)
}

func (a *ChannelAuthorizer) CanPublish(ctx context.Context, userID, channelID string) bool {
	user, err := a.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return false
	}
	membership, merr := a.ChannelRepo.Membership(ctx, channelID, userID)
	if merr != nil {
		log.Warn().Str("channelID", channelID).Str("userID", userID).Msg("membership lookup failed during publish check")
		return false
	}
	return authz.CanWrite(user, membership)
}
