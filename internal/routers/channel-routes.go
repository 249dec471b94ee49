package routers

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	channel_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/channel-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

func ChannelRouter(r chi.Router, appState *state.AppState) {
	channelHandler := channel_handler.NewChannelHandler(appState)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret, appState.Redis))
		protected.Get("/api/v1/channels", handlers.WrapHandler(channelHandler.GetChannels))
		protected.Post("/api/v1/channels/seed", handlers.WrapHandler(channelHandler.SeedChannels))
		protected.Get("/api/v1/channels/{channelId}", handlers.WrapHandler(channelHandler.GetChannel))
		protected.Post("/api/v1/channels/{channelId}/join", handlers.WrapHandler(channelHandler.JoinChannel))
		protected.Post("/api/v1/channels/{channelId}/leave", handlers.WrapHandler(channelHandler.LeaveChannel))
	})
}
