package routers

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	message_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/message-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

func MessageRouter(r chi.Router, appState *state.AppState) {
	messageHandler := message_handler.NewMessageHandler(appState)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret, appState.Redis))

		protected.Post("/api/v1/channels/{channelId}/messages", handlers.WrapHandler(messageHandler.SendChannelMessage))
		protected.Get("/api/v1/channels/{channelId}/messages", handlers.WrapHandler(messageHandler.GetChannelMessages))
		protected.Get("/api/v1/channels/{channelId}/pins", handlers.WrapHandler(messageHandler.GetPinnedMessages))
		protected.Post("/api/v1/channels/{channelId}/messages/{messageId}/pin", handlers.WrapHandler(messageHandler.TogglePin))

		protected.Put("/api/v1/messages/{kind}/{messageId}", handlers.WrapHandler(messageHandler.EditMessage))
		protected.Delete("/api/v1/messages/{kind}/{messageId}", handlers.WrapHandler(messageHandler.DeleteMessage))
		protected.Post("/api/v1/messages/{kind}/{messageId}/reactions", handlers.WrapHandler(messageHandler.ToggleReaction))

		protected.Post("/api/v1/saved", handlers.WrapHandler(messageHandler.SaveMessage))
		protected.Delete("/api/v1/saved/{messageId}", handlers.WrapHandler(messageHandler.UnsaveMessage))
		protected.Get("/api/v1/saved", handlers.WrapHandler(messageHandler.GetSavedMessages))
	})
}
