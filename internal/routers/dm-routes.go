package routers

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	dm_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/dm-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

func DMRouter(r chi.Router, appState *state.AppState) {
	dmHandler := dm_handler.NewDMHandler(appState)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret, appState.Redis))

		protected.Get("/api/v1/conversations", handlers.WrapHandler(dmHandler.GetConversations))
		protected.Post("/api/v1/conversations/{userId}", handlers.WrapHandler(dmHandler.GetOrCreateConversation))
		protected.Post("/api/v1/dm/{receiverId}/messages", handlers.WrapHandler(dmHandler.SendDirectMessage))
		protected.Get("/api/v1/conversations/{conversationId}/messages", handlers.WrapHandler(dmHandler.GetDirectMessages))
		protected.Patch("/api/v1/conversations/{conversationId}/read", handlers.WrapHandler(dmHandler.MarkConversationRead))
	})
}
