package routers

import (
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	hub_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/hub-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/go-chi/chi/v5"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub, dlq hub_handler.DLQStatsProvider) {
	hubHandler := hub_handler.NewHubHandler(wsHub, dlq)

	r.Route("/api/v1/hub", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
		r.Get("/online", handlers.WrapHandler(hubHandler.HandleGetOnlineUsers))
		r.Get("/dlq/stats", handlers.WrapHandler(hubHandler.HandleGetDLQStats))

		r.Route("/rooms/{roomId}", func(r chi.Router) {
			r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetRoomStats))
			r.Get("/clients", handlers.WrapHandler(hubHandler.HandleGetRoomClients))
		})

		r.Route("/users/{userId}", func(r chi.Router) {
			r.Get("/status", handlers.WrapHandler(hubHandler.HandleGetUserStatus))
			r.Post("/disconnect", handlers.WrapHandler(hubHandler.HandleDisconnectUser))
		})
	})
}
