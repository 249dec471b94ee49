package routers

import (
	"net/http"

	hub_handler "github.com/Alpha4Coders/AlphaChat-V2/internal/handlers/hub-handler"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

func NewRouter(appState *state.AppState, hub *websocket.Hub, wsHandler *websocket.WebSocketHandler, dlq hub_handler.DLQStatsProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)

	UserRouter(r, appState)
	ChannelRouter(r, appState)
	MessageRouter(r, appState)
	DMRouter(r, appState)
	HubRouter(r, hub, dlq)

	// The socket handler runs its own token check during the upgrade
	// handshake, so it sits outside the JWT middleware group.
	r.Get("/ws", wsHandler.ServeHTTP)

	return r
}
