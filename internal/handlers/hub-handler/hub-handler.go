package hub_handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/websocket"
	"github.com/go-chi/chi/v5"
)

// DLQStatsProvider is satisfied by the worker pool.
type DLQStatsProvider interface {
	GetDLQStats(ctx context.Context) (map[string]int64, error)
}

type HubHandler struct {
	Hub *websocket.Hub
	DLQ DLQStatsProvider
}

func NewHubHandler(hub *websocket.Hub, dlq DLQStatsProvider) *HubHandler {
	return &HubHandler{
		Hub: hub,
		DLQ: dlq,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "chat-server",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket stats", stats, reqID))
	return nil
}

func (h *HubHandler) HandleGetOnlineUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	online := h.Hub.Presence.Online()
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("online users", map[string]any{
		"users": online,
		"count": len(online),
	}, reqID))
	return nil
}

func (h *HubHandler) HandleGetRoomStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")
	stats := h.Hub.GetRoomStats(roomID)
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get websocket room stats", stats, reqID))

	return nil
}

func (h *HubHandler) HandleGetRoomClients(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")
	clients := h.Hub.GetRoomClients(roomID)

	type ClientInfo struct {
		ID          string    `json:"id"`
		UserID      string    `json:"user_id"`
		ConnectedAt time.Time `json:"connected_at"`
		LastSeen    time.Time `json:"last_seen"`
	}

	var clientList []ClientInfo
	for _, client := range clients {
		clientList = append(clientList, ClientInfo{
			ID:          client.ID,
			UserID:      client.UserID,
			ConnectedAt: client.ConnectedAt,
			LastSeen:    client.GetLastSeen(),
		})
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("room clients", clientList, reqID))

	return nil
}

func (h *HubHandler) HandleGetUserStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID := chi.URLParam(r, "userId")
	_, online := h.Hub.Presence.Lookup(userID)

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("user connection status", map[string]any{
		"user_id": userID,
		"online":  online,
	}, reqID))

	return nil
}

func (h *HubHandler) HandleGetDLQStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats, err := h.DLQ.GetDLQStats(r.Context())
	if err != nil {
		return app_error.Unavailable("failed to read dead letter stats", "dlq")
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("dead letter queue stats", stats, reqID))

	return nil
}

// HandleDisconnectUser force-closes a user's live connection.
func (h *HubHandler) HandleDisconnectUser(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID := chi.URLParam(r, "userId")

	conn, ok := h.Hub.Presence.Lookup(userID)
	if !ok {
		return app_error.NotFound("user has no live connection", "userId")
	}
	conn.ForceClose("disconnected by administrator")

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("user disconnected", "OK", reqID))

	return nil
}
