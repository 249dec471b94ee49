package channel_handler

import (
	"encoding/json"
	"net/http"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	channel_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/channel-case"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
)

type ChannelHandler struct {
	State   *state.AppState
	Service channel_service.ChannelServiceContract
}

func NewChannelHandler(state *state.AppState) *ChannelHandler {
	return &ChannelHandler{
		State:   state,
		Service: channel_service.NewChannelService(state),
	}
}

func (h *ChannelHandler) GetChannels(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListChannels(r.Context(), userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("channels fetch successfully", resp, reqID))

	return nil
}

func (h *ChannelHandler) GetChannel(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.GetChannel(r.Context(), channelID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("channel fetch successfully", *resp, reqID))

	return nil
}

func (h *ChannelHandler) JoinChannel(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.JoinChannel(r.Context(), channelID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("channel joined", *resp, reqID))

	return nil
}

// SeedChannels re-runs the default channel seed. Cofounder only; boot already
// seeds, this exists for repairing a wiped directory.
func (h *ChannelHandler) SeedChannels(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	role, _ := r.Context().Value(middleware.UserRoleKey).(string)
	if role != string(entity.RoleCofounder) {
		return app_error.Forbidden("only cofounders can seed channels", "role")
	}

	if err := h.Service.SeedDefaultChannels(r.Context()); err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("default channels seeded", "OK", reqID))

	return nil
}

func (h *ChannelHandler) LeaveChannel(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.LeaveChannel(r.Context(), channelID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("channel left", *resp, reqID))

	return nil
}
