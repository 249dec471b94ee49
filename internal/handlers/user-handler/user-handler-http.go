package user_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/user_dto"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/utils/types"
	user_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/user-case"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type UserHandler struct {
	State    *state.AppState
	Producer queue.Producer
	Validate *validator.Validate
	Service  user_service.UserServiceContract
}

func NewUserHandler(state *state.AppState) *UserHandler {
	return &UserHandler{
		State:    state,
		Producer: queue.NewProducer(state.Redis),
		Validate: validator.New(),
		Service:  user_service.NewUserService(state),
	}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListUsers(r.Context(), userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("users fetch successfully", resp, reqID))

	return nil
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.GetUser(r.Context(), userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("profile fetch successfully", *resp, reqID))

	return nil
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	targetID := chi.URLParam(r, "userId")

	resp, err := h.Service.GetUser(r.Context(), targetID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("user fetch successfully", *resp, reqID))

	return nil
}

func (h *UserHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req user_dto.UpdateStatusRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.UpdateStatus(r.Context(), req, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("status updated", *resp, reqID))

	go h.broadcastStatusUpdate(resp)

	return nil
}

func (h *UserHandler) broadcastStatusUpdate(resp *user_dto.UpdateStatusResponse) {
	payload := &types.StatusBroadcast{
		UserID:   resp.ID,
		Status:   resp.Status,
		LastSeen: time.Now(),
	}

	job := queue.Job{
		ID:        uuid.New().String(),
		Type:      queue.JobBroadcastStatusUpdate,
		Payload:   queue.MustMarshal(payload),
		Priority:  2,
		Retry:     0,
		MaxRetry:  3,
		CreatedAt: time.Now().Unix(),
		ExpireAt:  time.Now().Add(1 * time.Minute).Unix(),
	}

	if err := h.Producer.Enqueue(h.State.Ctx, job); err != nil {
		log.Error().Err(err).Msg("Failed to enqueue status broadcast")
	}
}
