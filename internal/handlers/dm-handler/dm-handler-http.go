package dm_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	dm_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/dm-case"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type DMHandler struct {
	State    *state.AppState
	Producer queue.Producer
	Validate *validator.Validate
	Service  dm_service.DMServiceContract
}

func NewDMHandler(state *state.AppState) *DMHandler {
	validate := validator.New()
	validate.RegisterValidation("objectID", message_dto.ObjectIDValidator)
	return &DMHandler{
		State:    state,
		Producer: queue.NewProducer(state.Redis),
		Validate: validate,
		Service:  dm_service.NewDMService(state),
	}
}

func (h *DMHandler) GetConversations(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListConversations(r.Context(), userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("conversations fetch successfully", resp, reqID))

	return nil
}

func (h *DMHandler) GetOrCreateConversation(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	otherID := chi.URLParam(r, "userId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.GetOrCreateConversation(r.Context(), userID, otherID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("conversation resolved", *resp, reqID))

	return nil
}

func (h *DMHandler) SendDirectMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.SendDirectMessageRequest
	defer r.Body.Close()

	receiverID := chi.URLParam(r, "receiverId")
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

	resp, err := h.Service.SendDirectMessage(r.Context(), req, userID, receiverID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message sent successfully", *resp, reqID))

	go func() {
		if err := h.broadcastDirectMessage(resp); err != nil {
			log.Error().Err(err).Msg("failed to enqueue direct message broadcast")
		}
	}()

	return nil
}

func (h *DMHandler) GetDirectMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	conversationID := chi.URLParam(r, "conversationId")

	req := message_dto.ListMessagesRequest{
		Page:  parseQueryInt(r, "page", 1),
		Limit: parseQueryInt(r, "limit", 50),
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListDirectMessages(r.Context(), req, conversationID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("messages fetch successfully", *resp, reqID))

	return nil
}

func (h *DMHandler) MarkConversationRead(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	conversationID := chi.URLParam(r, "conversationId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.MarkConversationRead(r.Context(), conversationID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("conversation marked as read", *resp, reqID))

	return nil
}

func parseQueryInt(r *http.Request, key string, def int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}
