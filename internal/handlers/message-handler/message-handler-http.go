package message_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/dtos/message_dto"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/entity"
	app_error "github.com/Alpha4Coders/AlphaChat-V2/internal/errors"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/handlers"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/middleware"
	"github.com/Alpha4Coders/AlphaChat-V2/internal/queue"
	message_service "github.com/Alpha4Coders/AlphaChat-V2/internal/use-case/message-case"
	"github.com/Alpha4Coders/AlphaChat-V2/state"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type MessageHandler struct {
	State    *state.AppState
	Producer queue.Producer
	Validate *validator.Validate
	Service  message_service.MessageServiceContract
}

func NewMessageHandler(state *state.AppState) *MessageHandler {
	validate := validator.New()
	validate.RegisterValidation("objectID", message_dto.ObjectIDValidator)
	return &MessageHandler{
		State:    state,
		Producer: queue.NewProducer(state.Redis),
		Validate: validate,
		Service:  message_service.NewMessageService(state),
	}
}

func (h *MessageHandler) SendChannelMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.SendChannelMessageRequest
	defer r.Body.Close()

	channelID := chi.URLParam(r, "channelId")
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

	resp, err := h.Service.SendChannelMessage(r.Context(), req, channelID, userID)
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
		if err := h.broadcastChannelMessage(resp); err != nil {
			log.Error().Err(err).Msg("failed to enqueue channel message broadcast")
		}
	}()

	return nil
}

func (h *MessageHandler) GetChannelMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")

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

	resp, err := h.Service.ListChannelMessages(r.Context(), req, channelID, userID)
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

func (h *MessageHandler) GetPinnedMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListPinnedMessages(r.Context(), channelID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("pinned messages fetch successfully", resp, reqID))

	return nil
}

func (h *MessageHandler) EditMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.EditMessageRequest
	defer r.Body.Close()

	kind := entity.MessageKind(chi.URLParam(r, "kind"))
	messageID := chi.URLParam(r, "messageId")

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

	resp, err := h.Service.EditMessage(r.Context(), req, kind, messageID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message edited", *resp, reqID))

	go h.broadcastEdit(resp, userID)

	return nil
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	kind := entity.MessageKind(chi.URLParam(r, "kind"))
	messageID := chi.URLParam(r, "messageId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.DeleteMessage(r.Context(), kind, messageID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message deleted", *resp, reqID))

	go h.broadcastDelete(resp, userID)

	return nil
}

func (h *MessageHandler) TogglePin(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	channelID := chi.URLParam(r, "channelId")
	messageID := chi.URLParam(r, "messageId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.TogglePin(r.Context(), channelID, messageID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("pin state updated", *resp, reqID))

	go h.broadcastPin(resp, userID)

	return nil
}

func (h *MessageHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.ToggleReactionRequest
	defer r.Body.Close()

	kind := entity.MessageKind(chi.URLParam(r, "kind"))
	messageID := chi.URLParam(r, "messageId")

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

	resp, err := h.Service.ToggleReaction(r.Context(), req, kind, messageID, userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("reaction toggled", *resp, reqID))

	go h.broadcastReaction(resp, userID)

	return nil
}

func (h *MessageHandler) SaveMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req message_dto.SaveMessageRequest
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

	if err := h.Service.SaveMessage(r.Context(), req, userID); err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message saved", "OK", reqID))

	return nil
}

func (h *MessageHandler) UnsaveMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	messageID := chi.URLParam(r, "messageId")

	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	if err := h.Service.UnsaveMessage(r.Context(), userID, messageID); err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("message unsaved", "OK", reqID))

	return nil
}

func (h *MessageHandler) GetSavedMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID, ok := r.Context().Value(middleware.UserClaimsKey).(string)
	if !ok || userID == "" {
		return app_error.NewAppError(http.StatusUnauthorized, "user id is not found in context", "context")
	}

	resp, err := h.Service.ListSaved(r.Context(), userID)
	if err != nil {
		return err
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("saved messages fetch successfully", resp, reqID))

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
