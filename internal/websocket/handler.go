package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/presence"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

type AuthenticatorFunc func(r *http.Request) (userID string, err error)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Authorizer re-runs channel access checks for inbound socket events. Forged
// payloads must not bypass the membership authority.
type Authorizer interface {
	CanSubscribe(ctx context.Context, userID, channelID string) bool
	CanPublish(ctx context.Context, userID, channelID string) bool
}

// StatusStore persists the durable side of presence transitions.
type StatusStore interface {
	SetOnline(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string, lastSeen time.Time) error
}

type RateLimitConfig struct {
	Enabled          bool
	ConnectionsPerIP int
}

type WebSocketHandler struct {
	hub           *Hub
	authenticator AuthenticatorFunc
	authorizer    Authorizer
	status        StatusStore

	MaxConnections int
	RateLimit      RateLimitConfig

	connPerIP map[string]int
	ipMu      sync.Mutex
}

func NewWebSocketHandler(hub *Hub, auth AuthenticatorFunc, authorizer Authorizer, status StatusStore) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		authenticator:  auth,
		authorizer:     authorizer,
		status:         status,
		MaxConnections: 10000,
		RateLimit:      RateLimitConfig{Enabled: true, ConnectionsPerIP: 20},
		connPerIP:      make(map[string]int),
	}
}

// ServeHTTP upgrades the connection and starts the per-connection event loop.
// The connection does not wait on any durable write before accepting events.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats := h.hub.GetHubStats()
	if stats.TotalClients >= h.MaxConnections {
		http.Error(w, "server at capacity", http.StatusServiceUnavailable)
		return
	}

	clientIP := h.getClientIP(r)
	if !h.checkRateLimit(clientIP) {
		http.Error(w, "too many connections from this address", http.StatusTooManyRequests)
		return
	}

	userID, err := h.authenticateConnection(r)
	if err != nil {
		log.Warn().Err(err).Str("ip", clientIP).Msg("ws: authentication failed")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := newClient(uuid.New().String(), conn)
	h.updateConnectionCount(clientIP, 1)

	client.onMessage = func(c *Client, data []byte) {
		h.dispatch(c, userID, data)
	}
	client.onClose = func(c *Client) {
		h.updateConnectionCount(clientIP, -1)
		h.handleDisconnect(c)
	}

	h.hub.Register(client)
	client.Start()
}

// dispatch routes one inbound event. authUserID comes from the verified
// token; sender ids inside payloads are overridden with it so a forged
// payload cannot impersonate another user.
func (h *WebSocketHandler) dispatch(c *Client, authUserID string, data []byte) {
	var ev InboundEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Warn().Err(err).Str("clientID", c.ID).Msg("ws: malformed inbound event")
		return
	}

	switch ev.Event {
	case EventJoin:
		h.handleJoin(c, authUserID)

	case EventJoinChannel:
		var payload ChannelRoomPayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil || payload.ChannelID == "" {
			return
		}
		if !h.authorizer.CanSubscribe(c.ctx, authUserID, payload.ChannelID) {
			log.Warn().Str("userID", authUserID).Str("channelID", payload.ChannelID).Msg("ws: subscribe denied")
			return
		}
		h.hub.Subscribe(payload.ChannelID, c)

	case EventLeaveChannel:
		var payload ChannelRoomPayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil || payload.ChannelID == "" {
			return
		}
		h.hub.Unsubscribe(payload.ChannelID, c)

	case EventChannelMessage:
		h.handleChannelMessage(c, authUserID, ev.Data)

	case EventDirectMessage:
		h.handleDirectMessage(c, authUserID, ev.Data)

	case EventTyping:
		h.handleTyping(c, authUserID, ev.Data)

	case EventMarkAsRead:
		h.handleMarkAsRead(authUserID, ev.Data)

	default:
		log.Debug().Str("event", ev.Event).Str("clientID", c.ID).Msg("ws: unknown event ignored")
	}
}

func (h *WebSocketHandler) handleJoin(c *Client, userID string) {
	h.hub.HandleJoin(c, userID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.status.SetOnline(ctx, userID); err != nil {
			log.Error().Err(err).Str("userID", userID).Msg("ws: failed to persist online status")
		}
	}()
}

func (h *WebSocketHandler) handleChannelMessage(c *Client, userID string, raw json.RawMessage) {
	var payload ChannelMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.ChannelID == "" {
		return
	}

	if !h.authorizer.CanPublish(c.ctx, userID, payload.ChannelID) {
		log.Warn().Str("userID", userID).Str("channelID", payload.ChannelID).Msg("ws: channel publish denied")
		return
	}

	// sending clears the sender's typing state
	h.hub.Typing.Clear(userID)

	payload.SenderID = userID
	h.hub.PublishChannelEvent(payload.ChannelID, NewEvent(EventChannelMessage, payload), c)
}

func (h *WebSocketHandler) handleDirectMessage(c *Client, userID string, raw json.RawMessage) {
	var payload DirectMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.RecipientID == "" {
		return
	}

	h.hub.Typing.Clear(userID)

	payload.SenderID = userID
	delivered := h.hub.PublishDirectEvent(payload.RecipientID, NewEvent(EventDirectMessage, payload))
	if !delivered {
		// recipient not live; they pick the message up on next fetch
		return
	}

	var msg struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(payload.Message, &msg)
	c.SendEvent(NewEvent(EventMessageDelivered, MessageDeliveredPayload{
		MessageID:   msg.ID,
		RecipientID: payload.RecipientID,
	}))
}

func (h *WebSocketHandler) handleTyping(c *Client, userID string, raw json.RawMessage) {
	var payload TypingPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return
	}
	payload.SenderID = userID

	if payload.IsTyping {
		h.hub.Typing.Set(userID, presence.TypingTarget{
			ChannelID:   payload.ChannelID,
			RecipientID: payload.RecipientID,
		})
	} else {
		h.hub.Typing.Clear(userID)
	}

	out := NewEvent(EventUserTyping, payload)
	if payload.ChannelID != "" {
		if !h.authorizer.CanSubscribe(c.ctx, userID, payload.ChannelID) {
			return
		}
		h.hub.PublishChannelEvent(payload.ChannelID, out, c)
	} else if payload.RecipientID != "" {
		h.hub.PublishDirectEvent(payload.RecipientID, out)
	}
}

func (h *WebSocketHandler) handleMarkAsRead(userID string, raw json.RawMessage) {
	var payload MarkAsReadPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.SenderID == "" {
		return
	}

	// notify the original sender that their messages were read
	h.hub.PublishDirectEvent(payload.SenderID, NewEvent(EventMessagesRead, map[string]any{
		"messageIds": payload.MessageIDs,
		"channelId":  payload.ChannelID,
		"readerId":   userID,
	}))
}

func (h *WebSocketHandler) handleDisconnect(c *Client) {
	userID, wentOffline := h.hub.DisconnectCleanup(c)
	if !wentOffline {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.status.SetOffline(ctx, userID, time.Now()); err != nil {
			log.Error().Err(err).Str("userID", userID).Msg("ws: failed to persist offline status")
		}
	}()
}

// StartCleanup closes connections that stopped answering pings.
func (h *WebSocketHandler) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.performCleanup()
		}
	}
}

func (h *WebSocketHandler) performCleanup() {
	now := time.Now()
	inactiveThreshold := 2 * time.Minute

	h.hub.clientsMu.RLock()
	var toRemove []*Client
	for client := range h.hub.clients {
		if !client.IsClientActive() || now.Sub(client.GetLastSeen()) > inactiveThreshold {
			toRemove = append(toRemove, client)
		}
	}
	h.hub.clientsMu.RUnlock()

	for _, client := range toRemove {
		log.Info().Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: cleaning up inactive client")
		client.Close()
	}

	if len(toRemove) > 0 {
		log.Debug().Int("cleaned", len(toRemove)).Msg("ws: cleanup routine completed")
	}
}

func (h *WebSocketHandler) authenticateConnection(r *http.Request) (string, error) {
	if h.authenticator == nil {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			return "", &AuthError{Message: "user_id is required"}
		}
		return userID, nil
	}
	return h.authenticator(r)
}

func (h *WebSocketHandler) getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

func (h *WebSocketHandler) checkRateLimit(clientIP string) bool {
	if !h.RateLimit.Enabled {
		return true
	}

	h.ipMu.Lock()
	defer h.ipMu.Unlock()
	return h.connPerIP[clientIP] < h.RateLimit.ConnectionsPerIP
}

func (h *WebSocketHandler) updateConnectionCount(clientIP string, delta int) {
	h.ipMu.Lock()
	h.connPerIP[clientIP] += delta
	if h.connPerIP[clientIP] <= 0 {
		delete(h.connPerIP, clientIP)
	}
	h.ipMu.Unlock()
}
