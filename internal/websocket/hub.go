package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Alpha4Coders/AlphaChat-V2/internal/presence"
	"github.com/rs/zerolog/log"
)

// Hub is the fan-out broker. Room membership is a live-view subscription per
// channel, independent of durable channel membership: access control already
// happened when the write was accepted. Direct events route through the
// presence registry and are dropped when the recipient has no live handle.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	clients   map[*Client]struct{}
	clientsMu sync.RWMutex

	Presence *presence.Registry
	Typing   *presence.TypingTracker

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	OnlineUsers      int       `json:"online_users"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub(reg *presence.Registry, typing *presence.TypingTracker) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		clients:  make(map[*Client]struct{}),
		Presence: reg,
		Typing:   typing,
		stats:    HubStats{LastReset: time.Now()},
	}
}

// Register tracks a freshly upgraded connection, before it joins presence.
func (h *Hub) Register(client *Client) {
	h.clientsMu.Lock()
	h.clients[client] = struct{}{}
	h.clientsMu.Unlock()

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	log.Info().Str("clientID", client.ID).Msg("ws: connection registered")
}

// HandleJoin installs the presence entry for userID on this connection. A
// prior session for the same user is force-closed before the new one wins the
// slot; the updated online list is broadcast to every connection.
func (h *Hub) HandleJoin(client *Client, userID string) {
	client.UserID = userID

	evicted, online := h.Presence.Join(userID, client)
	if evicted != nil {
		if old, ok := evicted.(*Client); ok && old == client {
			// same connection re-joining, nothing to close
		} else {
			evicted.ForceClose("signed in from another session")
		}
	}

	h.BroadcastAll(NewEvent(EventOnlineUsers, OnlineUsersPayload{
		Users: online,
		Count: len(online),
	}))

	log.Info().Str("clientID", client.ID).Str("userID", userID).Int("online", len(online)).Msg("ws: user joined")
}

// Subscribe adds the connection to a channel room.
func (h *Hub) Subscribe(channelID string, client *Client) {
	h.mu.Lock()
	if h.rooms[channelID] == nil {
		h.rooms[channelID] = make(map[*Client]struct{})
	}
	h.rooms[channelID][client] = struct{}{}
	roomSize := len(h.rooms[channelID])
	h.mu.Unlock()

	client.JoinRoom(channelID)

	log.Info().Str("channelID", channelID).Str("clientID", client.ID).Int("roomSize", roomSize).Msg("ws: client subscribed to channel room")
}

// Unsubscribe removes the connection from a channel room.
func (h *Hub) Unsubscribe(channelID string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[channelID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, channelID)
		}
	}
	h.mu.Unlock()

	client.LeaveRoom(channelID)
}

// PublishChannelEvent delivers ev to every connection subscribed to the
// channel's room, optionally excluding the originating connection.
func (h *Hub) PublishChannelEvent(channelID string, ev OutgoingEvent, except *Client) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("channelID", channelID).Msg("ws: failed to marshal channel event")
		return
	}

	// snapshot under lock, send outside
	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[channelID]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			if except != nil && client == except {
				continue
			}
			if client.IsClientActive() {
				targets = append(targets, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	for _, client := range targets {
		h.send(client, data, ev.Event)
	}

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})

	log.Debug().Str("channelID", channelID).Int("targets", len(targets)).Str("event", ev.Event).Msg("ws: channel fan-out completed")
}

// PublishDirectEvent delivers ev to userID's live connection, if any. A
// missing handle is a normal no-live-delivery outcome: the recipient sees the
// change on next fetch from the durable store.
func (h *Hub) PublishDirectEvent(userID string, ev OutgoingEvent) bool {
	conn, ok := h.Presence.Lookup(userID)
	if !ok {
		return false
	}

	client, ok := conn.(*Client)
	if !ok || !client.IsClientActive() {
		return false
	}

	client.SendEvent(ev)
	h.updateStats(func(stats *HubStats) {
		stats.EventsSent++
	})
	return true
}

// BroadcastAll delivers ev to every registered connection.
func (h *Hub) BroadcastAll(ev OutgoingEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", ev.Event).Msg("ws: failed to marshal broadcast")
		return
	}

	h.clientsMu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		if client.IsClientActive() {
			targets = append(targets, client)
		}
	}
	h.clientsMu.RUnlock()

	for _, client := range targets {
		h.send(client, data, ev.Event)
	}

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})
}

func (h *Hub) send(client *Client, data []byte, event string) {
	select {
	case client.Send <- data:
	case <-client.ctx.Done():
	default:
		log.Warn().Str("clientID", client.ID).Str("event", event).Msg("ws: slow consumer, closing")
		go client.Close()
	}
}

// DisconnectCleanup is the single logical cleanup step for a dying
// connection: presence eviction and room unsubscription happen together, not
// as two races. Returns the user that went offline, if this connection still
// owned a presence slot.
func (h *Hub) DisconnectCleanup(client *Client) (userID string, wentOffline bool) {
	h.clientsMu.Lock()
	delete(h.clients, client)
	h.clientsMu.Unlock()

	for _, roomID := range client.Rooms() {
		h.Unsubscribe(roomID, client)
	}

	userID, removed, online := h.Presence.Leave(client)
	if !removed {
		// already evicted by a reconnect; the winner owns the slot
		return "", false
	}

	// clear and announce any dangling typing state
	if target, ok := h.Typing.Get(userID); ok {
		h.Typing.Clear(userID)
		stop := NewEvent(EventUserTyping, TypingPayload{
			ChannelID:   target.ChannelID,
			RecipientID: target.RecipientID,
			SenderID:    userID,
			IsTyping:    false,
		})
		if target.ChannelID != "" {
			h.PublishChannelEvent(target.ChannelID, stop, nil)
		} else if target.RecipientID != "" {
			h.PublishDirectEvent(target.RecipientID, stop)
		}
	}

	h.BroadcastAll(NewEvent(EventOnlineUsers, OnlineUsersPayload{
		Users: online,
		Count: len(online),
	}))
	h.BroadcastAll(NewEvent(EventUserStatusUpdate, UserStatusPayload{
		UserID:   userID,
		Status:   "offline",
		LastSeen: time.Now(),
	}))

	log.Info().Str("clientID", client.ID).Str("userID", userID).Int("online", len(online)).Msg("ws: user disconnected")
	return userID, true
}

// Utility methods

func (h *Hub) GetRoomClients(channelID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	if roomClients, ok := h.rooms[channelID]; ok {
		for client := range roomClients {
			if client.IsClientActive() {
				clients = append(clients, client)
			}
		}
	}
	return clients
}

func (h *Hub) GetRoomStats(channelID string) map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := map[string]any{
		"channel_id": channelID,
		"exists":     false,
	}

	if clients, ok := h.rooms[channelID]; ok {
		activeClients := 0
		uniqueUsers := make(map[string]bool)
		for client := range clients {
			if client.IsClientActive() {
				activeClients++
				uniqueUsers[client.UserID] = true
			}
		}
		stats["exists"] = true
		stats["total_connections"] = len(clients)
		stats["active_connections"] = activeClients
		stats["unique_users"] = len(uniqueUsers)
	}
	return stats
}

func (h *Hub) GetHubStats() HubStats {
	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	h.mu.RLock()
	stats.TotalRooms = len(h.rooms)
	h.mu.RUnlock()

	h.clientsMu.RLock()
	active := 0
	for client := range h.clients {
		if client.IsClientActive() {
			active++
		}
	}
	h.clientsMu.RUnlock()
	stats.TotalClients = active
	stats.OnlineUsers = h.Presence.Count()

	return stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

// Close shuts down every connection.
func (h *Hub) Close() {
	log.Info().Msg("ws: shutting down hub")

	h.clientsMu.RLock()
	allClients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		allClients = append(allClients, client)
	}
	h.clientsMu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("ws: hub shutdown completed")
}
