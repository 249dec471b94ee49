package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
)

// Client is one live connection. UserID stays empty until the join event
// authenticates the presence slot; rooms are the channel subscriptions this
// connection holds.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	ctx    context.Context
	cancel context.CancelFunc

	ConnectedAt time.Time
	lastSeen    time.Time
	seenMu      sync.RWMutex

	rooms   map[string]struct{}
	roomsMu sync.Mutex

	closeOnce sync.Once

	// set by the handler before Start
	onMessage func(c *Client, data []byte)
	onClose   func(c *Client)
}

func newClient(id string, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:          id,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		ctx:         ctx,
		cancel:      cancel,
		ConnectedAt: time.Now(),
		lastSeen:    time.Now(),
		rooms:       make(map[string]struct{}),
	}
}

func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// ConnID satisfies presence.Conn.
func (c *Client) ConnID() string {
	return c.ID
}

// ForceClose satisfies presence.Conn: used when a newer session for the same
// user evicts this one.
func (c *Client) ForceClose(reason string) {
	c.SendEvent(OutgoingEvent{
		Event:     EventSessionReplaced,
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now().Unix(),
	})
	c.Close()
}

func (c *Client) IsClientActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

func (c *Client) GetLastSeen() time.Time {
	c.seenMu.RLock()
	defer c.seenMu.RUnlock()
	return c.lastSeen
}

func (c *Client) touch() {
	c.seenMu.Lock()
	c.lastSeen = time.Now()
	c.seenMu.Unlock()
}

// SendEvent queues an event on this connection's send buffer. Delivery is
// best-effort: a full buffer marks a slow consumer and drops the event.
func (c *Client) SendEvent(ev OutgoingEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", ev.Event).Msg("ws: failed to marshal event")
		return
	}

	select {
	case c.Send <- data:
	case <-c.ctx.Done():
	default:
		log.Warn().Str("clientID", c.ID).Str("event", ev.Event).Msg("ws: slow consumer, dropping event")
	}
}

// JoinRoom records a room subscription on the client side.
func (c *Client) JoinRoom(roomID string) {
	c.roomsMu.Lock()
	c.rooms[roomID] = struct{}{}
	c.roomsMu.Unlock()
}

func (c *Client) LeaveRoom(roomID string) {
	c.roomsMu.Lock()
	delete(c.rooms, roomID)
	c.roomsMu.Unlock()
}

// Rooms snapshots the current subscriptions.
func (c *Client) Rooms() []string {
	c.roomsMu.Lock()
	defer c.roomsMu.Unlock()
	rooms := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		rooms = append(rooms, id)
	}
	return rooms
}

// Close cancels the connection exactly once. The read pump's deferred cleanup
// handles presence eviction and room unsubscription as one step.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.Conn.Close()
	})
}

// writePump drains c.Send to the socket and keeps the connection alive with
// pings. Single writer per connection preserves FIFO per source.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			if _, err := w.Write(msg); err != nil {
				_ = w.Close()
				return
			}

			_ = w.Close()

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump reads inbound events and hands them to the dispatcher. Its defer
// is the single cleanup path for the connection.
func (c *Client) readPump() {
	defer func() {
		if c.onClose != nil {
			c.onClose(c)
		}
		c.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.touch()
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("clientID", c.ID).Msg("ws: unexpected close")
			}
			return
		}

		c.touch()
		if c.onMessage != nil {
			c.onMessage(c, data)
		}
	}
}
