// Package ws pushes order status changes to vendors over websockets.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/outbox"
	"marketplace/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

var _ ports.EventPublisher = (*Hub)(nil)

// ErrHubStopped is returned by Serve once Run has exited.
var ErrHubStopped = errors.New("order feed is shut down")

// Frame is what a vendor's feed receives for each event.
type Frame struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

type client struct {
	vendorID string
	conn     *websocket.Conn
	send     chan Frame
	hub      *Hub
}

// Hub fans messages out to the connections of the vendor named by each
// message's partition key. The client set is owned by Run.
type Hub struct {
	upgrader   websocket.Upgrader
	clients    map[string]map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan outbox.Message
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *logrus.Entry
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:    make(map[string]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan outbox.Message, 256),
		done:       make(chan struct{}),
		logger:     logger.WithField("component", "ws_hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every connection. Registrations arriving afterwards are refused.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for vendorID, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, vendorID)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			if h.clients[c.vendorID] == nil {
				h.clients[c.vendorID] = make(map[*client]struct{})
			}
			h.clients[c.vendorID][c] = struct{}{}
			h.mutex.Unlock()
			h.logger.WithField("vendor_id", c.vendorID).Info("Feed client connected")

		case c := <-h.unregister:
			h.remove(c)

		case msg := <-h.broadcast:
			frame := Frame{
				Type:      msg.EventType,
				Data:      json.RawMessage(msg.Payload),
				Timestamp: msg.OccurredAt.UTC().Format(time.RFC3339),
			}
			h.mutex.RLock()
			var slow []*client
			for c := range h.clients[msg.PartitionKey] {
				select {
				case c.send <- frame:
				default:
					slow = append(slow, c)
				}
			}
			h.mutex.RUnlock()
			for _, c := range slow {
				h.logger.WithField("vendor_id", c.vendorID).Warn("Feed client too slow, dropping")
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	set, ok := h.clients[c.vendorID]
	if !ok {
		return
	}
	if _, ok = set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.vendorID)
	}
}

// Publish queues msg for the vendor's live connections. The feed is best
// effort: a full queue drops the message instead of stalling the relay.
func (h *Hub) Publish(ctx context.Context, msg outbox.Message) error {
	if msg.PartitionKey == "" {
		return nil
	}
	select {
	case <-h.done:
		return nil
	default:
	}

	select {
	case h.broadcast <- msg:
	case <-ctx.Done():
		return ctx.Err()
	default:
		h.logger.WithField("message_id", msg.ID.String()).Warn("Broadcast channel full, dropping message")
	}
	return nil
}

// Serve upgrades the request and subscribes the connection to vendorID.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, vendorID string) error {
	select {
	case <-h.done:
		http.Error(w, ErrHubStopped.Error(), http.StatusServiceUnavailable)
		return ErrHubStopped
	default:
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Failed to upgrade to WebSocket")
		return err
	}

	c := &client{vendorID: vendorID, conn: conn, send: make(chan Frame, sendBuffer), hub: h}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return ErrHubStopped
	}

	go c.writePump()
	go c.readPump()
	return nil
}

// ClientCount reports the live connections of vendorID.
func (h *Hub) ClientCount(vendorID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[vendorID])
}

// readPump only services control frames; vendors never send data.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.WithError(err).Warn("WebSocket error")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
