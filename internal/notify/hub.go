// Package notify fans record change notifications out to the websocket
// connections of the record owner.
package notify

import (
	"encoding/json"
	"sync"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"github.com/MKhiriev/go-six-notes/models"
)

// Hub maintains the active websocket clients grouped by user.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
	closed  bool
	logger  *logger.Logger
}

func NewHub(logger *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to its user's set. After Close the client's send
// channel is closed at once, so its Run returns.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(c.send)
		return
	}

	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok = set[c]; !ok {
		return
	}

	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Publish sends n to every connection of userID. Clients with a full buffer
// miss the message; the periodic sync covers for it.
func (h *Hub) Publish(userID int64, n models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Err(err).Str("func", "*Hub.Publish").Msg("marshal notification")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn().Int64("user_id", userID).Str("record", n.RecordName).Msg("notification dropped, client buffer full")
		}
	}
}

// ClientCount returns the number of connections of userID.
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close ends every open stream. Hijacked websocket connections outlive
// http.Server.Shutdown, so the server calls this while stopping.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
}
