package ws

import (
	"sync"

	"github.com/taskboard/api/internal/core/domain"
)

// Event is the wire shape of every message the server pushes.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const EventUserCreated = "user_created"

// Hub fans events out to every connected client. Delivery is best-effort:
// a client whose send buffer is full is dropped rather than awaited.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// UserCreated implements ports.UserNotifier.
func (h *Hub) UserCreated(user domain.PublicUser) {
	h.broadcast(Event{Event: EventUserCreated, Data: user})
}

func (h *Hub) broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			// Slow subscriber; no retry, no acknowledgment.
			go h.remove(c)
		}
	}
}

// send delivers one event to a single client. Membership is checked under
// the lock: remove closes the send channel only after deleting the client,
// so a client still in the map cannot have a closed channel.
func (h *Hub) send(c *client, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- ev:
	default:
		go h.remove(c)
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}
