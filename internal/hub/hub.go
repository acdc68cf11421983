package hub

import (
	"encoding/json"
	"sync"

	"juegos/backend/internal/models"
)

// Event is a change notification sent to subscribers.
type Event struct {
	Type    models.EventType `json:"type"`
	Payload interface{}      `json:"payload"`
}

// Client is a subscriber's buffered inbox. The SSE handler drains it.
type Client chan []byte

// Hub fans game events out to every subscribed client.
type Hub struct {
	clients map[Client]bool
	mu      sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[Client]bool),
	}
}

// Subscribe registers a client with the given buffer size.
func (h *Hub) Subscribe(buffer int) Client {
	client := make(Client, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends an event to all clients. A client whose buffer is full misses
// the event rather than blocking the publisher.
func (h *Hub) Publish(event Event) error {
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client <- messageBytes:
		default:
		}
	}
	return nil
}
