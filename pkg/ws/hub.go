package ws

import (
	"encoding/json"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/pkg/logger"
)

// Hub tracks connected patients and doctors and pushes chat events
// to whichever connections a user currently has open.
type Hub struct {
	connections map[string]map[*Client]bool // keyed by user id hex
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	logger      *logger.Logger
}

type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		logger:      log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	key := client.UserID.Hex()
	if h.connections[key] == nil {
		h.connections[key] = make(map[*Client]bool)
	}
	h.connections[key][client] = true

	h.logger.WithFields(map[string]interface{}{
		"user_id": key,
		"role":    client.Role,
	}).Debug("WebSocket client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	key := client.UserID.Hex()
	if conns, ok := h.connections[key]; ok {
		if _, exists := conns[client]; exists {
			delete(conns, client)
			close(client.send)
			if len(conns) == 0 {
				delete(h.connections, key)
			}
			h.logger.WithField("user_id", key).Debug("WebSocket client disconnected")
		}
	}
}

// SendToUser delivers an event to every open connection of userID.
// Users without an open connection are silently skipped.
func (h *Hub) SendToUser(userID primitive.ObjectID, eventType string, data interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to marshal websocket event")
		return
	}

	h.mutex.RLock()
	var slow []*Client
	for client := range h.connections[userID.Hex()] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	// slow consumers are dropped under the write lock; removeClient
	// only closes a connection still registered, so concurrent sends
	// cannot close the same channel twice
	for _, client := range slow {
		h.removeClient(client)
	}
}
