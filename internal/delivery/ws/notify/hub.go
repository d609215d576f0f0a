package ws_notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventRecommendationReceived = "RECOMMENDATION_RECEIVED"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID uuid.UUID
}

type userEvent struct {
	userID uuid.UUID
	event  Event
}

// Hub fans recommendation events out to the connected sessions of
// their target users. Delivery is best-effort: a slow or absent
// client never blocks the recommendation itself.
type Hub struct {
	logger     *slog.Logger
	users      map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan userEvent
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		logger:     slog.Default(),
		users:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan userEvent, 16),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case ue := <-h.broadcast:
			h.sendToUser(ue.userID, ue.event)
		}
	}
}

// RecommendationReceived pushes an event to every open session of the
// target user.
func (h *Hub) RecommendationReceived(toUserID uuid.UUID, fromLogin, title string) {
	select {
	case h.broadcast <- userEvent{
		userID: toUserID,
		event: Event{
			Type: EventRecommendationReceived,
			Payload: map[string]interface{}{
				"from":      fromLogin,
				"title":     title,
				"timestamp": time.Now().Unix(),
			},
		},
	}:
	default:
		h.logger.Warn("notification dropped, broadcast queue full",
			"user_id", toUserID.String())
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.users[client.userID]; !exists {
		h.users[client.userID] = make(map[*Client]bool)
	}
	h.users[client.userID][client] = true

	h.logger.Info("notification client registered",
		"user_id", client.userID.String())
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, exists := h.users[client.userID]; exists {
		if _, ok := userClients[client]; ok {
			delete(userClients, client)
			close(client.send)
			if len(userClients) == 0 {
				delete(h.users, client.userID)
			}
		}
	}

	h.logger.Info("notification client unregistered",
		"user_id", client.userID.String())
}

func (h *Hub) sendToUser(userID uuid.UUID, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userClients, exists := h.users[userID]; exists {
		for client := range userClients {
			select {
			case client.send <- event:
			default:
				close(client.send)
				delete(userClients, client)
			}
		}
	}
}
