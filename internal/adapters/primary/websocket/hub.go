package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// TicketEvent is the wire format pushed to connected clients.
type TicketEvent struct {
	Type      string      `json:"type"`
	TicketID  int64       `json:"ticketId"`
	Ticket    interface{} `json:"ticket"`
	Timestamp string      `json:"timestamp"`
}

type queuedEvent struct {
	payload []byte
	ticket  *domain.Ticket
}

// Hub maintains the set of active clients and pushes ticket events to
// them. A client only receives events for tickets its visibility scope
// covers, the same rule the HTTP layer enforces.
type Hub struct {
	// clients maps user IDs to their active connections.
	// A single user can have multiple connections (multiple tabs/devices).
	clients map[uuid.UUID]map[*Client]bool

	broadcast chan queuedEvent

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu     sync.RWMutex
	logger *slog.Logger
}

var _ ports.EventBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan queuedEvent, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// BroadcastTicketEvent queues a ticket event for delivery. Events are
// dropped rather than blocking the caller when the channel is full.
func (h *Hub) BroadcastTicketEvent(eventType string, ticket *domain.Ticket) {
	payload, err := json.Marshal(TicketEvent{
		Type:      eventType,
		TicketID:  ticket.ID,
		Ticket:    ticket,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Error("failed to encode ticket event", "error", err)
		return
	}

	select {
	case h.broadcast <- queuedEvent{payload: payload, ticket: ticket}:
	default:
		h.logger.Warn("broadcast channel full, dropping event",
			"event_type", eventType,
			"ticket_id", ticket.ID,
		)
	}
}

// Run starts the hub's event loop. This MUST be run as a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]bool)
	}
	h.clients[client.UserID][client] = true

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"total_connections", len(h.clients[client.UserID]),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		if _, exists := userClients[client]; exists {
			delete(userClients, client)
			close(client.send)
			if len(userClients) == 0 {
				delete(h.clients, client.UserID)
			}
		}
	}
}

// deliver fans an event out to every connection whose scope covers the
// ticket.
func (h *Hub) deliver(event queuedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, conns := range h.clients {
		for client := range conns {
			scope := domain.ScopeFor(userID, client.Role)
			if !scope.Matches(event.ticket) {
				continue
			}

			select {
			case client.send <- event.payload:
			default:
				// Slow consumer; drop the event for this connection.
				h.logger.Warn("client send buffer full",
					"user_id", userID,
					"ticket_id", event.ticket.ID,
				)
			}
		}
	}
}
