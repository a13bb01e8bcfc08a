package ws

import (
	"encoding/json"
	"sync"

	"agrilink/pkg/logger"
)

// Event is the wire envelope for every push.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub maintains the set of active clients. Pushes are one-way: the server
// fans events out, clients only keep the connection alive.
type Hub struct {
	clients map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	// index by user so a push reaches every open tab of that user
	userClients map[uint][]*Client
	// admin connections double as the moderation stream
	adminClients map[*Client]bool

	mutex sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		Register:     make(chan *Client),
		Unregister:   make(chan *Client),
		broadcast:    make(chan []byte),
		userClients:  make(map[uint][]*Client),
		adminClients: make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.index(client)
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// unindex before close: pushes send under the index
				// mutex, so once removed no push can reach this channel
				h.unindex(client)
				close(client.Send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					delete(h.clients, client)
					h.unindex(client)
					close(client.Send)
				}
			}
		}
	}
}

func (h *Hub) index(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
	if client.IsAdmin {
		h.adminClients[client] = true
	}

	logger.Info("websocket client connected", "user_id", client.UserID, "connections", len(h.userClients[client.UserID]))
}

func (h *Hub) unindex(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns := h.userClients[client.UserID]
	for i, conn := range conns {
		if conn == client {
			h.userClients[client.UserID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	delete(h.adminClients, client)

	logger.Info("websocket client disconnected", "user_id", client.UserID)
}

// PushToUser delivers an event to every open connection of one user.
// A user with no connections is not an error.
func (h *Hub) PushToUser(userID uint, eventType string, data any) {
	message, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Error("Failed to marshal push event", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, client := range h.userClients[userID] {
		select {
		case client.Send <- message:
		default:
			// slow client; Run will reap it on the next broadcast
		}
	}
}

// PushToAdmins delivers an event to every connected admin.
func (h *Hub) PushToAdmins(eventType string, data any) {
	message, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Error("Failed to marshal push event", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.adminClients {
		select {
		case client.Send <- message:
		default:
		}
	}
}

// Broadcast delivers an event to every connected client.
func (h *Hub) Broadcast(eventType string, data any) {
	message, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Error("Failed to marshal push event", err)
		return
	}
	h.broadcast <- message
}
