package ws

import (
	"encoding/json"
	"log"
)

// Hub owns the registry of live connections. Mutations broadcast one
// canonical event to every connected session; clients filter by audience
// themselves. A single goroutine consumes the channels, so events reach every
// session in emission order.
type Hub struct {
	// clients maps userID → live sessions; a user may hold several
	// connections (browser tabs) at once.
	clients map[int64][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.userID] = append(h.clients[client.userID], client)
			log.Printf("ws hub: user %d connected (%d sessions)", client.userID, h.sessionCount())

			if len(h.clients[client.userID]) == 1 {
				h.broadcastPresence(client.userID, "online")
			}

		case client := <-h.unregister:
			if h.remove(client) {
				h.drop(client)
				log.Printf("ws hub: user %d disconnected (%d sessions)", client.userID, h.sessionCount())

				if len(h.clients[client.userID]) == 0 {
					h.broadcastPresence(client.userID, "offline")
				}
			}

		case data := <-h.broadcast:
			for _, sessions := range h.clients {
				for _, client := range sessions {
					select {
					case client.send <- data:
					default:
						// Client buffer full - disconnect, no replay
						h.remove(client)
						h.drop(client)
					}
				}
			}
		}
	}
}

// Broadcast sends an event to every connected session.
func (h *Hub) Broadcast(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- data
}

// remove takes one session out of the registry, leaving the user's other
// sessions connected. Reports whether the client was still registered.
func (h *Hub) remove(client *Client) bool {
	sessions := h.clients[client.userID]
	for i, c := range sessions {
		if c == client {
			remaining := append(sessions[:i:i], sessions[i+1:]...)
			if len(remaining) == 0 {
				delete(h.clients, client.userID)
			} else {
				h.clients[client.userID] = remaining
			}
			return true
		}
	}
	return false
}

func (h *Hub) drop(client *Client) {
	close(client.send)
	close(client.done)
}

func (h *Hub) sessionCount() int {
	total := 0
	for _, sessions := range h.clients {
		total += len(sessions)
	}
	return total
}

// broadcastPresence sends online/offline to all other connected clients.
func (h *Hub) broadcastPresence(userID int64, status string) {
	evt, err := NewEvent(EventTypePresence, PresencePayload{
		UserID: userID,
		Status: status,
	})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	for id, sessions := range h.clients {
		if id == userID {
			continue
		}
		for _, client := range sessions {
			select {
			case client.send <- data:
			default:
			}
		}
	}
}
