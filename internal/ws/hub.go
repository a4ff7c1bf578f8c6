package ws

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Conn is the slice of the websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one authenticated subscriber. Events only reach clients whose
// account matches the event's.
type Client struct {
	AccountID uuid.UUID
	conn      Conn
}

func NewClient(accountID uuid.UUID, conn Conn) *Client {
	return &Client{AccountID: accountID, conn: conn}
}

// Event is a resource-change notification scoped to one account.
type Event struct {
	AccountID uuid.UUID
	Payload   []byte
}

// Hub fans resource-change events out to the owning account's clients.
// Writes are serialized by the hub's own mutex; the rest of the system only
// touches the Broadcast channel.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Event
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.Clients[client] = true
			h.mu.Unlock()
			log.Println("ws: client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.conn.Close()
			}
			h.mu.Unlock()

		case event := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.Clients {
				if client.AccountID != event.AccountID {
					continue
				}
				if err := client.conn.WriteMessage(websocket.TextMessage, event.Payload); err != nil {
					client.conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}
