package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins (for development)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// Account details
	address string
	// Event types this client filters on; empty means everything
	topics map[string]bool
}

// broadcastMessage pairs an outgoing frame with its event type
type broadcastMessage struct {
	eventType string
	data      []byte
}

// subscription is a topic filter change for a client. Filter changes go
// through the hub goroutine, which is the only goroutine touching topics.
type subscription struct {
	client    *Client
	eventType string
	active    bool
}

// Hub maintains the set of active clients and broadcasts marketplace
// events to them. It implements the event publisher the services emit to.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound events to broadcast
	broadcast chan broadcastMessage

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Topic filter changes from the clients
	subscribe chan subscription
}

// NewHub creates a new hub
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan broadcastMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		clients:    make(map[*Client]bool),
	}
}

// Publish broadcasts a marketplace event to subscribed clients
func (h *Hub) Publish(event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("error marshalling event: %v", err)
		return
	}

	message := WebSocketMessage{
		Type:    event.Type,
		Payload: payload,
	}
	data, _ := json.Marshal(message)

	h.broadcast <- broadcastMessage{eventType: event.Type, data: data}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case sub := <-h.subscribe:
			if sub.active {
				sub.client.topics[sub.eventType] = true
			} else {
				delete(sub.client.topics, sub.eventType)
			}
		case message := <-h.broadcast:
			// Deliver to every client whose topic filter matches
			for client := range h.clients {
				if !client.wants(message.eventType) {
					continue
				}
				select {
				case client.send <- message.data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// wants reports whether the client should receive events of this type
func (c *Client) wants(eventType string) bool {
	if len(c.topics) == 0 {
		return true
	}
	return c.topics[eventType]
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		// Parse the message
		var wsMessage WebSocketMessage
		if err := json.Unmarshal(message, &wsMessage); err != nil {
			log.Printf("error parsing message: %v", err)
			continue
		}

		// Handle different message types
		switch wsMessage.Type {
		case "subscribe":
			// Narrow the feed to specific event types
			var eventType string
			if err := json.Unmarshal(wsMessage.Payload, &eventType); err != nil {
				log.Printf("error parsing subscribe payload: %v", err)
				continue
			}
			c.hub.subscribe <- subscription{client: c, eventType: eventType, active: true}

		case "unsubscribe":
			var eventType string
			if err := json.Unmarshal(wsMessage.Payload, &eventType); err != nil {
				log.Printf("error parsing unsubscribe payload: %v", err)
				continue
			}
			c.hub.subscribe <- subscription{client: c, eventType: eventType, active: false}
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles WebSocket requests from clients
func ServeWs(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println(err)
			return
		}

		// The feed is public; the address is kept only for logging
		address, _ := AddressFromContext(r.Context())

		client := &Client{
			hub:     hub,
			conn:    conn,
			send:    make(chan []byte, 256),
			address: address,
			topics:  make(map[string]bool),
		}
		client.hub.register <- client

		// Send welcome message
		welcomeMsg := WebSocketMessage{
			Type:    "welcome",
			Payload: json.RawMessage(`{"message":"Connected to the marketplace event feed"}`),
		}
		welcomeBytes, _ := json.Marshal(welcomeMsg)
		client.send <- welcomeBytes

		go client.writePump()
		go client.readPump()
	}
}
