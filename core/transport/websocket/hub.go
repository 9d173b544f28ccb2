// Package websocket delivers transport messages over gorilla websocket
// connections, one connection per player id.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/lupine-games/werewolf-core/core/transport"
)

// Hub accepts one websocket connection per player id and fans outbound
// messages out to them. It implements [transport.Publisher]; inbound control
// messages are forwarded to the configured [transport.Handler].
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	handler transport.Handler
	clients map[string]*client
}

type client struct {
	playerID string
	conn     *websocket.Conn

	// gorilla allows at most one concurrent writer per connection
	writeMu sync.Mutex
}

func NewHub(handler transport.Handler) *Hub {
	return &Hub{
		handler: handler,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: map[string]*client{},
	}
}

// SetHandler rebinds the inbound handler. Used when the handler can only be
// constructed after the hub, e.g. when it publishes through this hub.
func (h *Hub) SetHandler(handler transport.Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handler = handler
}

func (h *Hub) currentHandler() transport.Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handler
}

// ServeHTTP upgrades the request to a websocket connection identified by the
// playerId query parameter. A reconnect replaces the previous connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for %s: %v", playerID, err)
		return
	}

	c := &client{playerID: playerID, conn: conn}

	h.mu.Lock()
	if previous, ok := h.clients[playerID]; ok {
		_ = previous.conn.Close()
	}
	h.clients[playerID] = c
	h.mu.Unlock()

	go h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.mu.Lock()
		if h.clients[c.playerID] == c {
			delete(h.clients, c.playerID)
		}
		h.mu.Unlock()
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Websocket read error for %s: %v", c.playerID, err)
			}
			return
		}

		var msg transport.Inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("Failed to unmarshal message from %s: %v", c.playerID, err)
			continue
		}

		handler := h.currentHandler()
		if handler == nil {
			continue
		}

		switch msg.Type {
		case transport.KindStartGame:
			handler.HandleStartGame(c.playerID)
		case transport.KindSpeechEvent:
			handler.HandleSpeechEvent(c.playerID, msg.Status)
		case transport.KindHumanInput:
			handler.HandleHumanInput(c.playerID, msg.Message)
		default:
			log.Printf("Unknown message type %q from %s", msg.Type, c.playerID)
		}
	}
}

// Publish delivers the envelope's payload to its audience, or to every
// connected client when the audience is nil. Players without a live
// connection are skipped.
func (h *Hub) Publish(_ context.Context, envelope transport.Envelope) error {
	payload, err := json.Marshal(envelope.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	var errs []error
	for _, c := range h.audience(envelope.Audience) {
		if err := c.write(websocket.TextMessage, payload); err != nil {
			errs = append(errs, fmt.Errorf("failed to deliver to %s: %w", c.playerID, err))
		}
	}
	return errors.Join(errs...)
}

// BroadcastAudio sends a synthesized audio frame to every connected client.
// Delivery failures are dropped; audio is best effort.
func (h *Hub) BroadcastAudio(audio []byte) {
	for _, c := range h.audience(nil) {
		if err := c.write(websocket.BinaryMessage, audio); err != nil {
			log.Printf("Failed to deliver audio to %s: %v", c.playerID, err)
		}
	}
}

func (h *Hub) audience(playerIDs []string) []*client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if playerIDs == nil {
		clients := make([]*client, 0, len(h.clients))
		for _, c := range h.clients {
			clients = append(clients, c)
		}
		return clients
	}

	clients := make([]*client, 0, len(playerIDs))
	for _, id := range playerIDs {
		if c, ok := h.clients[id]; ok {
			clients = append(clients, c)
		}
	}
	return clients
}

func (c *client) write(messageType int, payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(messageType, payload)
}
