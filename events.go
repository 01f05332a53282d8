package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

// MatchEvent is pushed to the acting user's sockets after each successful
// ledger mutation, so the deck, requests and matches tabs can refresh
// without polling. The match payload is identical to the REST responses.
type MatchEvent struct {
	Type  string `json:"type"` // "swipe" | "response" | "info"
	Match *Match `json:"match,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// eventClient represents one WebSocket subscriber.
type eventClient struct {
	userID string
	conn   *websocket.Conn
	send   chan MatchEvent
}

// EventHub manages WebSocket subscriber connections per user. It implements
// MatchNotifier: the ledger hands it events, it fans them out.
type EventHub struct {
	clientsByUser map[string]map[*eventClient]bool
	mu            sync.RWMutex
}

func NewEventHub() *EventHub {
	return &EventHub{
		clientsByUser: make(map[string]map[*eventClient]bool),
	}
}

func (h *EventHub) register(c *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clientsByUser[c.userID] == nil {
		h.clientsByUser[c.userID] = make(map[*eventClient]bool)
	}
	h.clientsByUser[c.userID][c] = true
}

func (h *EventHub) unregister(c *eventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if peers, ok := h.clientsByUser[c.userID]; ok {
		delete(peers, c)
		if len(peers) == 0 {
			delete(h.clientsByUser, c.userID)
		}
	}
}

func (h *EventHub) sendToUser(userID string, evt MatchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if peers, ok := h.clientsByUser[userID]; ok {
		for c := range peers {
			select {
			case c.send <- evt:
			default:
				// Drop the event if the client's buffer is full
			}
		}
	}
}

// MatchRecorded implements MatchNotifier.
func (h *EventHub) MatchRecorded(m Match) {
	h.sendToUser(m.UserID, MatchEvent{Type: "swipe", Match: &m})
}

// MatchResolved implements MatchNotifier.
func (h *EventHub) MatchResolved(m Match) {
	h.sendToUser(m.UserID, MatchEvent{Type: "response", Match: &m})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// For development: allow the Expo dev client origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/events
func wsEventsHandler(hub *EventHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := getUserIDFromRequest(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WS upgrade error for user %s: %v", userID, err)
			return
		}

		client := &eventClient{
			userID: userID,
			conn:   conn,
			send:   make(chan MatchEvent, 16),
		}
		hub.register(client)

		// Announce connection to this client
		client.send <- MatchEvent{Type: "info", Data: "connected"}

		// Start writer
		go eventWriter(hub, client)
		// Start reader (blocks)
		eventReader(hub, client)
	}
}

// Extract user ID from Authorization header using the existing jwtSecret.
// This mirrors the authenticate() logic, but returns (id, ok) instead of
// wrapping a handler.
func getUserIDFromBearer(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return parseUserIDFromJWT(strings.TrimPrefix(auth, "Bearer "))
}

func getUserIDFromRequest(r *http.Request) (string, bool) {
	// Try Authorization header first
	if id, ok := getUserIDFromBearer(r); ok {
		return id, true
	}
	// Fallback: token query param for WS (browsers can't set headers)
	if q := r.URL.Query().Get("token"); q != "" {
		return parseUserIDFromJWT(q)
	}
	return "", false
}

func parseUserIDFromJWT(tokenStr string) (string, bool) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// The feed is one-way; the reader only watches for close and keeps the
// pong deadline fresh.
func eventReader(hub *EventHub, c *eventClient) {
	defer func() {
		hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func eventWriter(hub *EventHub, c *eventClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
