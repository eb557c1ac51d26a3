package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Hub tracks open notification sockets per user. Delivery is best-effort:
// the polling endpoints remain the source of truth, the socket just saves a
// poll cycle.
type Hub struct {
	mu    sync.Mutex
	users map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		users: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[*websocket.Conn]bool)
	}
	h.users[userID][conn] = true
}

func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.users[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.users, userID)
		}
	}
}

// SendToUser pushes a JSON payload to every open connection of a user.
func (h *Hub) SendToUser(userID string, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Println("ws marshal error:", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.users[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			conn.Close()
			delete(h.users[userID], conn)
		}
	}
}
