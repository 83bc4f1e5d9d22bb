package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub tracks open live-booking connections by draft id so they can be
// closed on shutdown. Drafts themselves stay owned by their connection.
type Hub struct {
	connections map[uuid.UUID]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*websocket.Conn),
	}
}

func (h *Hub) Register(draftID uuid.UUID, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.connections[draftID] = conn
}

func (h *Hub) Unregister(draftID uuid.UUID) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	delete(h.connections, draftID)
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

// Close sends a going-away frame to every connection and closes it.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, conn := range h.connections {
		if conn != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			_ = conn.Close()
		}
		delete(h.connections, id)
	}
}
