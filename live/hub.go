// Package live fans catalog updates out to connected WebSocket observers.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"storefront-api/models"
)

const (
	EventProductsUpdate = "productsUpdate"
	EventNewProduct     = "newProduct"
	EventDeleteProduct  = "deleteProduct"
	EventError          = "error"
)

// writeWait bounds every outbound write. A client that cannot drain within
// this window fails the write and gets dropped instead of stalling the hub.
var writeWait = 10 * time.Second

// Event is the wire envelope for both directions of the push channel.
type Event struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hub keeps the registry of connected observers. Delivery is best-effort:
// a client that fails or times out a write is dropped, the rest still
// receive the event.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// ClientCount reports the number of connected observers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishProducts sends the full refreshed listing to every observer.
// Implements services.ProductPublisher.
func (h *Hub) PublishProducts(products []models.Product) {
	data, err := marshalEvent(EventProductsUpdate, products)
	if err != nil {
		zap.S().Warnw("failed to encode products update", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.S().Infow("dropping websocket client", "error", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// SendProducts delivers the current listing to a single connection, used for
// the initial snapshot on connect.
func (h *Hub) SendProducts(conn *websocket.Conn, products []models.Product) error {
	data, err := marshalEvent(EventProductsUpdate, products)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// SendError reports a per-message failure back on the same socket.
func (h *Hub) SendError(conn *websocket.Conn, msg string) {
	data, err := marshalEvent(EventError, msg)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		zap.S().Infow("failed to send websocket error", "error", err)
	}
}

func marshalEvent(event string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Event: event, Payload: raw})
}
