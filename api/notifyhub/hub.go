package notifyhub

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/xufanglin/rimmich/tool"
	"github.com/xufanglin/rimmich/types"
)

// DefaultWriteTimeout bounds a single write to one client.
const DefaultWriteTimeout = 5 * time.Second

// Hub holds WebSocket connections and broadcasts notifications to all clients.
// A client that does not drain its socket within WriteTimeout is dropped.
type Hub struct {
	WriteTimeout time.Duration

	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex // per connection write lock
}

// New creates a new notify hub.
func New() *Hub {
	return &Hub{
		WriteTimeout: DefaultWriteTimeout,
		conns:        make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = &sync.Mutex{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Len reports the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast sends the notification as JSON to all registered connections.
func (h *Hub) Broadcast(notification *types.Notification) {
	if notification == nil {
		return
	}
	payload, err := sonic.Marshal(notification)
	if err != nil {
		tool.DefaultLogger.Errorf("[NotifyHub] Failed to encode notification: %v", err)
		return
	}

	type target struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}
	h.mu.RLock()
	targets := make([]target, 0, len(h.conns))
	for c, mu := range h.conns {
		targets = append(targets, target{c, mu})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		t.mu.Lock()
		err := t.conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
		if err == nil {
			err = t.conn.WriteMessage(websocket.TextMessage, payload)
		}
		t.mu.Unlock()
		if err != nil {
			tool.DefaultLogger.Debugf("[NotifyHub] Dropping client: %v", err)
			h.Unregister(t.conn)
			_ = t.conn.Close()
		}
	}
}
