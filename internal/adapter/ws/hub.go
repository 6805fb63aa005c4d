// Package ws implements the WebSocket adapter that pushes queue and issue
// updates to connected dashboard clients.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/propmate/propmate/internal/middleware"
)

// Message is the envelope for all WebSocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// conn wraps a single WebSocket connection.
type conn struct {
	ws     *websocket.Conn
	orgID  string
	cancel context.CancelFunc
}

// Hub manages active WebSocket connections and broadcasts messages.
type Hub struct {
	mu    sync.RWMutex
	conns map[*conn]struct{}
	log   *slog.Logger
}

// NewHub creates a WebSocket hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		conns: make(map[*conn]struct{}),
		log:   log,
	}
}

// HandleWS upgrades the request to a WebSocket connection and registers it
// under the org resolved by the org middleware. It blocks until the peer
// disconnects: returning earlier would let net/http cancel the request
// context and tear the connection down.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		h.log.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &conn{ws: ws, orgID: middleware.OrgIDFromContext(r.Context()), cancel: cancel}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()

	h.log.Info("websocket connected", "remote", r.RemoteAddr, "org_id", c.orgID)

	// Read loop to detect disconnects and consume pings. Clients never send
	// application messages, so anything read is discarded.
	for {
		if _, _, err := ws.Read(ctx); err != nil {
			break
		}
	}

	h.remove(c)
	_ = ws.Close(websocket.StatusNormalClosure, "")
}

// Broadcast sends a message to every connection regardless of org.
func (h *Hub) Broadcast(ctx context.Context, msg Message) {
	h.send(ctx, msg, "")
}

// BroadcastToOrg sends a message to connections belonging to one org.
func (h *Hub) BroadcastToOrg(ctx context.Context, orgID string, msg Message) {
	h.send(ctx, msg, orgID)
}

func (h *Hub) send(ctx context.Context, msg Message, orgID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal ws message", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.conns {
		if orgID != "" && c.orgID != orgID {
			continue
		}
		if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
			h.log.Debug("websocket write failed", "error", err)
			go h.remove(c)
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[c]; ok {
		c.cancel()
		delete(h.conns, c)
		h.log.Info("websocket disconnected", "org_id", c.orgID)
	}
}
