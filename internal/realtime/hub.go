// Package realtime pushes notification envelopes to connected browsers over
// websockets. The hub is one of the notifiers fanned out to on every
// successful mutation.
package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finbud/internal/notify"

	"github.com/gorilla/websocket"
)

const readTimeout = 60 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks one websocket connection per owner. A reconnect replaces the
// previous connection.
type Hub struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With(slog.String("component", "realtime")),
		conns:  make(map[string]*websocket.Conn),
	}
}

// HandleConnect upgrades the request and registers the connection under
// ownerID. The caller resolves ownership before calling.
func (h *Hub) HandleConnect(w http.ResponseWriter, r *http.Request, ownerID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	h.mu.Lock()
	if old, ok := h.conns[ownerID]; ok {
		old.Close()
	}
	h.conns[ownerID] = conn
	h.mu.Unlock()

	h.logger.Info("websocket connected", slog.String("owner_id", ownerID))
	go h.monitor(ownerID, conn)
}

// monitor keeps reading until the peer goes away, then drops the
// registration. Clients are expected to send pings within the read timeout.
func (h *Hub) monitor(ownerID string, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		h.mu.Lock()
		if h.conns[ownerID] == conn {
			delete(h.conns, ownerID)
		}
		h.mu.Unlock()
		h.logger.Info("websocket closed", slog.String("owner_id", ownerID))
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Disconnect closes and removes the owner's connection, if any.
func (h *Hub) Disconnect(ownerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conn, ok := h.conns[ownerID]; ok {
		conn.Close()
		delete(h.conns, ownerID)
	}
}

// Notify writes the envelope to the owner's connection. No connection or a
// write failure is not an error: the delivery is best effort and the
// mutation already succeeded.
func (h *Hub) Notify(ctx context.Context, ownerID, event string, payload any) {
	h.mu.Lock()
	conn, ok := h.conns[ownerID]
	h.mu.Unlock()
	if !ok {
		return
	}

	env, err := notify.NewEnvelope(ownerID, event, payload)
	if err != nil {
		h.logger.Error("build envelope", slog.String("error", err.Error()))
		return
	}
	data, err := env.ToJSON()
	if err != nil {
		h.logger.Error("encode envelope", slog.String("error", err.Error()))
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Warn("websocket write failed, dropping connection",
			slog.String("owner_id", ownerID),
			slog.String("error", err.Error()))
		h.Disconnect(ownerID)
	}
}
