package realtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finbud/internal/notify"

	"github.com/gorilla/websocket"
)

func testHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleConnect(w, r, r.Header.Get("X-User-ID"))
	}))
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, ownerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"X-User-ID": []string{ownerID}})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitRegistered(t *testing.T, hub *Hub, ownerID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		_, ok := hub.conns[ownerID]
		hub.mu.Unlock()
		if ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("connection for %s never registered", ownerID)
}

func TestHubDeliversEnvelopeToOwner(t *testing.T) {
	hub, srv := testHub(t)
	conn := dial(t, srv, "user-1")
	waitRegistered(t, hub, "user-1")

	hub.Notify(context.Background(), "user-1", notify.EventBudgetUpdate, notify.BudgetEvent{
		BudgetID: "b-1", CategoryID: "cat-groceries", LimitCents: 40000,
		PeriodLabel: "March 2024", Action: notify.ActionCreated,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	env, err := notify.EnvelopeFromJSON(data)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.OwnerID != "user-1" || env.Event != notify.EventBudgetUpdate {
		t.Errorf("unexpected envelope: %+v", env)
	}
	if env.ID == "" || env.Timestamp.IsZero() {
		t.Errorf("envelope missing metadata: %+v", env)
	}
}

func TestHubIgnoresUnknownOwner(t *testing.T) {
	hub, srv := testHub(t)
	conn := dial(t, srv, "user-1")

	// Notifying another owner must not reach this connection and must not
	// error.
	hub.Notify(context.Background(), "user-2", notify.EventDashboardUpdate, nil)

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected read timeout, got a message")
	}
}

func TestHubDisconnectRemovesConnection(t *testing.T) {
	hub, srv := testHub(t)
	dial(t, srv, "user-1")

	waitRegistered(t, hub, "user-1")
	hub.Disconnect("user-1")

	hub.mu.Lock()
	_, ok := hub.conns["user-1"]
	hub.mu.Unlock()
	if ok {
		t.Error("connection still registered after Disconnect")
	}
}
