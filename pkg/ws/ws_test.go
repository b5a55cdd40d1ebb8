package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aamirkhan2478/elite-market-backend/pkg/ws"
)

func TestBroadcastReachesClient(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the hub a moment to register the client, then broadcast.
	time.Sleep(100 * time.Millisecond)
	hub.BroadcastJSON(map[string]any{
		"event":   "order.placed",
		"orderId": "64a1f0c2e4b0a1b2c3d4e5f6",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var event map[string]any
	if err := json.Unmarshal(msg, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if event["event"] != "order.placed" {
		t.Errorf("unexpected event: %v", event)
	}
}

func TestBroadcastJSONWithNoClients(t *testing.T) {
	hub := ws.NewHub()
	go hub.Run()

	// Must not block or panic with nobody connected.
	hub.BroadcastJSON(map[string]string{"event": "order.placed"})
}
