// internal/client/client_test.go
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/naveenvasou/cerina-v0/internal/engine"
	"github.com/naveenvasou/cerina-v0/internal/types"
)

func TestWSURL(t *testing.T) {
	c := New("http://localhost:8000", "u1")
	got := c.wsURL("s1")
	want := "ws://localhost:8000/ws/chat?session_id=s1&user_id=u1"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}

	c = New("https://cerina.example.com/", "")
	got = c.wsURL("")
	want = "wss://cerina.example.com/ws/chat"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRunAppliesEventsAndSendsIntents(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		// One event out, one intent in.
		websocket.Message.Send(ws, `{"type":"status","agent":"router","content":"routing"}`)
		var frame map[string]any
		if err := websocket.JSON.Receive(ws, &frame); err == nil {
			received <- frame
		}
		// Hold the socket open until the client closes it.
		var discard []byte
		websocket.Message.Receive(ws, &discard)
	}))
	defer srv.Close()

	c := New(srv.URL, "u1")
	if err := c.Connect(context.Background(), "sess-1"); err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if !c.Connected() {
		t.Error("client should report connected")
	}

	eng := engine.New("sess-1", c)
	if err := eng.Bootstrap(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Run(ctx, eng)
	}()

	// The status event should land on the timeline.
	deadline := time.After(2 * time.Second)
	for len(eng.Snapshot().Timeline) == 0 {
		select {
		case <-deadline:
			t.Fatal("event never reached the engine")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if got := eng.Snapshot().Timeline[0].Content; got != "routing" {
		t.Errorf("unexpected entry content %q", got)
	}

	if err := eng.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	select {
	case frame := <-received:
		if frame["type"] != "chat_message" || frame["message"] != "hello" {
			t.Errorf("unexpected outbound frame: %v", frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("intent never reached the server")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop on cancel")
	}
	if c.Connected() {
		t.Error("client should report disconnected after close")
	}
}

func TestRunSkipsMalformedFrames(t *testing.T) {
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		websocket.Message.Send(ws, `{broken`)
		websocket.Message.Send(ws, `{"type":"status","content":"ok"}`)
		var discard []byte
		websocket.Message.Receive(ws, &discard)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if err := c.Connect(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	eng := engine.New("", nil)
	if err := eng.Bootstrap(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go c.Run(ctx, eng)

	deadline := time.After(2 * time.Second)
	for len(eng.Snapshot().Timeline) == 0 {
		select {
		case <-deadline:
			t.Fatal("valid frame after malformed one never applied")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if got := eng.Snapshot().Timeline[0].Content; got != "ok" {
		t.Errorf("unexpected content %q", got)
	}
}

func TestHistoryClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions/sess-1/chat-history", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("user-id") != "u1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]types.HistoryItem{
			{ID: "h1", Sequence: 1, ItemType: "user_message", Role: "user", Content: "hi"},
		})
	})
	mux.HandleFunc("/api/sessions/sess-1/workflow-runs", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "run-2", "status": "awaiting_approval", "hitl_pending": true, "pending_plan_json": `{"title":"Plan"}`},
			{"id": "run-1", "status": "completed"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	h := NewHistoryClient(srv.URL, "u1")
	ctx := context.Background()

	items, err := h.ChatHistory(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Content != "hi" {
		t.Errorf("unexpected items: %+v", items)
	}

	status, err := h.ApprovalStatus(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if !status.Pending || status.RunID != "run-2" {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestHistoryClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	h := NewHistoryClient(srv.URL, "u1")
	if _, err := h.ChatHistory(context.Background(), "missing"); err == nil {
		t.Error("expected error for 404")
	}
}
