package seatmap

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ViewportHook receives viewport events for every builder session.
type ViewportHook interface {
	ViewportUpdated(ctx context.Context, event ViewportEvent) error
}

type noopViewportHook struct{}

func (noopViewportHook) ViewportUpdated(context.Context, ViewportEvent) error { return nil }

// BroadcastHook fans out viewport events to in-process subscribers so a
// browser render host can apply cache and clearCache calls.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

type subscriber struct {
	session string
	ch      chan ViewportEvent
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]subscriber),
	}
}

// ViewportUpdated satisfies ViewportHook. Slow subscribers miss events rather
// than stall the viewport.
func (h *BroadcastHook) ViewportUpdated(_ context.Context, event ViewportEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.session != "" && sub.session != event.SessionID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of viewport events and a cancel func. An empty
// session receives events for every session.
func (h *BroadcastHook) Subscribe(session string) (<-chan ViewportEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ViewportEvent, 64)
	h.subs[id] = subscriber{session: session, ch: ch}
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of active subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams viewport events as JSON.
// The optional "session" query parameter filters to one session.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe(r.URL.Query().Get("session"))
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for viewport events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe(r.URL.Query().Get("session"))
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
