// Package inspect streams the decision feed to operators over websocket.
// Every subscriber gets each event as one JSON text message.
package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 256
	writeTimeout = 5 * time.Second
)

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to websocket subscribers. A subscriber that falls a
// full buffer behind is disconnected rather than slowing the tick.
type Hub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Broadcast marshals v once and queues it for every subscriber.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("inspect: marshal event", "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		select {
		case s.send <- data:
		default:
			slog.Warn("inspect: subscriber too slow, dropping", "remote", s.conn.RemoteAddr())
			h.drop(s)
		}
	}
}

// Subscribers reports how many feeds are connected.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// drop must be called with mu held.
func (h *Hub) drop(s *subscriber) {
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	close(s.send)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("inspect: upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	s := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	slog.Info("inspect: subscriber connected", "remote", conn.RemoteAddr())

	go h.writeLoop(s)
	h.readLoop(s)
}

// readLoop only watches for the peer going away; the feed is one-way.
func (h *Hub) readLoop(s *subscriber) {
	defer func() {
		h.mu.Lock()
		h.drop(s)
		h.mu.Unlock()
		s.conn.Close()
		slog.Info("inspect: subscriber disconnected", "remote", s.conn.RemoteAddr())
	}()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(s *subscriber) {
	for data := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.conn.Close()
			return
		}
	}
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		h.drop(s)
	}
}

// Handler serves the feed on /ws and a liveness probe on /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
