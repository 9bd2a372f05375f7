// Package reload is the live-reload server of txmlc watch: browsers connect
// over a websocket and are told when generated modules change.
package reload

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grindlemire/go-txml/internal/log"
)

// Path is the websocket endpoint.
const Path = "/__txml/reload"

// Message types sent to clients.
const (
	TypeReload = "RELOAD"
	TypeError  = "ERROR"
	TypeAck    = "ACK"
)

// Message is the JSON frame exchanged with clients.
type Message struct {
	Type  string   `json:"type"`
	Files []string `json:"files,omitempty"`
	Error string   `json:"error,omitempty"`
}

// Hub tracks connected clients and broadcasts messages to them.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]bool
}

// client serializes writes; a websocket connection allows one writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteJSON(msg)
}

// NewHub creates a hub accepting connections from any origin.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // dev server only
			},
		},
		clients: make(map[*client]bool),
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. A HELLO message is answered with ACK.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Reload("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	log.Reload("client connected from %s", r.RemoteAddr)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		log.Reload("client disconnected from %s", r.RemoteAddr)
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Reload("read error: %v", err)
			}
			return
		}
		switch msg.Type {
		case "HELLO":
			if err := c.send(Message{Type: TypeAck}); err != nil {
				return
			}
		default:
			log.Reload("unknown message type %q", msg.Type)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends msg to every client and returns how many received it.
// Clients that fail are closed.
func (h *Hub) Broadcast(msg Message) int {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	sent := 0
	for _, c := range clients {
		if err := c.send(msg); err != nil {
			log.Reload("send failed: %v", err)
			c.conn.Close()
			continue
		}
		sent++
	}
	log.Reload("%s sent to %d client(s)", msg.Type, sent)
	return sent
}

// Serve runs an HTTP server exposing h at Path until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
