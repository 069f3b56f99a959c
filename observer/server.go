package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pthm-cable/forage/game"
)

const writeWait = 5 * time.Second

// Hub fans frames out to connected websocket clients. It implements
// game.Publisher; Publish never blocks on a slow client, whose frames are
// dropped once its send buffer is full.
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte // Encoded TickMsg of the newest frame
	shape   HelloMsg

	nextID  atomic.Uint64
	dropped atomic.Uint64
}

type client struct {
	id   string
	send chan []byte
}

// NewHub creates a hub whose clients queue up to sendBuffer frames.
func NewHub(sendBuffer int) *Hub {
	if sendBuffer < 1 {
		sendBuffer = 16
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		clients:    make(map[*client]struct{}),
	}
}

// Publish encodes the frame once and queues it for every client.
func (h *Hub) Publish(s game.Snapshot) {
	b, err := json.Marshal(TickMsg{Type: TypeTick, Frame: s})
	if err != nil {
		slog.Error("observer: encoding frame", "tick", s.Tick, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = b
	h.shape = HelloMsg{
		Width:       s.Width,
		Height:      s.Height,
		CellSize:    s.CellSize,
		FoodCap:     s.FoodCap,
		MaxVitality: s.MaxVitality,
	}
	for c := range h.clients {
		h.enqueue(c, b)
	}
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(c *client, b []byte) {
	select {
	case c.send <- b:
	default:
		h.dropped.Add(1)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns the number of frames dropped for slow clients.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Handler routes /ws and /snapshot.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/snapshot", h.ServeSnapshot)
	return mux
}

// ServeSnapshot writes the latest frame as JSON, or 503 before the first tick.
func (h *Hub) ServeSnapshot(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	latest := h.latest
	h.mu.Unlock()
	if latest == nil {
		http.Error(rw, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(latest)
}

// ServeWS upgrades the connection, sends a hello followed by the latest
// frame, then streams every published frame until the client goes away.
func (h *Hub) ServeWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{
		id:   fmt.Sprintf("O%d", h.nextID.Add(1)),
		send: make(chan []byte, h.sendBuffer+2),
	}
	if err := h.register(c); err != nil {
		slog.Error("observer: register", "session", c.id, "error", err)
		return
	}
	defer h.unregister(c)
	slog.Info("observer connected", "session", c.id, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-c.send:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Clients send nothing meaningful; reading detects disconnects and
	// services control frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	slog.Info("observer disconnected", "session", c.id)
}

// register adds c and queues its hello and the latest frame ahead of any
// later Publish.
func (h *Hub) register(c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	hello := h.shape
	hello.Type = TypeHello
	hello.ProtocolVersion = ProtocolVersion
	hello.Session = c.id
	b, err := json.Marshal(hello)
	if err != nil {
		return err
	}
	c.send <- b
	if h.latest != nil {
		c.send <- h.latest
	}
	h.clients[c] = struct{}{}
	return nil
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Serve runs an HTTP server for the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("observer listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("observer: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("observer shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("observer: %w", err)
		}
		return nil
	}
}
