package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/definance/dexgate/internal/observability/metrics"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

// Event types sent over the event stream
const (
	EventReadiness = "readiness"
	EventReload    = "reload"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 45 * time.Second
)

// Event is one message on the event stream
type Event struct {
	Type   string                   `json:"type"`
	Reason string                   `json:"reason,omitempty"`
	Update *usecase.ReadinessUpdate `json:"update,omitempty"`
}

type eventClient struct {
	id   string
	conn *websocket.Conn
	send chan Event
	once sync.Once
}

func (c *eventClient) close() {
	c.once.Do(func() { close(c.send) })
}

// EventHub fans readiness updates and reload requests out to websocket clients.
// A client that cannot keep up is disconnected.
type EventHub struct {
	upgrader websocket.Upgrader
	log      *slog.Logger

	mu      sync.Mutex
	clients map[string]*eventClient
	closed  bool
}

// NewEventHub creates an event hub accepting connections from allowedOrigins.
// An empty list accepts every origin.
func NewEventHub(allowedOrigins []string, log *slog.Logger) *EventHub {
	return &EventHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				return lo.Contains(allowedOrigins, r.Header.Get("Origin"))
			},
		},
		log:     log.With("component", "EventHub"),
		clients: make(map[string]*eventClient),
	}
}

// Serve upgrades the request and streams events until the client goes away.
// initial is queued before any broadcast.
func (h *EventHub) Serve(w http.ResponseWriter, r *http.Request, initial Event) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("Websocket upgrade failed", "err", err)
		return
	}

	c := &eventClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	c.send <- initial

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.Close()
		return
	}
	h.clients[c.id] = c
	h.mu.Unlock()

	metrics.EventClients(1)
	h.log.Debug("Client connected", "client", c.id, "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

// Publish queues ev for every connected client
func (h *EventHub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		select {
		case c.send <- ev:
		default:
			h.log.Warn("Dropping slow client", "client", id)
			delete(h.clients, id)
			c.close()
		}
	}
}

// Clients returns the number of connected clients
func (h *EventHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *EventHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		c.close()
	}
}

func (h *EventHub) remove(c *eventClient) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		c.close()
	}
	h.mu.Unlock()
}

// readPump discards client messages and detects disconnects
func (h *EventHub) readPump(c *eventClient) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
		metrics.EventClients(-1)
		h.log.Debug("Client disconnected", "client", c.id)
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *EventHub) writePump(c *eventClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				h.log.Debug("Write failed", "client", c.id, "err", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
