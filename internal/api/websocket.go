package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"comanda/internal/monitoring"
	"comanda/internal/store"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Hub fans store events out to connected clients. It is the push half of
// the reactive loop: a store mutates, publishes on the bus, and every
// subscribed screen re-renders from the event.
type Hub struct {
	bus     *store.Bus
	metrics *monitoring.Metrics
	log     *logrus.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}

	cancel func()
	done   chan struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a stopped hub. metrics may be nil.
func NewHub(bus *store.Bus, metrics *monitoring.Metrics, log *logrus.Logger) *Hub {
	return &Hub{
		bus:     bus,
		metrics: metrics,
		log:     log,
		clients: make(map[*wsClient]struct{}),
	}
}

// Run subscribes the hub to the bus and broadcasts until Stop.
func (h *Hub) Run() {
	events, cancel := h.bus.Subscribe(256)
	h.cancel = cancel
	h.done = make(chan struct{})

	go func() {
		defer close(h.done)
		for e := range events {
			h.broadcast(e)
		}
	}()
}

// Stop unsubscribes and disconnects every client.
func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
		<-h.done
		h.cancel = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// HandleWS upgrades the request and starts the client pumps.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws: upgrade failed")
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 256)}
	h.register(client)

	go h.writePump(client)
	go h.readPump(client)
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSClients.Set(float64(n))
	}
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.WSClients.Set(float64(n))
	}
}

// broadcast sends the event to every client with buffer room; the rest
// miss it, same policy as the bus.
func (h *Hub) broadcast(e store.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		h.log.WithError(err).Warn("ws: marshal failed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// readPump drains client frames; the board never sends anything useful
// upstream, so reads only keep the connection's deadlines fresh.
func (h *Hub) readPump(c *wsClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(32 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Debug("ws: read error")
			}
			return
		}
	}
}

// writePump pumps hub broadcasts to the connection, pinging on an interval.
func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
