// Package stream publishes a replay to browser map clients over WebSocket
// and accepts their play/pause and slider input.
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/NERVsystems/tripreplay/pkg/geo"
	"github.com/NERVsystems/tripreplay/pkg/render"
	"github.com/NERVsystems/tripreplay/pkg/trip"
	"github.com/gorilla/websocket"
	"github.com/paulmach/orb/geojson"
)

const (
	sendBuffer   = 256
	writeTimeout = 5 * time.Second
	readLimit    = 4096
)

// Message types sent to clients.
const (
	TypeRoute    = "route"
	TypePosition = "position"
	TypeMarker   = "marker"
)

// Message is the envelope of every outbound frame. Exactly one payload field
// is set, matching Type.
type Message struct {
	Type     string               `json:"type"`
	Route    *RoutePayload        `json:"route,omitempty"`
	Position *render.PositionView `json:"position,omitempty"`
	Marker   *geo.Location        `json:"marker,omitempty"`
}

// RoutePayload describes the whole route: one encoded polyline per colored
// run, the per-segment GeoJSON, and the region to show first.
type RoutePayload struct {
	Runs    []trip.Run                 `json:"runs"`
	GeoJSON *geojson.FeatureCollection `json:"geojson"`
	Region  geo.BoundingBox            `json:"region"`
}

// Controls receives client input. Implementations are responsible for
// getting the call onto the scheduling loop.
type Controls interface {
	TogglePlay()
	Slide(fraction float64)
	SeekIndex(index int)
}

// Inbound is a client request: {"action":"toggle"},
// {"action":"slide","value":0.4} or {"action":"seek","index":12}. A seek
// without an index is ignored.
type Inbound struct {
	Action string  `json:"action"`
	Value  float64 `json:"value,omitempty"`
	Index  *int    `json:"index,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub is a render.Renderer that broadcasts to every connected client. The
// last route message is kept and sent to clients that join later.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	route    []byte
	controls Controls
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

var _ render.Renderer = (*Hub)(nil)

// NewHub creates a hub. Client input is ignored until SetControls is called.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "stream"),
	}
}

// SetControls routes client input to c.
func (h *Hub) SetControls(c Controls) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.controls = c
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and serves the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.route != nil {
		c.send <- h.route
	}
	h.mu.Unlock()
	h.logger.Info("client connected", "remote", r.RemoteAddr)

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("write failed, dropping client", "error", err)
			h.unregister(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) readPump(c *client) {
	defer h.unregister(c)
	c.conn.SetReadLimit(readLimit)
	for {
		var in Inbound
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("client read failed", "error", err)
			}
			return
		}
		h.dispatch(in)
	}
}

func (h *Hub) dispatch(in Inbound) {
	h.mu.Lock()
	controls := h.controls
	h.mu.Unlock()
	if controls == nil {
		return
	}
	switch in.Action {
	case "toggle":
		controls.TogglePlay()
	case "slide":
		controls.Slide(in.Value)
	case "seek":
		if in.Index == nil {
			h.logger.Debug("seek without index ignored")
			return
		}
		controls.SeekIndex(*in.Index)
	default:
		h.logger.Debug("unknown client action ignored", "action", in.Action)
	}
}

func (h *Hub) broadcast(msg Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode stream message", "type", msg.Type, "error", err)
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// slow client; frames are superseded by the next one anyway
			h.logger.Debug("client send buffer full, dropping message", "type", msg.Type)
		}
	}
	return data
}

// Route implements render.Renderer.
func (h *Hub) Route(segments []trip.Segment, region geo.BoundingBox) {
	data := h.broadcast(Message{
		Type: TypeRoute,
		Route: &RoutePayload{
			Runs:    trip.Runs(segments),
			GeoJSON: trip.GeoJSON(segments),
			Region:  region,
		},
	})
	if data != nil {
		h.mu.Lock()
		h.route = data
		h.mu.Unlock()
	}
}

// Position implements render.Renderer.
func (h *Hub) Position(view render.PositionView) {
	h.broadcast(Message{Type: TypePosition, Position: &view})
}

// Marker implements render.Renderer.
func (h *Hub) Marker(loc geo.Location) {
	h.broadcast(Message{Type: TypeMarker, Marker: &loc})
}
