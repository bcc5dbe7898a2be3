package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/arcview/pkg/errors"
	"github.com/matzehuels/arcview/pkg/observability"
	"github.com/matzehuels/arcview/pkg/style"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
	maxMessage = 4 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is a frame on the patch stream.
type Message struct {
	Type    string       `json:"type"`
	Patch   *style.Patch `json:"patch,omitempty"`
	Color   string       `json:"color,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Frame types.
const (
	TypePatch  = "patch"
	TypeSelect = "select"
	TypeError  = "error"
)

func patchMessage(p style.Patch) Message {
	return Message{Type: TypePatch, Patch: &p}
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan Message
}

// hub fans patches out to connected WebSocket clients. It is the server's
// [style.Sink].
type hub struct {
	logger *log.Logger

	mu      sync.Mutex
	current style.Patch // last patch emitted, sent to new clients
	clients map[string]*client
	closed  bool
}

func newHub(ctl *style.Controller, logger *log.Logger) *hub {
	return &hub{
		logger:  logger,
		current: ctl.Current(),
		clients: make(map[string]*client),
	}
}

// Emit queues p for every client. A client whose buffer is full is dropped
// rather than stalling the controller. Emit fails only once the hub is
// closed.
func (h *hub) Emit(_ context.Context, p style.Patch) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return errors.New(errors.ErrCodeUnavailable, "patch stream closed")
	}
	h.current = p
	msg := patchMessage(p)
	for id, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("Dropping slow client", "client", id)
			h.removeLocked(c)
		}
	}
	return nil
}

// add registers c and queues the last emitted patch as its first frame.
// Holding the lock orders it before any patch emitted afterwards.
func (h *hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.id] = c
	c.send <- patchMessage(h.current)
	return true
}

// reply queues msg for c alone.
func (h *hub) reply(c *client, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.removeLocked(c)
	}
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *hub) removeLocked(c *client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

// Len returns the number of connected clients.
func (h *hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects further patches.
func (h *hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, c := range h.clients {
		h.removeLocked(c)
	}
}

// handleWS upgrades the connection, streams patches to it and publishes the
// selections it sends.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, send: make(chan Message, sendBuffer)}
	if !s.hub.add(c) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"), time.Now().Add(writeWait))
		conn.Close()
		return
	}

	ctx := r.Context()
	hooks := observability.HTTP()
	hooks.OnClientConnect(ctx)
	s.logger.Info("Client connected", "client", c.id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump(c)
	}()

	s.readPump(ctx, c)

	s.hub.remove(c)
	<-done
	hooks.OnClientDisconnect(ctx)
	s.logger.Info("Client disconnected", "client", c.id)
}

func (s *Server) readPump(ctx context.Context, c *client) {
	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in Message
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("WebSocket read failed", "client", c.id, "error", err)
			}
			return
		}

		if in.Type != TypeSelect {
			s.hub.reply(c, Message{Type: TypeError, Code: string(errors.ErrCodeInvalidInput),
				Message: "unknown message type " + in.Type})
			continue
		}
		color, err := style.Parse(in.Color)
		if err != nil {
			s.hub.reply(c, Message{Type: TypeError, Code: string(errors.GetCode(err)), Message: err.Error()})
			continue
		}
		// The resulting patch reaches this client through the hub.
		if _, err := s.app.Controller.Select(ctx, color); err != nil {
			s.logger.Warn("Selection failed", "client", c.id, "error", err)
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				s.logger.Debug("WebSocket write failed", "client", c.id, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
