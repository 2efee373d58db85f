package hub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	sendBufSize  = 256
	routeBufSize = 100
)

var errSendBufferFull = errors.New("send buffer full")

// Frame is the envelope written to the WebSocket peer.
type Frame struct {
	Type      string    `json:"type"`
	SenderID  uint      `json:"senderId,omitempty"`
	Content   string    `json:"content,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// inboundFrame is a command from the peer. Connected clients only ever submit
// chat; incident, task and system traffic enters through the event bridges.
type inboundFrame struct {
	To      uint   `json:"to,omitempty"`
	ToAgent bool   `json:"toAgent,omitempty"`
	Content string `json:"content"`
}

// Client owns a single WebSocket connection and implements Channel. One
// logical task per connection: a stalled peer can never block processing for
// other connections.
type Client struct {
	ID     string
	UserID uint
	Role   Role
	TeamID uint

	reg    *Registry
	router *Router
	rec    *Reconciler

	conn       *websocket.Conn
	send       chan Frame
	routeQueue chan Message
	sync       *historySync

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	logger zerolog.Logger
}

func NewClient(id string, userID uint, role Role, teamID uint, conn *websocket.Conn, h *Hub, logger zerolog.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:         id,
		UserID:     userID,
		Role:       role,
		TeamID:     teamID,
		reg:        h.Registry,
		router:     h.Router,
		rec:        h.Reconciler,
		conn:       conn,
		send:       make(chan Frame, sendBufSize),
		routeQueue: make(chan Message, routeBufSize),
		sync:       newHistorySync(),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
}

// Start registers the client and launches its pumps. Registration is fast so
// the user can send and receive immediately; the history load runs behind it.
func (c *Client) Start() {
	c.reg.Register(c.UserID, c.Role, c.TeamID, c)

	go c.writePump()
	go c.readPump()
	go c.routeWorker()
	go c.loadHistory()
}

// Push delivers a routed message, buffering it while the history fetch is
// outstanding. Never blocks; a full send buffer means the peer stopped
// draining, so the connection is torn down and further traffic reaches the
// user through history on reconnect.
func (c *Client) Push(msg Message) error {
	if c.sync.hold(msg) {
		return nil
	}
	if err := c.pushFrame(frameFromMessage(msg)); err != nil {
		c.logger.Warn().Str("clientId", c.ID).Uint("userId", c.UserID).Msg("Send buffer full, closing connection")
		go c.teardown()
		return err
	}
	return nil
}

// teardown frees the registry slot and closes the transport. The close
// handshake can block on a stalled peer, so callers on a routing path spawn
// it instead of waiting.
func (c *Client) teardown() {
	c.reg.Unregister(c.UserID, c)
	_ = c.Close()
}

// Announce delivers a presence transition. Presence frames are transient UI
// state and skip the history buffer.
func (c *Client) Announce(ev Event) error {
	return c.pushFrame(Frame{Type: "presence", Timestamp: ev.At, Data: ev})
}

// Close tears the connection down. Safe to call from the registry on
// supersession as well as from the connection's own teardown path.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	})
	return nil
}

func (c *Client) pushFrame(frame Frame) error {
	select {
	case c.send <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

func frameFromMessage(msg Message) Frame {
	return Frame{
		Type:      string(msg.Kind),
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		Timestamp: msg.SentAt,
	}
}

func (c *Client) sendError(errorText string) {
	_ = c.pushFrame(Frame{Type: "error", Content: errorText, Timestamp: time.Now()})
}

// loadHistory runs the reconciliation protocol: fetch persisted history
// without holding any registry lock, then deliver the merged view as the
// initial state. If the connection dropped mid-fetch the view lands in a dead
// send buffer and is simply discarded.
func (c *Client) loadHistory() {
	c.rec.Load(c.ctx, c.UserID, c.sync, func(view HistoryView) {
		if err := c.pushFrame(Frame{Type: "history", Timestamp: time.Now(), Data: view}); err != nil {
			c.logger.Warn().Err(err).Str("clientId", c.ID).Msg("Failed to deliver history view")
		}
	})
}

// readPump reads frames from the peer and queues them for routing.
func (c *Client) readPump() {
	defer func() {
		close(c.routeQueue)
		c.reg.Unregister(c.UserID, c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error().Err(err).Str("clientId", c.ID).Msg("WebSocket read error")
			}
			break
		}

		var in inboundFrame
		if err := json.Unmarshal(raw, &in); err != nil {
			c.logger.Error().Err(err).Str("clientId", c.ID).Msg("Failed to unmarshal frame")
			c.sendError("Invalid message format")
			continue
		}
		if in.Content == "" || (!in.ToAgent && in.To == 0) {
			c.sendError("Message needs content and a recipient")
			continue
		}

		msg := Message{
			Kind:     KindChat,
			SenderID: c.UserID,
			TeamID:   c.TeamID,
			ToAgent:  in.ToAgent,
			Content:  in.Content,
			SentAt:   time.Now(),
		}
		if !in.ToAgent {
			msg.Targets = []uint{in.To}
		}

		// Routing persists, which can suspend; queue it so the read loop
		// stays responsive while submission order is preserved.
		select {
		case c.routeQueue <- msg:
		default:
			c.logger.Warn().Str("clientId", c.ID).Msg("Route queue full, dropping message")
			c.sendError("Server is busy, please try again")
		}
	}
}

// routeWorker routes queued messages sequentially, preserving this sender's
// submission order to every recipient. Persistence failures come back here
// and are reported loudly to the sender; live pushes already made stand.
func (c *Client) routeWorker() {
	for msg := range c.routeQueue {
		if err := c.router.Route(c.ctx, msg); err != nil {
			c.logger.Error().Err(err).Str("clientId", c.ID).Msg("Failed to route message")
			c.sendError("Message could not be stored")
		}
	}
}

// writePump pumps frames to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			raw, err := json.Marshal(frame)
			if err != nil {
				c.logger.Error().Err(err).Msg("Failed to marshal frame")
				_ = w.Close()
				continue
			}
			_, _ = w.Write(raw)

			// Add queued frames to the current websocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write([]byte{'\n'})
				next := <-c.send
				nextRaw, _ := json.Marshal(next)
				_, _ = w.Write(nextRaw)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
