package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"impostor/internal/app"
	"impostor/internal/domain"
	"impostor/internal/transport/wire"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 16 << 10

	// Size of the send channel buffer
	sendBufferSize = 256

	// Inbound message budget per client
	messagesPerSecond = 5
	messageBurst      = 10
)

// Client represents a WebSocket client connection
type Client struct {
	conn     *websocket.Conn
	table    *app.Table
	clientID string
	send     chan []byte
	done     chan struct{}
	limiter  *rate.Limiter
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, table *app.Table, clientID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		table:    table,
		clientID: clientID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		limiter:  rate.NewLimiter(messagesPerSecond, messageBurst),
		logger:   logger.With("tableCode", table.Code(), "clientID", clientID),
	}
}

// GetClientID implements app.ClientConnection interface
func (c *Client) GetClientID() string {
	return c.clientID
}

// Send implements app.ClientConnection interface. Table events are wrapped
// in a server message.
func (c *Client) Send(message interface{}) error {
	if event, ok := message.(*domain.GameEvent); ok {
		message = eventMessage(event)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped")
		return nil
	}
}

func eventMessage(event *domain.GameEvent) *ServerMessage {
	switch event.Type {
	case domain.EventGameOver:
		return NewServerMessage(MsgGameOver, event)
	case domain.EventTableClosed:
		return NewServerMessage(MsgTableClosed, event)
	default:
		return NewServerMessage(MsgState, event)
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return nil
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.table.UnregisterClient(c.clientID)
		c.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection.
// Messages queued before Close are flushed before the socket goes away.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.drain()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// drain writes whatever is still queued
func (c *Client) drain() {
	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			return
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	if !c.limiter.Allow() {
		c.sendError(wire.ErrCodeRateLimited, "Too many messages")
		return
	}

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(wire.ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	switch msg.Type {
	case MsgDispatch:
		c.handleDispatch(msg.Payload)
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(wire.ErrCodeInvalidMessage, "Unknown message type")
	}
}

// handleDispatch decodes an action envelope and applies it to the table.
// The resulting state reaches every client through the table broadcast.
func (c *Client) handleDispatch(payload json.RawMessage) {
	action, err := wire.Decode(payload)
	if err != nil {
		c.sendError(wire.ErrorCode(err), err.Error())
		return
	}

	if _, err := c.table.Dispatch(action); err != nil {
		c.sendError(wire.ErrorCode(err), err.Error())
	}
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	c.Send(NewServerMessage(MsgConnected, &ConnectedPayload{
		ClientID:  c.clientID,
		TableCode: c.table.Code(),
	}))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	c.Send(NewServerMessage(MsgError, &ErrorPayload{
		Code:    code,
		Message: message,
	}))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}
