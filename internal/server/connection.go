package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// Connection is one WebSocket client watching and playing a single table
type Connection struct {
	conn    *websocket.Conn
	send    chan *Message
	tableID string
	logger  *log.Logger
	games   *GameService
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, tableID string, logger *log.Logger, games *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		tableID: tableID,
		logger:  logger.WithPrefix("conn").With("table", tableID),
		games:   games,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection. Every result published for the table
// is forwarded to the client, including results of its own commands.
func (c *Connection) Start(results <-chan *CommandResult, unsubscribe func()) {
	go c.writePump()
	go c.forward(results, unsubscribe)
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close shuts the connection down. The write pump sends a close frame and
// then closes the socket, which also ends the read pump.
func (c *Connection) Close() error {
	c.cancel()
	return nil
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) forward(results <-chan *CommandResult, unsubscribe func()) {
	defer unsubscribe()
	for {
		select {
		case res, ok := <-results:
			if !ok {
				// table deleted
				_ = c.Close()
				return
			}
			c.sendState(res)
		case <-c.ctx.Done():
			return
		}
	}
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// handleMessage runs a client command. Successful commands reach the client
// through the table subscription, so only failures are answered directly.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	var err error
	switch msg.Type {
	case MessageTypeAction:
		var req ActionRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError("invalid_message", "Failed to parse action data")
			return
		}
		_, err = c.games.Act(c.ctx, c.tableID, req)
	case MessageTypeDeal:
		_, err = c.games.Deal(c.ctx, c.tableID)
	case MessageTypeAdvance:
		_, err = c.games.Advance(c.ctx, c.tableID)
	case MessageTypeStep:
		_, err = c.games.Step(c.ctx, c.tableID)
	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
		return
	}

	if err != nil {
		_, code := errorStatus(err)
		c.sendError(code, err.Error())
	}
}

func (c *Connection) sendState(res *CommandResult) {
	msg, err := NewMessage(MessageTypeState, res, c.games.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message}, c.games.clock.Now())
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	_ = c.SendMessage(msg)
}
