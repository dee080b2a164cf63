package ipc

import (
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one host process talking to the sidecar. ID correlates its
// log lines; Host is filled in after the hello handshake.
type Connection struct {
	ID       string
	Host     string
	conn     net.Conn
	handlers map[string]Handler
	sendMu   sync.Mutex
}

func NewConnection(conn net.Conn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		ID:       uuid.NewString(),
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.write(env)
}

func (c *Connection) write(env Envelope) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return WriteEnvelope(c.conn, env)
}

// Close ends the connection; a blocked ReadLoop returns.
func (c *Connection) Close() error { return c.conn.Close() }

// ReadLoop blocks until the connection closes or errors. It owns the conn lifetime
// so callers don't need to track cleanup.
func (c *Connection) ReadLoop() {
	defer c.conn.Close()

	for {
		env, err := ReadEnvelope(c.conn)
		if err != nil {
			slog.Info("connection read ended", "conn", c.ID, "host", c.Host, "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "conn", c.ID, "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "conn", c.ID, "type", env.Type, "error", err)
			continue
		}

		if resp != nil {
			if err := c.write(*resp); err != nil {
				slog.Error("failed to send response", "conn", c.ID, "type", resp.Type, "error", err)
				return
			}
			slog.Debug("sent response", "conn", c.ID, "type", resp.Type)
		}
	}
}
