package transport

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"playroom/protocol"
)

// wsConnection wraps a websocket connection behind the registry's Connection
// capability. Gorilla allows at most one concurrent writer, hence the mutex.
type wsConnection struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSConnection(conn *websocket.Conn) *wsConnection {
	return &wsConnection{conn: conn}
}

func (c *wsConnection) Send(ctx context.Context, env protocol.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteJSON(env)
}

func (c *wsConnection) Close() error {
	return c.conn.Close()
}
