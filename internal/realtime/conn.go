package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong before the connection is reaped.
	pongWait = 60 * time.Second
	// Ping interval; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Inbound frames are small tagged events.
	maxFrameSize = 8192
	// Outbound buffer per connection.
	sendBuffer = 32
)

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// wsConn adapts a gorilla websocket to the Conn interface. All writes go
// through a single writer goroutine (writePump) fed by a buffered channel,
// which keeps per-connection event order and satisfies gorilla's one-writer
// rule.
type wsConn struct {
	ws        *websocket.Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func newWSConn(ws *websocket.Conn) *wsConn {
	return &wsConn{
		ws:   ws,
		send: make(chan Event, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send enqueues an event for the writer goroutine. It fails instead of
// blocking when the connection is closed or the peer has stopped draining
// its buffer, so a stale handle surfaces as a push error the relay can act on.
func (c *wsConn) Send(event Event) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}
	select {
	case c.send <- event:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSendBufferFull
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	return c.ws.Close()
}

// writePump owns all writes on the socket: queued events, keepalive pings,
// and the final close frame.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case event := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
