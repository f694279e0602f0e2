package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"messaging-back/internal/metrics"
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("connection send buffer full")
)

type ConnConfig struct {
	SendBuffer   int
	ReadLimit    int64
	PingInterval time.Duration
	PongWait     time.Duration
	WriteWait    time.Duration
}

func (c ConnConfig) withDefaults() ConnConfig {
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = 64 << 10
	}
	if c.PongWait <= 0 {
		c.PongWait = 60 * time.Second
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.PongWait {
		c.PingInterval = c.PongWait * 9 / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = 10 * time.Second
	}

	return c
}

// Connection wraps a websocket and serializes outbound writes through a buffered channel.
// Send and Close are safe for concurrent use; Read must be called from a single goroutine.
type Connection struct {
	id     string
	userID uuid.UUID

	ws     *websocket.Conn
	cfg    ConnConfig
	send   chan []byte
	once   sync.Once
	closed chan struct{}
}

func NewConnection(userID uuid.UUID, ws *websocket.Conn, cfg ConnConfig) *Connection {
	cfg = cfg.withDefaults()

	return &Connection{
		id:     uuid.NewString(),
		userID: userID,
		ws:     ws,
		cfg:    cfg,
		send:   make(chan []byte, cfg.SendBuffer),
		closed: make(chan struct{}),
	}
}

func (c *Connection) ID() string {
	return c.id
}

func (c *Connection) UserID() uuid.UUID {
	return c.userID
}

// Start applies read limits and keepalive and launches the write loop. Call it once.
func (c *Connection) Start() {
	c.ws.SetReadLimit(c.cfg.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	go c.writeLoop()
}

// Send enqueues payload for delivery and never blocks. A slow client whose buffer is full
// gets disconnected in the background.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	default:
		metrics.RealtimeDropped.Inc()
		if c.markClosed() {
			// the close frame may wait behind a stalled write
			go c.shutdown(websocket.ClosePolicyViolation, "send buffer full")
		}
		return ErrSendBufferFull
	}
}

// Read blocks until the next data frame arrives.
func (c *Connection) Read() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

// Close sends a close frame, waiting at most WriteWait, and releases the socket.
func (c *Connection) Close(code int, reason string) {
	if c.markClosed() {
		c.shutdown(code, reason)
	}
}

// markClosed reports whether this call moved the connection to closed.
func (c *Connection) markClosed() bool {
	first := false
	c.once.Do(func() {
		close(c.closed)
		first = true
	})

	return first
}

func (c *Connection) shutdown(code int, reason string) {
	deadline := time.Now().Add(c.cfg.WriteWait)
	_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = c.ws.Close()
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close(websocket.CloseInternalServerErr, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close(websocket.CloseInternalServerErr, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait)); err != nil {
		return err
	}

	return c.ws.WriteMessage(messageType, payload)
}
