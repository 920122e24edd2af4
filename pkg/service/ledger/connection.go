package ledger

import (
	"context"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	pingCommand  = "ping"
	writeTimeout = 10 * time.Second
)

// command is the envelope of a request sent to a ledger node over its websocket api.
type command struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

var ErrConnectionClosed = errors.New("ledger connection is closed")

// Connection is a process wide websocket connection to a ledger node. It is established once and
// kept alive with periodic pings. A dropped or silent connection is reported, not re-established.
type Connection struct {
	endpoint     string
	dialer       *websocket.Dialer
	pingInterval time.Duration
	// a node that sends nothing for readTimeout is considered gone; zero disables the deadline
	readTimeout time.Duration

	// mu guards conn and closed
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	writeMu   sync.Mutex
	connected atomic.Bool
	done      chan struct{}
}

func NewConnection(endpoint string, dialTimeout, pingInterval time.Duration) (*Connection, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing ledger endpoint<%s>", endpoint)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, errors.Errorf("ledger endpoint<%s> must use the ws or wss scheme", endpoint)
	}
	return &Connection{
		endpoint:     endpoint,
		dialer:       &websocket.Dialer{HandshakeTimeout: dialTimeout, Proxy: websocket.DefaultDialer.Proxy},
		pingInterval: pingInterval,
		readTimeout:  2 * pingInterval,
		done:         make(chan struct{}),
	}, nil
}

// Connect dials the ledger node and starts the read and keepalive loops. It fails with
// ErrConnectionClosed once Close has been called, including when Close runs while the dial is in flight.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrConnectionClosed
	}
	if c.conn != nil && c.connected.Load() {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return errors.Wrapf(err, "dialing ledger node<%s>", c.endpoint)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		_ = conn.Close()
		return ErrConnectionClosed
	}
	if c.conn != nil && c.connected.Load() {
		// a concurrent Connect won
		_ = conn.Close()
		return nil
	}
	c.conn = conn
	c.connected.Store(true)
	logrus.Infof("connected to ledger node: %s", c.endpoint)

	go c.readLoop(conn)
	if c.pingInterval > 0 {
		go c.pingLoop(conn)
	}
	return nil
}

// IsConnected reports whether the ledger connection is currently established.
func (c *Connection) IsConnected() bool {
	return c.connected.Load()
}

func (c *Connection) Endpoint() string {
	return c.endpoint
}

func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	conn := c.conn
	c.mu.Unlock()

	// whoever flips connected owns closing the socket; readLoop may already have done it
	if conn == nil || !c.connected.Swap(false) {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
	c.writeMu.Unlock()
	return conn.Close()
}

// readLoop drains responses from the node. The first read error, including a missed read deadline,
// marks the connection as down.
func (c *Connection) readLoop(conn *websocket.Conn) {
	for {
		if c.readTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		}
		_, message, err := conn.ReadMessage()
		if err != nil {
			if c.connected.Swap(false) {
				logrus.WithError(err).Warnf("ledger connection to %s lost", c.endpoint)
				_ = conn.Close()
			}
			return
		}
		logrus.Tracef("ledger message: %s", message)
	}
}

func (c *Connection) pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if !c.connected.Load() {
				return
			}
			if err := c.send(conn, command{ID: uuid.NewString(), Command: pingCommand}); err != nil {
				logrus.WithError(err).Warn("pinging ledger node")
			}
		}
	}
}

func (c *Connection) send(conn *websocket.Conn, cmd command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return errors.Wrap(err, "marshaling ledger command")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err = conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
