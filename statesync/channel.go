// Package statesync keeps the latest controller snapshot in sync with the host.
//
// A Channel owns exactly one WebSocket. Every text frame is a complete
// snapshot that replaces the previous one. A frame that does not decode puts
// the channel in Error and closes the socket; nothing reconnects, a new
// Connect is needed.
package statesync

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"go-surface/debug"
	"go-surface/snapshot"
)

const (
	// Time allowed to write the close frame to the peer.
	writeWait = time.Second

	// Default size of the Updates buffer.
	defaultUpdateBuffer = 16
)

// Conn is the part of *websocket.Conn the channel uses
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Options configures Connect
type Options struct {
	// Full WebSocket URL, e.g. ws://localhost:8080
	URL string

	// Extra headers sent with the handshake.
	Header http.Header

	// Dialer to use. websocket.DefaultDialer if nil.
	Dialer *websocket.Dialer

	// Size of the Updates buffer. When full the oldest update is dropped,
	// so a slow reader always ends up on the latest state.
	UpdateBuffer int
}

// Update is published for every state change of a channel
type Update struct {
	Status   Status
	Snapshot *snapshot.Snapshot // nil when no snapshot is current
	Err      error              // cause of an Error transition
}

// Channel is a single live connection to the controller host
type Channel struct {
	id   string
	url  string
	conn Conn

	mu       sync.RWMutex
	status   Status
	snapshot *snapshot.Snapshot

	pubMu         sync.Mutex
	updates       chan Update
	updatesClosed bool

	closing   atomic.Bool
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// Connect dials the host and returns an Open channel.
// The caller must call Run to start receiving, and Close when done.
func Connect(ctx context.Context, opts Options) (*Channel, error) {
	dialer := opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, _, err := dialer.DialContext(ctx, opts.URL, opts.Header)
	if err != nil {
		debug.Log("sync", "dial %s failed: %v", opts.URL, err)
		return nil, &TransportError{Op: "dial", Err: err}
	}

	return newChannel(conn, opts.URL, opts.UpdateBuffer), nil
}

// newChannel wraps an established connection and moves it to Open
func newChannel(conn Conn, url string, buffer int) *Channel {
	if buffer <= 0 {
		buffer = defaultUpdateBuffer
	}
	c := &Channel{
		id:      uuid.NewString(),
		url:     url,
		conn:    conn,
		status:  connecting,
		updates: make(chan Update, buffer),
		done:    make(chan struct{}),
	}
	debug.Log("sync", "[%s] connected to %s", c.short(), url)
	c.apply(evOpened, nil, nil)
	return c
}

// ID returns the unique id of this handle
func (c *Channel) ID() string {
	return c.id
}

// URL returns the endpoint this channel is connected to
func (c *Channel) URL() string {
	return c.url
}

// Status returns the current connection status
func (c *Channel) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Snapshot returns the current snapshot (read-only), or nil
func (c *Channel) Snapshot() *snapshot.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Updates returns the stream of state changes.
// It is closed when Run returns.
func (c *Channel) Updates() <-chan Update {
	return c.updates
}

// Done is closed when Run returns
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Run is the receive loop (blocking - run in goroutine).
// It returns once the socket is closed for any reason.
func (c *Channel) Run() {
	defer func() {
		c.pubMu.Lock()
		c.updatesClosed = true
		close(c.updates)
		c.pubMu.Unlock()
		close(c.done)
	}()

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			c.readFailed(err)
			return
		}

		if msgType != websocket.TextMessage {
			err = &snapshot.DecodeError{Err: errors.New("expected text frame")}
		}

		var s *snapshot.Snapshot
		if err == nil {
			s, err = snapshot.Decode(data)
		}
		if err != nil {
			debug.Warn("sync", "[%s] %v", c.short(), err)
			c.apply(evMessageBad, nil, err)
			c.Close()
			c.apply(evClosed, nil, nil)
			return
		}

		debug.LogEvery(50, "sync", "[%s] snapshot mode=%q pads=%d knobs=%d", c.short(), s.Mode, len(s.Pads), len(s.Knobs))
		c.apply(evMessageOK, s, nil)
	}
}

// readFailed maps a read error to close or transport-error events
func (c *Channel) readFailed(err error) {
	switch {
	case c.closing.Load():
		// Closed locally
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		debug.Log("sync", "[%s] closed by host: %v", c.short(), err)
	default:
		debug.Warn("sync", "[%s] transport error: %v", c.short(), err)
		c.apply(evTransportError, nil, &TransportError{Op: "read", Err: err})
	}
	c.Close()
	c.apply(evClosed, nil, nil)
}

// Close releases the socket. It is safe to call any number of times;
// the underlying connection is closed exactly once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closing.Store(true)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		// Best effort, the peer may already be gone
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.closeErr = c.conn.Close()
		debug.Log("sync", "[%s] socket closed", c.short())
	})
	c.apply(evClosed, nil, nil)
	return c.closeErr
}

// apply runs one event through the transition table and publishes the
// result. pubMu is held across both so updates leave in transition order.
func (c *Channel) apply(ev event, s *snapshot.Snapshot, cause error) {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()

	c.mu.Lock()
	t, ok := next(c.status, ev)
	if !ok {
		c.mu.Unlock()
		return
	}

	prev, prevSnap := c.status, c.snapshot
	c.status = t.next
	switch t.effect {
	case replaceSnapshot:
		c.snapshot = s
	case clearSnapshot:
		c.snapshot = nil
	}
	u := Update{Status: c.status, Snapshot: c.snapshot, Err: cause}
	changed := prev != c.status || prevSnap != c.snapshot
	c.mu.Unlock()

	if !changed {
		return
	}
	if prev != u.Status {
		debug.Log("sync", "[%s] %s -> %s (%s)", c.short(), prev, u.Status, ev)
	}
	c.publishLocked(u)
}

// publishLocked sends u, dropping the oldest pending update if the buffer
// is full. The caller holds pubMu.
func (c *Channel) publishLocked(u Update) {
	if c.updatesClosed {
		return
	}
	for {
		select {
		case c.updates <- u:
			return
		default:
		}
		select {
		case <-c.updates:
		default:
		}
	}
}

func (c *Channel) short() string {
	if len(c.id) > 8 {
		return c.id[:8]
	}
	return c.id
}
