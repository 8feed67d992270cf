// Package hostsim plays the controller host: it accepts WebSocket clients and
// pushes full snapshots to them.
package hostsim

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-surface/debug"
	"go-surface/snapshot"
)

// Time allowed to write a frame to the client.
const writeWait = 5 * time.Second

// Server pushes snapshots to every client that connects.
//
// If Frames is set, each client receives those frames in order, one per
// Interval, and the server then either closes (CloseAfter) or waits for the
// client to hang up. Otherwise Generate is called on every tick and the
// result streamed until the client goes away.
type Server struct {
	Frames     []string
	CloseAfter bool
	Interval   time.Duration
	Generate   func(tick int) *snapshot.Snapshot

	mu      sync.Mutex
	clients int
	served  int
}

// NewServer creates a server that streams the demo state
func NewServer(interval time.Duration) *Server {
	return &Server{
		Interval: interval,
		Generate: Demo,
	}
}

// NewScenario creates a server that sends fixed frames to each client
func NewScenario(closeAfter bool, frames ...string) *Server {
	return &Server{
		Frames:     frames,
		CloseAfter: closeAfter,
	}
}

// Clients returns the number of currently connected clients
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

// Served returns the number of clients accepted so far
func (s *Server) Served() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.served
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Log("hostsim", "upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients++
	s.served++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.clients--
		s.mu.Unlock()
	}()

	debug.Log("hostsim", "client %s connected", conn.RemoteAddr())

	// Read in the background so close frames and pings are handled
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if s.Frames != nil {
		s.playFrames(conn, gone)
	} else {
		s.stream(conn, gone)
	}
}

func (s *Server) playFrames(conn *websocket.Conn, gone <-chan struct{}) {
	for i, frame := range s.Frames {
		if i > 0 && s.Interval > 0 {
			select {
			case <-gone:
				return
			case <-time.After(s.Interval):
			}
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			return
		}
	}

	if s.CloseAfter {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "scenario done")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		select {
		case <-gone:
		case <-time.After(writeWait):
		}
		return
	}

	<-gone
}

func (s *Server) stream(conn *websocket.Conn, gone <-chan struct{}) {
	interval := s.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	generate := s.Generate
	if generate == nil {
		generate = Demo
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		data, err := json.Marshal(generate(tick))
		if err != nil {
			debug.Warn("hostsim", "marshal: %v", err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}

		select {
		case <-gone:
			return
		case <-ticker.C:
		}
	}
}
