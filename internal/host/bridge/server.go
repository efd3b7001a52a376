// Package bridge hosts a websocket endpoint that a companion browser extension
// connects to. The extension streams tab events and executes focus and move
// commands.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nikbrunner/tabs/internal/host"
)

// DefaultAddr is where the extension expects the bridge.
const DefaultAddr = "127.0.0.1:19191"

const (
	eventBuffer  = 256
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		switch {
		case origin == "":
			return true
		case strings.HasPrefix(origin, "chrome-extension://"),
			strings.HasPrefix(origin, "moz-extension://"):
			return true
		}
		return strings.Contains(origin, "://"+strings.TrimSpace(r.Host))
	},
}

// Server is a host.Host backed by a single extension connection. A newer
// connection replaces the current one.
type Server struct {
	mux *http.ServeMux

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan Inbound
	closed  bool
	httpSrv *http.Server

	writeMu sync.Mutex
	events  chan host.Event
}

// New creates a Server. Mount it with Start or as an http.Handler.
func New() *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		pending: make(map[string]chan Inbound),
		events:  make(chan host.Event, eventBuffer),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

// Start listens on addr and serves in the background. It returns the bound
// address.
func (s *Server) Start(addr string) (string, error) {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{Handler: s, ReadHeaderTimeout: 5 * time.Second}
	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("bridge server stopped", "err", err)
		}
	}()
	slog.Info("bridge listening", "addr", ln.Addr().String())
	return ln.Addr().String(), nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Connected reports whether an extension is attached.
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Events implements host.Host.
func (s *Server) Events() <-chan host.Event {
	return s.events
}

// Close drops the connection, stops the listener and closes the event channel.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn, srv := s.conn, s.httpSrv
	s.conn = nil
	s.failPending()
	close(s.events)
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown bridge: %w", err)
		}
	}
	return nil
}

// Activate implements host.Controller.
func (s *Server) Activate(ctx context.Context, id int) error {
	return s.send(ctx, Outbound{Action: actionFocus, TabID: id})
}

// Move implements host.Controller.
func (s *Server) Move(ctx context.Context, id, index int) error {
	return s.send(ctx, Outbound{Action: actionMove, TabID: id, Index: &index})
}

// send writes msg and waits for the extension's response.
func (s *Server) send(ctx context.Context, msg Outbound) error {
	msg.ID = uuid.NewString()

	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return host.ErrNotConnected
	}
	reply := make(chan Inbound, 1)
	s.pending[msg.ID] = reply
	s.mu.Unlock()
	defer s.forget(msg.ID)

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	s.writeMu.Lock()
	_ = conn.SetWriteDeadline(deadline)
	err := conn.WriteJSON(msg)
	s.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("send %s: %w", msg.Action, err)
	}

	select {
	case res, ok := <-reply:
		if !ok {
			return host.ErrNotConnected
		}
		if !*res.OK {
			return fmt.Errorf("%s tab %d: %s", msg.Action, msg.TabID, res.Error)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s tab %d: %w", msg.Action, msg.TabID, ctx.Err())
	}
}

func (s *Server) forget(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// failPending must be called with mu held.
func (s *Server) failPending() {
	for id, ch := range s.pending {
		close(ch)
		delete(s.pending, id)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	prev := s.conn
	s.conn = conn
	s.failPending()
	s.mu.Unlock()

	if prev != nil {
		slog.Info("extension reconnected, dropping previous connection")
		_ = prev.Close()
	}
	slog.Info("extension connected", "remote", r.RemoteAddr)

	s.readLoop(conn)

	s.mu.Lock()
	current := s.conn == conn
	if current {
		s.conn = nil
		s.failPending()
	}
	s.mu.Unlock()
	_ = conn.Close()

	if current {
		slog.Info("extension disconnected")
		s.emit(host.Event{Type: host.EventDisconnected})
	}
}

func (s *Server) readLoop(conn *websocket.Conn) {
	for {
		var msg Inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("bridge read ended", "err", err)
			}
			return
		}

		if msg.isResponse() {
			s.resolve(msg)
			continue
		}

		ev, err := msg.event()
		if err != nil {
			slog.Debug("skipping bridge message", "err", err)
			continue
		}
		s.emit(ev)
	}
}

func (s *Server) resolve(msg Inbound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.pending[msg.ID]
	if !ok {
		slog.Debug("response for unknown command", "id", msg.ID)
		return
	}
	// ch is buffered and only ever receives one response.
	ch <- msg
	delete(s.pending, msg.ID)
}

func (s *Server) emit(ev host.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- ev:
	default:
		slog.Warn("dropping host event, consumer too slow", "type", ev.Type.String())
	}
}

var _ host.Host = (*Server)(nil)
