// Package server hosts matches for browsers: an embedded canvas page and a
// websocket per player.
package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

//go:embed web/index.html
var web embed.FS

var log = slog.Disabled

// UseLogger sets the logger used by the browser host
func UseLogger(logger slog.Logger) {
	log = logger
}

const shutdownTimeout = 5 * time.Second

// Server manages browser sessions
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	sessions map[string]*Session
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewServer creates a server that will listen on addr
func NewServer(addr string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Handler routes the page, the websocket and a health check
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then closes every session
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Infof("Serving on %s", s.addr)

	select {
	case err := <-errCh:
		s.Stop()
		return errors.Wrap(err, "failed to start server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Stop()
	if err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Infof("Server stopped")
	return nil
}

// Stop ends every session and waits for them. Cancelling under the lock
// means no session can be registered once Wait has started.
func (s *Server) Stop() {
	s.mu.Lock()
	s.cancel()
	for _, sess := range s.sessions {
		sess.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// Sessions returns the number of connected browsers
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := web.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// handleHealthz reports liveness and the number of open sessions
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "ok sessions=%d\n", s.Sessions())
}

// register adds a session unless the server is stopping
func (s *Server) register(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.sessions[sess.ID] = sess
	s.wg.Add(1)
	return true
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.ctx.Done():
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debugf("Upgrade: %v", err)
		return
	}

	sess, err := NewSession(conn)
	if err != nil {
		conn.Close()
		log.Errorf("New session: %v", err)
		return
	}

	// Hijacked connections are not tracked by http.Server.Shutdown
	if !s.register(sess) {
		sess.Close()
		log.Debugf("Session %s refused, server stopping", sess.ID)
		return
	}
	log.Infof("Session %s connected from %s", sess.ID, r.RemoteAddr)

	go func() {
		defer s.wg.Done()
		sess.Run(s.ctx)

		s.mu.Lock()
		delete(s.sessions, sess.ID)
		s.mu.Unlock()
		log.Infof("Session %s closed", sess.ID)
	}()
}
