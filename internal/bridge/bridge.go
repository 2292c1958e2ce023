package bridge

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"assay/internal/config"
	"assay/pkg/logging"
)

// DefaultPort is the port the bridge listens on when none is configured.
const DefaultPort = 8372

// Config configures the websocket bridge.
type Config struct {
	// Host is the listen address, empty for all interfaces
	Host string

	// Port is the listen port
	Port int

	// Defaults fill execute payload fields the client leaves out
	Defaults config.ExecutionDefaults
}

// Server serves the remote invocation protocol over websocket. Clients
// connect, receive a listing of every known operation, and submit execute
// messages that run through the execution engine.
type Server struct {
	config   Config
	upgrader websocket.Upgrader

	httpServer *http.Server

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewServer creates a bridge server.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			// The bridge is a local tool surface, not a browser-facing
			// service. Origin checks would only reject its own clients.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Start begins serving. The listener runs until Stop is called or the
// parent context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.httpServer != nil {
		s.mu.Unlock()
		return fmt.Errorf("bridge server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleUpgrade)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	httpServer := s.httpServer
	s.mu.Unlock()

	logging.Info("Bridge", "Starting websocket bridge on %s", addr)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Bridge", err, "Bridge server error")
		}
	}()

	return nil
}

// Stop shuts the bridge down, closing every open connection.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.httpServer == nil {
		s.mu.Unlock()
		return fmt.Errorf("bridge server not started")
	}
	httpServer := s.httpServer
	cancelFunc := s.cancelFunc
	s.mu.Unlock()

	logging.Info("Bridge", "Stopping websocket bridge")

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Bridge", "Error shutting down bridge listener: %v", err)
	}

	// Shutdown does not cover hijacked connections; close them so the
	// read loops return.
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.httpServer = nil
	s.cancelFunc = nil
	s.mu.Unlock()

	return nil
}

// dispatchContext is the context execute messages run under. It falls
// back to the background context when the server serves test connections
// without Start.
func (s *Server) dispatchContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}

func (s *Server) trackConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrackConn(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}
