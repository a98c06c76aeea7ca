// Package serve runs component trees over the wire: one websocket
// connection per browser tab, one runtime session per connection, with
// the embedded thin client mirroring ops into the real DOM.
package serve

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loom-ui/loom/pkg/remote"
	"github.com/loom-ui/loom/pkg/runtime"
	"github.com/loom-ui/loom/pkg/vdom"
)

// Server serves one root component to any number of concurrent sessions.
type Server struct {
	config  *Config
	logger  *slog.Logger
	root    vdom.ComponentFunc
	metrics *runtime.Metrics

	upgrader   websocket.Upgrader
	httpServer *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the server's logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithServerMetrics attaches pre-registered runtime metrics instead of
// registering fresh ones.
func WithServerMetrics(m *runtime.Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// New creates a server rendering root for every connecting client.
func New(root vdom.ComponentFunc, config *Config, opts ...ServerOption) *Server {
	if config == nil {
		config = DefaultConfig()
	} else {
		config.withDefaults()
	}

	s := &Server{
		config: config,
		logger: slog.Default().With("component", "serve"),
		root:   root,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	if config.Metrics && s.metrics == nil {
		s.metrics = runtime.NewMetrics()
	}
	return s
}

// checkOrigin applies the configured origin whitelist. An empty list
// means same-origin only.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(s.config.AllowedOrigins) == 0 {
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return strings.EqualFold(u.Host, r.Host)
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// Handler returns the server's routes for mounting in an external mux.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealth)
	if s.config.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleWebSocket upgrades the connection and runs one session for its
// lifetime. The read loop blocks in the handler goroutine; when the
// client goes away the session unmounts so every effect cleanup runs.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	logger := s.logger.With("remote_addr", conn.RemoteAddr().String())
	logger.Info("session connected")

	surface := remote.NewSurface(conn,
		remote.WithLogger(logger.With("component", "remote")),
		remote.WithTimeouts(s.config.ReadTimeout.Std(), s.config.WriteTimeout.Std()),
	)

	opts := []runtime.Option{
		runtime.WithLogger(logger.With("component", "runtime")),
		runtime.WithOnIdle(surface.Flush),
	}
	if s.metrics != nil {
		opts = append(opts, runtime.WithMetrics(s.metrics))
	}
	session := runtime.NewSession(surface, opts...)

	if err := session.Mount(vdom.H(s.root, nil), surface.Root()); err != nil {
		logger.Error("mount failed", "error", err)
		surface.Close()
		return
	}

	surface.ReadLoop(session.Dispatch)
	session.Unmount()
	logger.Info("session closed")
}

// Run starts the server and blocks until a shutdown signal or a listen
// error.
func (s *Server) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully stops the HTTP server. Live websocket sessions end
// when their connections close.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout.Std())
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
