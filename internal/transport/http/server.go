package http

import (
	"bufio"
	"context"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"impostor/internal/app"
	"impostor/internal/config"
	"impostor/internal/transport/ws"
	"impostor/internal/words"
)

// CategoryLister lists the word categories offered on the setup screen
type CategoryLister interface {
	Categories() []words.CategoryInfo
}

// Server represents the HTTP server
type Server struct {
	server     *http.Server
	hub        *app.Hub
	categories CategoryLister
	config     *config.Config
	logger     *slog.Logger
	webFS      fs.FS
}

// NewServer creates a new HTTP server. webFS holds index.html and static/.
func NewServer(cfg *config.Config, hub *app.Hub, categories CategoryLister, logger *slog.Logger, webFS fs.FS) *Server {
	s := &Server{
		hub:        hub,
		categories: categories,
		config:     cfg,
		logger:     logger,
		webFS:      webFS,
	}

	// Set up routes
	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.server = &http.Server{
		Addr:         cfg.GetAddr(),
		Handler:      s.middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(mux *http.ServeMux) {
	// API routes
	mux.HandleFunc("POST /api/tables", s.handleCreateTable)
	mux.HandleFunc("GET /api/tables/{tableCode}", s.handleGetTable)
	mux.HandleFunc("DELETE /api/tables/{tableCode}", s.handleDeleteTable)
	mux.HandleFunc("GET /api/tables/{tableCode}/state", s.handleGetState)
	mux.HandleFunc("POST /api/tables/{tableCode}/actions", s.handleDispatch)
	mux.HandleFunc("GET /api/tables/{tableCode}/qr", s.handleQRCode)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	// WebSocket
	wsHandler := ws.NewHandler(s.hub, s.logger)
	mux.Handle("GET /ws", wsHandler)

	// Static files and SPA
	mux.HandleFunc("GET /static/", s.handleStatic)
	mux.HandleFunc("GET /", s.handleSPA)
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// middleware wraps the mux with CORS and request logging
func (s *Server) middleware(next http.Handler) http.Handler {
	return s.withCORS(s.withRequestLog(next))
}

// withCORS lets a second screen on another origin drive the API
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestLog logs every API call. Static assets are only logged in
// development.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		if !s.config.IsDevelopment() && isStaticRequest(r.URL.Path) {
			return
		}
		level := slog.LevelInfo
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.server.Shutdown(ctx)
}

// statusRecorder remembers the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the WebSocket upgrader take over the connection
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Flush implements http.Flusher
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func isStaticRequest(path string) bool {
	return strings.HasPrefix(path, "/static/")
}
