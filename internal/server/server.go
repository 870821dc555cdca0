package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jpalmerr/plotboard/internal/plot"
)

const (
	// shutdownTimeout bounds how long in-flight requests may take to finish
	// once the server context is cancelled.
	shutdownTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "Interactive Scatter Plot"

	// pageTemplate is the template path inside the assets filesystem.
	pageTemplate = "assets/index.html"
)

// Page is the content rendered into the dashboard template.
type Page struct {
	Title     string
	PlotlyURL string
	Figure    plot.Figure
}

// Server serves the single PlotBoard page.
//
// The page bytes are rendered once by [NewServer] and never change, so the
// handler needs no locking.
type Server struct {
	addr   string
	page   []byte
	etag   string
	debug  bool
	logger *slog.Logger
}

// NewServer renders the page and creates a new HTTP [Server].
//
// Parameters:
//   - page: title, figure and script URL to render
//   - addr: host:port to listen on
//   - assets: filesystem containing assets/index.html
//   - debug: log every request at debug level
//   - logger: logger for server events
//
// Returns an error if the template is missing or fails to render. The server
// is not started until [Server.Run] or [Server.Serve] is called.
func NewServer(page Page, addr string, assets fs.FS, debug bool, logger *slog.Logger) (*Server, error) {
	rendered, err := Render(assets, page)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(rendered)
	return &Server{
		addr:   addr,
		page:   rendered,
		etag:   `"` + hex.EncodeToString(sum[:16]) + `"`,
		debug:  debug,
		logger: logger,
	}, nil
}

// Render executes the page template from assets.
//
// Rendering is deterministic: the same page always yields the same bytes.
// The title is HTML-escaped and the figure is embedded as JSON.
func Render(assets fs.FS, page Page) ([]byte, error) {
	if assets == nil {
		return nil, errors.New("dashboard not found: no assets")
	}

	content, err := fs.ReadFile(assets, pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("dashboard not found: %w", err)
	}

	tmpl, err := template.New("index").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	if page.Title == "" {
		page.Title = defaultTitle
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("failed to render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}

// Page returns a copy of the rendered page.
func (s *Server) Page() []byte {
	return append([]byte(nil), s.page...)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the HTTP handler serving the page.
//
// Only "/" is routed. GET and HEAD are allowed; other methods get 405 and
// other paths 404.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)

	var h http.Handler = mux
	if s.debug {
		h = s.logRequests(h)
	}
	return s.recoverer(h)
}

// Run binds the configured address and serves until ctx is cancelled.
//
// Binding happens synchronously, so an occupied port is reported as an error
// before anything is served. Returns nil after a graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
//
// Serve takes ownership of ln and closes it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler: s.Handler(),
		// all request contexts derive from the server context so a shutdown
		// also cancels in-flight requests
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// handleDashboard serves the pre-rendered page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", s.etag)
	w.Header().Set("Cache-Control", "no-cache")

	// ServeContent handles HEAD, Range and If-None-Match against the ETag
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(s.page))
}

// recoverer turns handler panics into 500 responses.
// The stack is logged with a correlation id that is also returned to the client.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			correlationID := uuid.NewString()
			s.logger.Error("handler panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", rec),
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			http.Error(w, fmt.Sprintf("internal server error (correlation_id: %s)", correlationID),
				http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs each request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
