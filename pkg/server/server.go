// Package server implements the live preview server for canvas documents.
//
// The server re-converts the source document on each request, so edits to
// the canvas show up on browser refresh. Rendered HTML is cached keyed by
// the document's content hash; a changed canvas invalidates the entry
// automatically.
package server

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/canvaskit/canvashtml/pkg/assets"
	"github.com/canvaskit/canvashtml/pkg/cache"
	"github.com/canvaskit/canvashtml/pkg/canvas"
	"github.com/canvaskit/canvashtml/pkg/render"
)

// Server serves a converted canvas document over HTTP.
type Server struct {
	canvasPath string
	rootDir    string
	cache      cache.Cache
	ttl        time.Duration
	logger     *log.Logger
}

// New creates a preview server for the given canvas file. Asset
// references resolve against rootDir. A nil cache disables caching.
func New(canvasPath, rootDir string, c cache.Cache, ttl time.Duration, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Server{
		canvasPath: canvasPath,
		rootDir:    rootDir,
		cache:      c,
		ttl:        ttl,
		logger:     logger,
	}
}

// Handler returns the HTTP handler for the preview server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleCanvas)
	r.Get("/healthz", s.handleHealth)
	return r
}

func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	html, err := s.renderHTML(r)
	if err != nil {
		s.logger.Error("conversion failed", "path", s.canvasPath, "error", err)
		http.Error(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// renderHTML converts the canvas, consulting the cache first. The cache
// key includes the source content hash so stale entries never survive an
// edit to the document.
func (s *Server) renderHTML(r *http.Request) ([]byte, error) {
	raw, err := os.ReadFile(s.canvasPath)
	if err != nil {
		return nil, err
	}
	key := cache.ArtifactKey(s.canvasPath, cache.Hash(raw), "html")

	if data, ok, err := s.cache.Get(r.Context(), key); err != nil {
		s.logger.Warn("cache read failed", "error", err)
	} else if ok {
		s.logger.Debug("cache hit", "key", key)
		return data, nil
	}

	doc, err := canvas.ImportFile(s.canvasPath)
	if err != nil {
		return nil, err
	}

	asm := render.NewAssembler(
		render.WithResolver(assets.NewResolver(doc.Dir, s.rootDir)),
		render.WithLogger(s.logger),
	)
	html, err := asm.AssembleHTML(doc)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(r.Context(), key, html, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
	return html, nil
}

// logRequests logs each request with its duration and status code.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
