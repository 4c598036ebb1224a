// Package server exposes the analyzer over HTTP.
//
// The API is stateless apart from the optional report cache and archive:
// every analysis endpoint takes a complete facts document in the request
// body and computes from scratch (or serves the cached report for an
// identical document).
//
// # Endpoints
//
//	POST /api/v1/analyze      full analysis report
//	POST /api/v1/impact       blast radius for one service
//	POST /api/v1/shared       common ancestors for a set of services
//	GET  /api/v1/reports/{id} previously archived report
//	GET  /healthz             liveness probe
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/store"
)

// Options configures a Server. Cache and Store may be nil; a nil cache
// disables report caching and a nil store disables the report archive.
type Options struct {
	Cache  cache.Cache
	Store  store.ReportStore
	Logger *log.Logger
	TTL    time.Duration // cache TTL, zero means cache.DefaultTTL
}

// Server handles API requests. Create one with New and mount Router on an
// http.Server.
type Server struct {
	cache  cache.Cache
	store  store.ReportStore
	logger *log.Logger
	ttl    time.Duration
}

// New creates a Server from opts, filling in defaults for nil fields.
func New(opts Options) *Server {
	s := &Server{
		cache:  opts.Cache,
		store:  opts.Store,
		logger: opts.Logger,
		ttl:    opts.TTL,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.ttl <= 0 {
		s.ttl = cache.DefaultTTL
	}
	return s
}

// Router builds the chi route tree with standard middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/impact", s.handleImpact)
		r.Post("/shared", s.handleShared)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	return r
}

// logRequests logs one line per request through the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
