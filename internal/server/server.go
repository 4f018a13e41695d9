// Package server implements the kinetree pose service, an HTTP API for
// storing robot models and computing forward kinematics over them.
//
// Models are persisted as documents in a store.Store and rebuilt into
// link trees per request, so no mutable tree state is shared between
// handlers. Pose results can be served from a cache.Cache keyed by the
// model content and the requested joint angles.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/kinetree/kinetree/pkg/cache"
	"github.com/kinetree/kinetree/pkg/store"
)

// poseCacheTTL bounds how long a cached pose result is served before it
// is recomputed.
const poseCacheTTL = time.Hour

// Server serves the pose service API.
type Server struct {
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New creates a server backed by the given store and cache. A nil cache
// disables caching.
func New(st store.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, cache: c, logger: logger}
}

// Handler returns the routed HTTP handler for the service.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/models", func(r chi.Router) {
		r.Get("/", s.handleListModels)
		r.Put("/{name}", s.handlePutModel)
		r.Get("/{name}", s.handleGetModel)
		r.Delete("/{name}", s.handleDeleteModel)
		r.Post("/{name}/fk", s.handleForwardKinematics)
		r.Get("/{name}/chains", s.handleChains)
	})
	return r
}
