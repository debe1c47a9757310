package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/Munionn/Airport-sub002/internal/config"
	"github.com/Munionn/Airport-sub002/internal/http/handlers"
	"github.com/Munionn/Airport-sub002/internal/http/respond"
	"github.com/Munionn/Airport-sub002/internal/middleware"
	"github.com/Munionn/Airport-sub002/internal/service"
	"github.com/Munionn/Airport-sub002/internal/storage"
)

// Store is the persistence surface the server needs.
type Store interface {
	storage.UserStore
	storage.CrewStore
	storage.RouteStore
	handlers.Pinger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up services, middleware and routes, and returns a ready server.
func New(cfg config.Config, store Store, log logrus.FieldLogger) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the chi router serving the whole API.
func NewRouter(cfg config.Config, store Store, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(chimw.Timeout(25 * time.Second))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	handlers.NewHealthHandler(time.Now(), store, log).Register(r)
	handlers.NewAuthHandler(service.NewAuth(store, log), log).Register(r)
	handlers.NewCrewHandler(service.NewCrew(store, store, log), log).Register(r)
	handlers.NewRouteHandler(service.NewRoutes(store, log), log).Register(r)

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
