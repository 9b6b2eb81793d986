package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/showtrack/showtrack-go/internal/middleware"
	"github.com/showtrack/showtrack-go/internal/service"
)

const greeting = "Hello from showtrack"

// RouterConfig holds what NewRouter needs to assemble the HTTP surface.
type RouterConfig struct {
	Auth      *service.AuthService
	Watchlist *service.WatchlistService
	Logger    *slog.Logger

	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry

	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires every route with its middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	users := NewUserHandler(cfg.Auth)
	watchlist := NewWatchlistHandler(cfg.Watchlist)
	metrics := middleware.NewMetrics(cfg.Registry)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(greeting))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	r.Post("/users", users.HandleRegister)
	r.Post("/sessions", users.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(cfg.Auth))

		r.Post("/users/{userId}", users.HandleWhoAmI)

		r.Route("/users/{userId}/watchlist", func(r chi.Router) {
			r.Use(middleware.RequireSelf("userId"))
			r.Put("/", watchlist.HandleAddShow)
			r.Get("/", watchlist.HandleGetWatchlist)
			r.Delete("/", watchlist.HandleRemoveShow)
		})
	})

	return r
}
