package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/quillpost/internal/adapters/rest/middleware"
	"github.com/philly/quillpost/internal/platform/logger"
)

// RouterConfig carries the settings the router needs from server config
type RouterConfig struct {
	RequestTimeout time.Duration
}

// NewRouter registers every API route on a chi router
func NewRouter(
	cfg RouterConfig,
	posts *PostsHandler,
	auth *AuthHandler,
	health *HealthHandler,
	metrics *middleware.Metrics,
	log logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.NotFound(middleware.NotFound)
	r.MethodNotAllowed(middleware.MethodNotAllowed)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.ListPosts)
		r.Post("/", posts.CreatePost)
		r.Get("/{id}", posts.GetPost)
		r.Patch("/{id}", posts.UpdatePost)
		r.Delete("/{id}", posts.DeletePost)
	})

	r.Post("/register", auth.Register)
	r.Post("/login", auth.Login)

	r.Get("/health/live", health.GetLiveness)
	r.Get("/health/ready", health.GetReadiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
