package web

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

// NewRouter registers the page and form routes
func NewRouter(cfg RouterConfig, h *Handler, metrics *middleware.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(Static()))))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", h.Home)
	r.Get("/posts", h.Posts)
	r.Get("/new", h.NewPost)
	r.Get("/edit/{id}", h.EditPost)

	r.Post("/api/posts", h.CreatePost)
	r.Post("/api/posts/{id}", h.UpdatePost)
	r.Get("/api/posts/delete/{id}", h.DeletePost)

	r.Get("/login", h.LoginPage)
	r.Get("/register", h.RegisterPage)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	return r
}
