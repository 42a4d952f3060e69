package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-blog-admin/internal/config"
	"go-blog-admin/internal/handler"
	"go-blog-admin/internal/middleware"
	"go-blog-admin/internal/model"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
			auth.With(authMiddleware.RequireAuth).Post("/password", h.Auth.ChangePassword)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)
			users.Use(authMiddleware.RequireRoles(model.RoleAdmin))
			users.Get("/", h.User.List)
			users.Post("/", h.User.Create)
			users.Delete("/{id}", h.User.Delete)
		})
	})

	return r
}
