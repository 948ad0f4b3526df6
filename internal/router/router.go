package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-blog-api/internal/config"
	"go-blog-api/internal/handler"
	"go-blog-api/internal/middleware"
	"go-blog-api/internal/model"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Post *handler.PostHandler
	Tag  *handler.TagHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(authMiddleware.ResolveUser)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/login", h.Auth.Login)
		auth.Post("/refresh", h.Auth.Refresh)
		auth.With(authMiddleware.RequireUser).Post("/logout", h.Auth.Logout)
		auth.With(authMiddleware.RequireUser).Get("/me", h.Auth.Me)
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/", versionInfo("1.0.0"))

		api.Get("/users", h.User.List)
		api.With(authMiddleware.RequireUser).Post("/users", h.User.Create)
		api.Get("/users/{id}", h.User.Get)
		api.With(authMiddleware.RequireUser).Put("/users/{id}", h.User.Update)
		api.With(authMiddleware.RequireUser).Delete("/users/{id}", h.User.Delete)

		api.Get("/posts", h.Post.List)
		api.With(authMiddleware.RequireUser).Post("/posts", h.Post.Create)
		api.Get("/posts/{id}", h.Post.Get)
		api.With(authMiddleware.RequireUser).Put("/posts/{id}", h.Post.Update)
		api.With(authMiddleware.RequireUser).Delete("/posts/{id}", h.Post.Delete)

		api.Get("/tags", h.Tag.List)
		api.With(authMiddleware.RequireUser).Post("/tags", h.Tag.Create)
		api.Get("/tags/{id}", h.Tag.Get)
		api.With(authMiddleware.RequireUser).Put("/tags/{id}", h.Tag.Update)
		api.With(authMiddleware.RequireUser).Delete("/tags/{id}", h.Tag.Delete)
	})

	// v2 exposes only the users resource; reads require authentication,
	// account creation stays open.
	r.Route("/api/v2", func(api chi.Router) {
		api.With(authMiddleware.RequireUser).Get("/users", h.User.ListV2)
		api.Post("/users", h.User.Create)
		api.With(authMiddleware.RequireUser).Get("/users/{id}", h.User.Get)
		api.With(authMiddleware.RequireUser).Delete("/users/{id}", h.User.Delete)
	})

	return r
}

func versionInfo(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.VersionResponse{Version: version, Status: "active"})
	}
}
