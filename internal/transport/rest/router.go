package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-inventory/internal/asset"
	"github.com/frahmantamala/asset-inventory/internal/auth"
	"github.com/frahmantamala/asset-inventory/internal/category"
	"github.com/frahmantamala/asset-inventory/internal/dashboard"
	"github.com/frahmantamala/asset-inventory/internal/history"
	"github.com/frahmantamala/asset-inventory/internal/reference"
	"github.com/frahmantamala/asset-inventory/internal/transport/middleware"
	"github.com/frahmantamala/asset-inventory/internal/transport/swagger"
	"github.com/frahmantamala/asset-inventory/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth      *auth.Handler
	Asset     *asset.Handler
	Category  *category.Handler
	Reference *reference.Handler
	User      *user.Handler
	History   *history.Handler
	Dashboard *dashboard.Handler
}

// RegisterAllRoutes wires the whole API under /api/v1. Everything except
// login, refresh and the health probes sits behind the auth middleware; user
// management and the audit log are additionally admin only.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/ping", healthHandler.Ping)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/me", h.Auth.CurrentUser)
			pr.Get("/dashboard", h.Dashboard.GetStats)

			pr.Route("/assets", func(ar chi.Router) {
				ar.Get("/", h.Asset.ListAssets)
				ar.Get("/options", h.Asset.GetFilterOptions)
				ar.Get("/{id}", h.Asset.GetAsset)
				ar.Post("/", h.Asset.CreateAsset)
				ar.Patch("/{id}", h.Asset.UpdateAsset)
				ar.Delete("/{id}", h.Asset.DeleteAsset)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.ListCategories)
				cr.Get("/all", h.Category.ListAllCategories)
				cr.Get("/{id}", h.Category.GetCategory)
				cr.Post("/", h.Category.CreateCategory)
				cr.Put("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
				cr.Post("/recount", h.Category.RecountCategories)
			})

			for _, kind := range reference.Kinds() {
				bound := h.Reference.ForKind(kind)
				pr.Route("/"+string(kind)+"s", func(rr chi.Router) {
					rr.Get("/", bound.List)
					rr.Get("/all", bound.ListAll)
					rr.Get("/{id}", bound.Get)
					rr.Post("/", bound.Create)
					rr.Put("/{id}", bound.Update)
					rr.Delete("/{id}", bound.Delete)
				})
			}

			pr.Group(func(admin chi.Router) {
				admin.Use(h.Auth.RequireAdmin)

				admin.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Get("/all", h.User.ListAllUsers)
					ur.Get("/{id}", h.User.GetUser)
					ur.Post("/", h.User.CreateUser)
					ur.Put("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
				})

				admin.Get("/history", h.History.ListHistory)
			})
		})
	})
}
