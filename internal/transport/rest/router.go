package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/kprasanna/staff-management/internal/auth"
	"github.com/kprasanna/staff-management/internal/salarycategory"
	"github.com/kprasanna/staff-management/internal/staff"
	"github.com/kprasanna/staff-management/internal/transport/middleware"
	"github.com/kprasanna/staff-management/internal/transport/swagger"
	"github.com/kprasanna/staff-management/internal/user"
)

// RegisterAllRoutes wires the auth endpoints (mounted at the root under
// their historical function names) and the admin CRUD API under /api/v1.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, userHandler *user.Handler, staffHandler *staff.Handler, categoryHandler *salarycategory.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and Swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Auth endpoints keep their serverless-era paths so existing clients
	// need no changes.
	router.Post("/auth-login", authHandler.Login)
	router.Group(func(sr chi.Router) {
		sr.Use(authHandler.SessionMiddleware)
		sr.Post("/auth-create-user", userHandler.CreateUser)
		sr.Post("/auth-update-password", userHandler.UpdatePassword)
		sr.Post("/auth-logout", authHandler.Logout)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Protected admin API
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.SessionMiddleware)

			pr.Get("/users", userHandler.ListUsers)
			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireAdmin)
				ar.Patch("/users/{id}", userHandler.UpdateUser)
			})

			pr.Route("/staff", func(sr chi.Router) {
				sr.Get("/", staffHandler.ListStaff)
				sr.Post("/", staffHandler.CreateStaff)
				sr.Get("/{id}", staffHandler.GetStaff)
				sr.Patch("/{id}", staffHandler.UpdateStaff)
				sr.Delete("/{id}", staffHandler.DeleteStaff)
			})

			pr.Route("/salary-categories", func(cr chi.Router) {
				cr.Get("/", categoryHandler.GetCategories)
				cr.Post("/", categoryHandler.CreateCategory)
				cr.Delete("/{id}", categoryHandler.DeleteCategory)
			})
		})
	})
}
