package rest

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/voltmover/crm/internal/auth"
	"github.com/voltmover/crm/internal/contact"
	"github.com/voltmover/crm/internal/dashboard"
	"github.com/voltmover/crm/internal/deal"
	"github.com/voltmover/crm/internal/task"
	"github.com/voltmover/crm/internal/transport/middleware"
	"github.com/voltmover/crm/internal/transport/swagger"
	"github.com/voltmover/crm/internal/user"
)

type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Contact   *contact.Handler
	Deal      *deal.Handler
	Task      *task.Handler
	Dashboard *dashboard.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, allowedOrigin string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigin))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// API root greeting
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "VoltMover CRM API v2.1.0"})
	})

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.Middleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", handlers.User.Create)
				ur.Get("/", handlers.User.List)
				ur.Get("/me", handlers.User.Me)
				ur.Get("/{id}", handlers.User.Get)
				ur.Put("/{id}", handlers.User.Update)
				ur.Delete("/{id}", handlers.User.Delete)
			})

			pr.Route("/contacts", func(cr chi.Router) {
				cr.Post("/", handlers.Contact.Create)
				cr.Get("/", handlers.Contact.List)
				cr.Get("/{id}", handlers.Contact.Get)
				cr.Put("/{id}", handlers.Contact.Update)
				cr.Delete("/{id}", handlers.Contact.Delete)
			})

			pr.Route("/deals", func(dr chi.Router) {
				dr.Post("/", handlers.Deal.Create)
				dr.Get("/", handlers.Deal.List)
				dr.Get("/pipeline/stats", handlers.Deal.PipelineStats)
				dr.Get("/{id}", handlers.Deal.Get)
				dr.Put("/{id}", handlers.Deal.Update)
				dr.Delete("/{id}", handlers.Deal.Delete)
			})

			pr.Route("/tasks", func(tr chi.Router) {
				tr.Post("/", handlers.Task.Create)
				tr.Get("/", handlers.Task.List)
				tr.Get("/my", handlers.Task.My)
				tr.Get("/{id}", handlers.Task.Get)
				tr.Put("/{id}", handlers.Task.Update)
				tr.Delete("/{id}", handlers.Task.Delete)
			})

			pr.Route("/dashboard", func(dbr chi.Router) {
				dbr.Get("/stats", handlers.Dashboard.Stats)
				dbr.Get("/deals-by-stage", handlers.Dashboard.DealsByStage)
				dbr.Get("/recent-activities", handlers.Dashboard.RecentActivities)
			})
		})
	})
}
