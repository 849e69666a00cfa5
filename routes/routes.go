package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/upb/authgate/app"
	"github.com/upb/authgate/handlers"
	authmw "github.com/upb/authgate/middleware"
	"github.com/upb/authgate/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(authmw.UsageTracker(deps.Usage))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public status, reports the caller identity when one is presented
		r.With(deps.AuthMiddleware.OptionalAuth).Get("/status", handlers.StatusHandler(deps))

		// Caller introspection
		r.Route("/me", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Get("/", handlers.CurrentIdentityHandler(deps))
			r.Get("/roles", handlers.CurrentRolesHandler(deps))
		})

		// Authorization probe
		r.Route("/access", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/check", handlers.AccessCheckHandler(deps))
		})

		// Usage reports (admins and analysts)
		r.Route("/reports", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAnyRole("org:admin", "org:analyst"))
			r.Get("/usage", handlers.UsageReportHandler(deps))
		})

		// Administration (require admin role)
		r.Route("/admin", func(r chi.Router) {
			r.With(deps.AuthMiddleware.RequireRole("org:admin")).
				Get("/config", handlers.AdminConfigHandler(deps))
			r.With(deps.AuthMiddleware.RequireAllRoles("org:admin", "org:security")).
				Post("/keys/rotate", handlers.RotateKeysHandler(deps))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, "endpoint not found")
	})

	return r
}
