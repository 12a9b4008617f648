package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sobrinN/DASH.rh/internal"
	"github.com/sobrinN/DASH.rh/internal/auth"
	"github.com/sobrinN/DASH.rh/internal/employee"
	"github.com/sobrinN/DASH.rh/internal/talentrequest"
	"github.com/sobrinN/DASH.rh/internal/transport/middleware"
	"github.com/sobrinN/DASH.rh/internal/transport/swagger"
)

// RegisterAllRoutes wires the API. Auth routes are public; every
// tenant-scoped resource route sits behind the auth middleware, which is the
// single place a company is resolved from a token.
func RegisterAllRoutes(router *chi.Mux, cfg *internal.Config, db *sql.DB, authHandler *auth.Handler, employeeHandler *employee.Handler, talentRequestHandler *talentrequest.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, cfg.Database.DriverOrDefault())

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	if cfg.Observability.Metrics.Enabled {
		router.Use(middleware.Metrics)
		path := cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.Handle(path, promhttp.Handler())
	}

	// OpenAPI spec and Swagger UI at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/signup", authHandler.SignUp)
			sr.Post("/signin", authHandler.SignIn)
			sr.Get("/session", authHandler.Session)
			sr.Post("/signout", authHandler.SignOut)

			sr.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)
				pr.Put("/company/plan", authHandler.UpdateCompanyPlan)
				pr.Put("/company/name", authHandler.UpdateCompanyName)
			})
		})

		// Tenant-scoped resources.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", employeeHandler.ListEmployees)
				er.Post("/", employeeHandler.CreateEmployee)
				er.Put("/{id}", employeeHandler.UpdateEmployee)
				er.Delete("/{id}", employeeHandler.DeleteEmployee)
			})

			pr.Route("/talent-requests", func(tr chi.Router) {
				tr.Get("/", talentRequestHandler.ListTalentRequests)
				tr.Post("/", talentRequestHandler.CreateTalentRequest)
				tr.Put("/{id}", talentRequestHandler.UpdateTalentRequest)
				tr.Delete("/{id}", talentRequestHandler.DeleteTalentRequest)
			})
		})
	})
}
