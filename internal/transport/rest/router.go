package rest

import (
	"log/slog"

	"github.com/frahmantamala/talento-plus/internal/auth"
	"github.com/frahmantamala/talento-plus/internal/cv"
	"github.com/frahmantamala/talento-plus/internal/dimension"
	"github.com/frahmantamala/talento-plus/internal/employee"
	"github.com/frahmantamala/talento-plus/internal/importer"
	"github.com/frahmantamala/talento-plus/internal/transport/middleware"
	"github.com/frahmantamala/talento-plus/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

// Handlers groups the HTTP handlers of every domain. A nil handler leaves its
// routes unregistered.
type Handlers struct {
	Auth      *auth.Handler
	Employee  *employee.Handler
	Dimension *dimension.Handler
	Import    *importer.Handler
	CV        *cv.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sqlx.DB, h Handlers, spec *swagger.Spec, allowedOrigins []string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	if spec != nil {
		router.Get("/openapi.json", spec.ServeJSON)
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				if h.Employee != nil {
					sr.Post("/register", h.Employee.CreateEmployee)
				}
			})
		}

		if h.Dimension != nil {
			r.Get("/dimensions/{kind}", h.Dimension.GetDimensions)
		}

		if h.Auth == nil {
			return
		}

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.EmployeeContext)

			if h.Employee != nil {
				pr.Get("/me", h.Employee.GetMe)
			}
			if h.CV != nil {
				pr.Get("/me/cv", h.CV.GetMyCV)
			}

			if h.Employee != nil {
				pr.Route("/employees", func(er chi.Router) {
					er.Get("/", h.Employee.ListEmployees)
					er.Post("/", h.Employee.CreateEmployee)
					er.Get("/stats", h.Employee.GetStats)
					if h.Import != nil {
						er.Post("/import", h.Import.ImportEmployees)
					}
					er.Get("/{id}", h.Employee.GetEmployee)
					er.Put("/{id}", h.Employee.UpdateEmployee)
					er.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			}
		})
	})
}
