// Package assignmenttracker предоставляет маршруты для основного приложения.
package assignmenttracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/create"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/health"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/list"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/read"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/remove"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/stats"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/toggle"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/assignment/update"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/auth/login"
	"github.com/homeworkhub/assignment-tracker/internal/http/handlers/auth/register"
	"github.com/homeworkhub/assignment-tracker/internal/http/middlewarectx"
	assignmentservice "github.com/homeworkhub/assignment-tracker/internal/services/assignment"
	authservice "github.com/homeworkhub/assignment-tracker/internal/services/auth"
	"github.com/homeworkhub/assignment-tracker/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, assignmentService *assignmentservice.AssignmentService, db *storage.Storage) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/assignments", create.New(logger, assignmentService).ServeHTTP)
			r.Get("/assignments", list.New(logger, assignmentService).ServeHTTP)
			r.Get("/assignments/stats", stats.New(logger, assignmentService).ServeHTTP)
			r.Get("/assignments/{id}", read.New(logger, assignmentService).ServeHTTP)
			r.Put("/assignments/{id}", update.New(logger, assignmentService).ServeHTTP)
			r.Delete("/assignments/{id}", remove.New(logger, assignmentService).ServeHTTP)
			r.Patch("/assignments/{id}/toggle", toggle.New(logger, assignmentService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
