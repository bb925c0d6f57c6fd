package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/taskify-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskify-api/internal/api/middleware"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
)

const healthPingTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{apiMiddleware.TraceIDHeader},
		MaxAge:         300,
	}))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/tasks", taskHandler.Routes())
		r.Mount("/docs", app.docsHandler.Routes())
	})

	r.Get("/health", app.healthCheck)

	return r
}

// healthCheck answers 200 "OK", or 503 when the database does not answer a ping.
func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, "OK"
	if app.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := app.health.Ping(ctx); err != nil {
			logger.FromContextOrDefault(r.Context(), app.logger).Error("Health check ping failed", "error", err)
			status, body = http.StatusServiceUnavailable, "Database unavailable"
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
