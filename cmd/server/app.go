package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskify-api/internal/api"
	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/platform/mongodb"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/store"
)

// pinger reports whether a backing service is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the store is not backed by MongoDB, as in tests.
	db *mongodb.DB

	// health is consulted by /health; nil means there is nothing to ping.
	health pinger

	taskStore   store.TaskStore
	taskService service.TaskService
	docsHandler *api.DocsHandler
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection and store must be established beforehand.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *mongodb.DB,
	taskStore store.TaskStore,
) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		taskStore: taskStore,
	}
	if db != nil {
		app.health = db
	}

	var err error
	app.taskService, err = service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.docsHandler, err = api.NewDocsHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to load API documentation: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	closeDatabase(app.db, app.config.Server.ShutdownTimeout, app.logger)
	app.logger.Info("Application shutdown completed")
}
