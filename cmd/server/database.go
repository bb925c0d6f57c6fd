package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/platform/mongodb"
)

// setupAppDatabase connects to MongoDB and prepares the task collection.
// Returns the connection and the task store built on it.
func setupAppDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*mongodb.DB, *mongodb.MongoTaskStore, error) {
	db, err := mongodb.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}

	taskStore := mongodb.NewMongoTaskStore(db, logger)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	if err := taskStore.EnsureIndexes(indexCtx); err != nil {
		closeDatabase(db, cfg.Database.ConnectTimeout, logger)
		return nil, nil, fmt.Errorf("failed to ensure task indexes: %w", err)
	}

	logger.Info("Database connection established")
	return db, taskStore, nil
}

// closeDatabase disconnects db, giving in-flight operations up to timeout.
func closeDatabase(db *mongodb.DB, timeout time.Duration, logger *slog.Logger) {
	if db == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.Close(ctx); err != nil {
		logger.Error("Error closing database connection", "error", err)
	}
}
