package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/redact"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB is an open connection to a MongoDB database.
// It is safe for concurrent use and must be closed with Close.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect opens a client for cfg.URI and verifies it by pinging the primary.
// The whole handshake is bounded by cfg.ConnectTimeout.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		// Best effort; the ping failure is what the caller needs to see.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb",
		"uri", redact.String(cfg.URI),
		"database", cfg.Name)

	return &DB{
		client: client,
		db:     client.Database(cfg.Name),
		logger: logger,
	}, nil
}

// Database returns the underlying database handle.
func (d *DB) Database() *mongo.Database {
	return d.db
}

// Collection returns a handle for the named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping checks that the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections up to ctx's deadline.
func (d *DB) Close(ctx context.Context) error {
	if err := d.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	d.logger.Info("disconnected from mongodb")
	return nil
}
