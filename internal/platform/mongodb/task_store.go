package mongodb

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TasksCollection is the collection holding task documents.
const TasksCollection = "tasks"

const storeComponent = "task_store"

// taskDocument is the stored shape of a task.
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     time.Time          `bson:"due_date"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
}

// MongoTaskStore implements the store.TaskStore interface using MongoDB.
type MongoTaskStore struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewMongoTaskStore creates a new MongoDB implementation of the TaskStore interface.
// If logger is nil, a default logger is used.
func NewMongoTaskStore(db *DB, logger *slog.Logger) *MongoTaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MongoTaskStore{
		coll:   db.Collection(TasksCollection),
		logger: logger.With(slog.String("component", storeComponent)),
	}
}

// Ensure MongoTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MongoTaskStore)(nil)

// EnsureIndexes creates the secondary indexes used by filtered listings.
// Creating an index that already exists is a no-op.
func (s *MongoTaskStore) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
	}
	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return store.NewStoreError("task", "ensure_indexes", "failed to create indexes", MapError(err))
	}
	return nil
}

// Create implements store.TaskStore.Create.
// A fresh ObjectID is generated for every insert.
func (s *MongoTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, storeComponent)

	doc := toDocument(task)
	doc.ID = primitive.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		log.Error("failed to insert task", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Debug("task created", slog.String("task_id", doc.ID.Hex()))
	return toDomain(doc), nil
}

// List implements store.TaskStore.List.
// Results are sorted by _id, which follows insertion order for ObjectIDs.
func (s *MongoTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextWithComponent(ctx, s.logger, storeComponent)

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to query tasks", MapError(err))
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error("failed to decode tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to decode tasks", MapError(err))
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, toDomain(doc))
	}
	return tasks, nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *MongoTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseObjectID("get", id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, s.wrapLookupError(ctx, "get", "failed to get task", id, err)
	}
	return toDomain(doc), nil
}

// Update implements store.TaskStore.Update.
// Only fields set in patch are written; an empty patch returns the current task.
func (s *MongoTaskStore) Update(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	oid, err := parseObjectID("update", id)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc taskDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, buildUpdate(patch), opts).Decode(&doc)
	if err != nil {
		return nil, s.wrapLookupError(ctx, "update", "failed to update task", id, err)
	}

	logger.FromContextWithComponent(ctx, s.logger, storeComponent).Debug("task updated", slog.String("task_id", id))
	return toDomain(doc), nil
}

// Delete implements store.TaskStore.Delete.
func (s *MongoTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := parseObjectID("delete", id)
	if err != nil {
		return nil, err
	}

	var doc taskDocument
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		return nil, s.wrapLookupError(ctx, "delete", "failed to delete task", id, err)
	}

	logger.FromContextWithComponent(ctx, s.logger, storeComponent).Debug("task deleted", slog.String("task_id", id))
	return toDomain(doc), nil
}

// wrapLookupError maps a single-document error, returning not-found errors bare
// and logging everything else.
func (s *MongoTaskStore) wrapLookupError(
	ctx context.Context,
	operation, message, id string,
	err error,
) error {
	log := logger.FromContextWithComponent(ctx, s.logger, storeComponent)
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		log.Debug("task not found",
			slog.String("task_id", id),
			slog.String("operation", operation))
		return mapped
	}

	log.Error(message,
		slog.String("task_id", id),
		slog.String("error", err.Error()))
	return store.NewStoreError("task", operation, message, mapped)
}

// parseObjectID converts a hex id, rejecting anything MongoDB could not have issued.
func parseObjectID(operation, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.NewStoreError(
			"task",
			operation,
			"invalid task id "+quoteID(id),
			store.ErrInvalidID,
		)
	}
	return oid, nil
}

// quoteID truncates ids so that arbitrary path input cannot flood the logs.
func quoteID(id string) string {
	const maxLen = 64
	if len(id) > maxLen {
		id = id[:maxLen] + "..."
	}
	return `"` + id + `"`
}

// buildFilter translates a TaskFilter into a MongoDB query document.
func buildFilter(filter store.TaskFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Priority != "" {
		query["priority"] = string(filter.Priority)
	}
	return query
}

// buildUpdate translates a TaskPatch into a $set update document.
func buildUpdate(patch domain.TaskPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		set["due_date"] = patch.DueDate.UTC()
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	return bson.M{"$set": set}
}

func toDocument(task *domain.Task) taskDocument {
	return taskDocument{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate.UTC(),
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
}

func toDomain(doc taskDocument) *domain.Task {
	return &domain.Task{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		DueDate:     doc.DueDate.UTC(),
		Priority:    domain.Priority(doc.Priority),
		Status:      domain.Status(doc.Status),
	}
}
