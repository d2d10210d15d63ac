package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionLogRepository implements domain.SessionLogRepository. Logs are
// append-only history keyed by ULID, written once when a session ends.
type MongoSessionLogRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionLogRepository(db *mongo.Database) *MongoSessionLogRepository {
	coll := db.Collection("session_logs")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})

	return &MongoSessionLogRepository{collection: coll}
}

func (r *MongoSessionLogRepository) Create(ctx context.Context, log *domain.SessionLog) error {
	if _, err := r.collection.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("failed to create session log: %w", err)
	}
	return nil
}

// ListByUser returns the full history, most recent first.
func (r *MongoSessionLogRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SessionLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list session logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*domain.SessionLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *MongoSessionLogRepository) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.SessionLog, error) {
	filter := bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gt": since},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed session logs: %w", err)
	}
	defer cursor.Close(ctx)

	var logs []*domain.SessionLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *MongoSessionLogRepository) UpsertByID(ctx context.Context, log *domain.SessionLog) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": log.ID}, log, opts); err != nil {
		return fmt.Errorf("failed to upsert session log: %w", err)
	}
	return nil
}

func (r *MongoSessionLogRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete session logs: %w", err)
	}
	return nil
}
