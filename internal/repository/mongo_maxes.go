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

// MongoMaxTestRepository implements domain.MaxTestRepository. Max tests carry
// client-generated ULIDs as _id so sync can reconcile whole records by id.
type MongoMaxTestRepository struct {
	collection *mongo.Collection
}

func NewMongoMaxTestRepository(db *mongo.Database) *MongoMaxTestRepository {
	coll := db.Collection("max_tests")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "test_date", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: 1}}},
	})

	return &MongoMaxTestRepository{collection: coll}
}

func (r *MongoMaxTestRepository) Create(ctx context.Context, test *domain.MaxTest) error {
	test.UpdatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, test); err != nil {
		return fmt.Errorf("failed to create max test: %w", err)
	}
	return nil
}

// ListByUser returns all tests ordered by test date ascending. ULIDs are
// monotonic per timestamp, so the _id tiebreaker preserves insertion order
// among equal dates.
func (r *MongoMaxTestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.MaxTest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "test_date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list max tests: %w", err)
	}
	defer cursor.Close(ctx)

	var tests []*domain.MaxTest
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *MongoMaxTestRepository) ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*domain.MaxTest, error) {
	filter := bson.M{
		"user_id":    userID,
		"updated_at": bson.M{"$gt": since},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed max tests: %w", err)
	}
	defer cursor.Close(ctx)

	var tests []*domain.MaxTest
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (r *MongoMaxTestRepository) UpsertByID(ctx context.Context, test *domain.MaxTest) error {
	test.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": test.ID}, test, opts); err != nil {
		return fmt.Errorf("failed to upsert max test: %w", err)
	}
	return nil
}

func (r *MongoMaxTestRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete max tests: %w", err)
	}
	return nil
}
