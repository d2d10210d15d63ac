package repository

import (
	"context"
	"fmt"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActiveSessionRepository implements domain.ActiveSessionRepository.
// At most one live session per user; the whole state document is replaced on
// every mutation so a restarted process can pick up exactly where it was.
type MongoActiveSessionRepository struct {
	collection *mongo.Collection
}

func NewMongoActiveSessionRepository(db *mongo.Database) *MongoActiveSessionRepository {
	return &MongoActiveSessionRepository{collection: db.Collection("active_sessions")}
}

func (r *MongoActiveSessionRepository) Get(ctx context.Context, userID string) (*domain.ActiveSessionState, error) {
	var state domain.ActiveSessionState
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return &state, nil
}

func (r *MongoActiveSessionRepository) Save(ctx context.Context, state *domain.ActiveSessionState) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": state.UserID}, state, opts); err != nil {
		return fmt.Errorf("failed to save active session: %w", err)
	}
	return nil
}

func (r *MongoActiveSessionRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to delete active session: %w", err)
	}
	return nil
}
