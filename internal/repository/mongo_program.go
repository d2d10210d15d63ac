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

// MongoProgramRepository implements domain.ActiveProgramRepository. At most
// one active program per user, keyed by user id.
type MongoProgramRepository struct {
	collection *mongo.Collection
}

func NewMongoProgramRepository(db *mongo.Database) *MongoProgramRepository {
	return &MongoProgramRepository{collection: db.Collection("active_programs")}
}

func (r *MongoProgramRepository) Get(ctx context.Context, userID string) (*domain.ActiveProgram, error) {
	var program domain.ActiveProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&program)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to get active program: %w", err)
	}
	return &program, nil
}

func (r *MongoProgramRepository) Upsert(ctx context.Context, program *domain.ActiveProgram) error {
	program.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": program.UserID}, program, opts); err != nil {
		return fmt.Errorf("failed to upsert active program: %w", err)
	}
	return nil
}

func (r *MongoProgramRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to delete active program: %w", err)
	}
	return nil
}
