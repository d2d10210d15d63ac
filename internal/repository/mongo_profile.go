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

// MongoProfileRepository implements domain.ProfileRepository. One document
// per user, keyed by user id.
type MongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{collection: db.Collection("profiles")}
}

// Get returns the stored profile, or defaults when the user has never saved
// one. Stored inventories are normalized so old documents pick up new denoms.
func (r *MongoProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.DefaultProfile(userID), nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.BarbellPlates == nil {
		profile.BarbellPlates = domain.DefaultBarbellInventory()
	}
	if profile.BeltPlates == nil {
		profile.BeltPlates = domain.DefaultBeltInventory()
	}
	profile.BarbellPlates.Normalize()
	profile.BeltPlates.Normalize()
	return &profile, nil
}

func (r *MongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, opts); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
