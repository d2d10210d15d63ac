package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMaxTestNotFound = errors.New("max test not found")
)

// MaxType selects how a recorded max is converted into a working max.
type MaxType string

const (
	// MaxTypeTrue means the entry is treated as a true 1RM and used as-is.
	MaxTypeTrue MaxType = "true"
	// MaxTypeTraining applies the conservative training-max percentage.
	MaxTypeTraining MaxType = "training"
)

// MaxTest is one recorded strength test for a lift. Immutable once created;
// deleted only by a full data wipe.
type MaxTest struct {
	ID           string    `json:"id" bson:"_id,omitempty"` // ULID
	UserID       string    `json:"user_id" bson:"user_id"`
	Lift         Lift      `json:"lift" bson:"lift"`
	Weight       float64   `json:"weight" bson:"weight"` // lb
	Reps         int       `json:"reps" bson:"reps"`
	TestDate     time.Time `json:"test_date" bson:"test_date"`
	MaxType      MaxType   `json:"max_type" bson:"max_type"`
	EstimatedMax float64   `json:"estimated_max" bson:"estimated_max"`
	WorkingMax   float64   `json:"working_max" bson:"working_max"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type MaxTestRepository interface {
	Create(ctx context.Context, test *MaxTest) error
	// ListByUser returns all tests ordered by test date ascending, with
	// insertion order preserved among equal dates.
	ListByUser(ctx context.Context, userID string) ([]*MaxTest, error)
	ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*MaxTest, error)
	// UpsertByID replaces a whole record by id (sync apply / corrective re-import).
	UpsertByID(ctx context.Context, test *MaxTest) error
	DeleteAllByUser(ctx context.Context, userID string) error
}
