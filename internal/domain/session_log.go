package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionLogNotFound = errors.New("session log not found")
)

// SessionStatus classifies how much of a session was completed.
type SessionStatus string

const (
	SessionCompleted SessionStatus = "completed"
	SessionPartial   SessionStatus = "partial"
	SessionSkipped   SessionStatus = "skipped"
)

// SetResult is one completed set inside a SessionLog.
type SetResult struct {
	SetNumber   int       `json:"set_number" bson:"set_number"` // 1-based
	TargetReps  int       `json:"target_reps" bson:"target_reps"`
	ActualReps  int       `json:"actual_reps" bson:"actual_reps"`
	CompletedAt time.Time `json:"completed_at" bson:"completed_at"`
}

// ExerciseLog records the sets actually performed for one exercise, the
// resolved actual weight, and the exercise's wall-clock duration.
type ExerciseLog struct {
	Lift            Lift        `json:"lift" bson:"lift"`
	Name            string      `json:"name" bson:"name"`
	Weight          float64     `json:"weight" bson:"weight"`
	Sets            []SetResult `json:"sets" bson:"sets"`
	DurationSeconds int         `json:"duration_seconds" bson:"duration_seconds"`
}

// SessionLog is the immutable historical record of one session instance,
// written exactly once when the session ends.
type SessionLog struct {
	ID              string        `json:"id" bson:"_id,omitempty"` // ULID
	UserID          string        `json:"user_id" bson:"user_id"`
	TemplateID      TemplateID    `json:"template_id" bson:"template_id"`
	Week            int           `json:"week" bson:"week"`
	Session         int           `json:"session" bson:"session"`
	Status          SessionStatus `json:"status" bson:"status"`
	Exercises       []ExerciseLog `json:"exercises" bson:"exercises"`
	StartedAt       time.Time     `json:"started_at" bson:"started_at"`
	CompletedAt     time.Time     `json:"completed_at" bson:"completed_at"`
	DurationSeconds int           `json:"duration_seconds" bson:"duration_seconds"`
	CreatedAt       time.Time     `json:"created_at" bson:"created_at"`
}

type SessionLogRepository interface {
	Create(ctx context.Context, log *SessionLog) error
	ListByUser(ctx context.Context, userID string) ([]*SessionLog, error)
	ListUpdatedSince(ctx context.Context, userID string, since time.Time) ([]*SessionLog, error)
	UpsertByID(ctx context.Context, log *SessionLog) error
	DeleteAllByUser(ctx context.Context, userID string) error
}
