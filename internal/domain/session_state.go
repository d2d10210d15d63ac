package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNoActiveSession = errors.New("no active session")
)

// TimerPhase says what the live session timer is currently measuring.
type TimerPhase string

const (
	PhaseExercise TimerPhase = "exercise"
	PhaseRest     TimerPhase = "rest"
)

// TimerState tracks the running rest or exercise timer for the live session.
// FiredMilestones and Overtime persist which tick events have already fired so
// each fires at most once per rest period, even across a crash restore.
type TimerState struct {
	Phase           TimerPhase `json:"phase" bson:"phase"`
	StartedAt       time.Time  `json:"started_at" bson:"started_at"`
	RestSeconds     int        `json:"rest_seconds" bson:"rest_seconds"`
	FiredMilestones []int      `json:"fired_milestones,omitempty" bson:"fired_milestones,omitempty"`
	Overtime        bool       `json:"overtime" bson:"overtime"`
}

// SessionSet is one planned set in the flat Set list of a live session.
type SessionSet struct {
	ExerciseIndex int        `json:"exercise_index" bson:"exercise_index"`
	SetNumber     int        `json:"set_number" bson:"set_number"` // 1-based
	TargetReps    int        `json:"target_reps" bson:"target_reps"`
	ActualReps    *int       `json:"actual_reps" bson:"actual_reps"`
	Completed     bool       `json:"completed" bson:"completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// SessionExercise is one exercise of the live session, frozen from the
// compiled schedule at session start.
type SessionExercise struct {
	Lift           Lift     `json:"lift" bson:"lift"`
	Name           string   `json:"name" bson:"name"`
	TargetWeight   float64  `json:"target_weight" bson:"target_weight"`
	Percentage     float64  `json:"percentage" bson:"percentage"`
	RepPlan        []int    `json:"rep_plan" bson:"rep_plan"` // per-set target reps, len == max sets
	MinSets        int      `json:"min_sets" bson:"min_sets"`
	Bodyweight     bool     `json:"bodyweight" bson:"bodyweight"`
	WeightOverride *float64 `json:"weight_override,omitempty" bson:"weight_override,omitempty"`
}

// UndoRef marks the most recently completed set while its undo window is open.
type UndoRef struct {
	ExerciseIndex int       `json:"exercise_index" bson:"exercise_index"`
	SetNumber     int       `json:"set_number" bson:"set_number"`
	CompletedAt   time.Time `json:"completed_at" bson:"completed_at"`
}

// ActiveSessionState is the live, in-progress execution of one compiled
// session. Persisted on every mutation so it survives a process restart.
type ActiveSessionState struct {
	UserID          string            `json:"user_id" bson:"_id"`
	TemplateID      TemplateID        `json:"template_id" bson:"template_id"`
	Week            int               `json:"week" bson:"week"`
	Session         int               `json:"session" bson:"session"`
	ScheduleHash    string            `json:"schedule_hash" bson:"schedule_hash"`
	Exercises       []SessionExercise `json:"exercises" bson:"exercises"`
	Sets            []SessionSet      `json:"sets" bson:"sets"`
	CurrentExercise int               `json:"current_exercise" bson:"current_exercise"`
	Timer           *TimerState       `json:"timer,omitempty" bson:"timer,omitempty"`
	// ExerciseStarts[i] is the first-visit instant for exercise i; zero means
	// not yet visited. Duration accounting runs first visit to next first visit.
	ExerciseStarts []time.Time `json:"exercise_starts" bson:"exercise_starts"`
	Undo           *UndoRef    `json:"undo,omitempty" bson:"undo,omitempty"`
	StartedAt      time.Time   `json:"started_at" bson:"started_at"`
	UpdatedAt      time.Time   `json:"updated_at" bson:"updated_at"`
}

// SetsFor returns the indexes into Sets belonging to exercise i, in order.
func (s *ActiveSessionState) SetsFor(i int) []int {
	var idx []int
	for j, set := range s.Sets {
		if set.ExerciseIndex == i {
			idx = append(idx, j)
		}
	}
	return idx
}

// CompletedCount returns how many sets of exercise i are completed.
func (s *ActiveSessionState) CompletedCount(i int) int {
	n := 0
	for _, set := range s.Sets {
		if set.ExerciseIndex == i && set.Completed {
			n++
		}
	}
	return n
}

// ExerciseDone reports whether every set of exercise i is completed.
func (s *ActiveSessionState) ExerciseDone(i int) bool {
	any := false
	for _, set := range s.Sets {
		if set.ExerciseIndex == i {
			any = true
			if !set.Completed {
				return false
			}
		}
	}
	return any
}

type ActiveSessionRepository interface {
	Get(ctx context.Context, userID string) (*ActiveSessionState, error)
	Save(ctx context.Context, state *ActiveSessionState) error
	Delete(ctx context.Context, userID string) error
}
