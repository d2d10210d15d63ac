// Package runtime executes one compiled session interactively: set
// completion, rest timing, undo, manual navigation, delayed auto-advance,
// staleness recovery, and the final session log.
package runtime

import (
	"crypto/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/schedule"
)

func newLogID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}

// NewSessionState materializes the live state for one compiled session. The
// flat Set list is sized to the week's maximum sets per exercise, target reps
// seeded from the per-set rep plan. Exercise 0 is visited immediately.
func NewSessionState(userID string, cs *schedule.ComputedSchedule, week, session int, now time.Time) (*domain.ActiveSessionState, error) {
	compiled, err := cs.Session(week, session)
	if err != nil {
		return nil, err
	}

	st := &domain.ActiveSessionState{
		UserID:       userID,
		TemplateID:   cs.TemplateID,
		Week:         week,
		Session:      session,
		ScheduleHash: cs.SourceHash,
		StartedAt:    now,
		UpdatedAt:    now,
	}

	for i, ex := range compiled.Exercises {
		st.Exercises = append(st.Exercises, domain.SessionExercise{
			Lift:         ex.Lift,
			Name:         ex.Name,
			TargetWeight: ex.TargetWeight,
			Percentage:   ex.Percentage,
			RepPlan:      ex.RepPlan,
			MinSets:      ex.SetsMin,
			Bodyweight:   ex.Bodyweight,
		})
		for setNo, reps := range ex.RepPlan {
			st.Sets = append(st.Sets, domain.SessionSet{
				ExerciseIndex: i,
				SetNumber:     setNo + 1,
				TargetReps:    reps,
			})
		}
	}

	st.ExerciseStarts = make([]time.Time, len(st.Exercises))
	if len(st.ExerciseStarts) > 0 {
		st.ExerciseStarts[0] = now
	}
	st.Timer = &domain.TimerState{Phase: domain.PhaseExercise, StartedAt: now}
	return st, nil
}

// BuildLog assembles the immutable SessionLog from a live state. Only
// completed sets are logged; exercise duration runs from its first visit to
// the next visited exercise's first visit, or to session end for the last.
func BuildLog(st *domain.ActiveSessionState, id string, end time.Time) *domain.SessionLog {
	log := &domain.SessionLog{
		ID:              id,
		UserID:          st.UserID,
		TemplateID:      st.TemplateID,
		Week:            st.Week,
		Session:         st.Session,
		StartedAt:       st.StartedAt,
		CompletedAt:     end,
		DurationSeconds: int(end.Sub(st.StartedAt).Seconds()),
		CreatedAt:       end,
	}

	durations := exerciseDurations(st, end)

	totalSets, doneSets := 0, 0
	for i, ex := range st.Exercises {
		entry := domain.ExerciseLog{
			Lift:            ex.Lift,
			Name:            ex.Name,
			Weight:          resolvedWeight(ex),
			DurationSeconds: durations[i],
		}
		for _, set := range st.Sets {
			if set.ExerciseIndex != i {
				continue
			}
			totalSets++
			if !set.Completed {
				continue
			}
			doneSets++
			actual := set.TargetReps
			if set.ActualReps != nil {
				actual = *set.ActualReps
			}
			var at time.Time
			if set.CompletedAt != nil {
				at = *set.CompletedAt
			}
			entry.Sets = append(entry.Sets, domain.SetResult{
				SetNumber:   set.SetNumber,
				TargetReps:  set.TargetReps,
				ActualReps:  actual,
				CompletedAt: at,
			})
		}
		log.Exercises = append(log.Exercises, entry)
	}

	switch {
	case doneSets == 0:
		log.Status = domain.SessionSkipped
	case doneSets == totalSets:
		log.Status = domain.SessionCompleted
	default:
		log.Status = domain.SessionPartial
	}
	return log
}

// resolvedWeight is the profile target unless the user overrode it live.
func resolvedWeight(ex domain.SessionExercise) float64 {
	if ex.WeightOverride != nil {
		return *ex.WeightOverride
	}
	return ex.TargetWeight
}

// exerciseDurations computes first-visit-to-next-first-visit durations.
// Unvisited exercises get zero.
func exerciseDurations(st *domain.ActiveSessionState, end time.Time) []int {
	type visit struct {
		index int
		start time.Time
	}
	var visits []visit
	for i, start := range st.ExerciseStarts {
		if !start.IsZero() {
			visits = append(visits, visit{index: i, start: start})
		}
	}
	sort.Slice(visits, func(a, b int) bool { return visits[a].start.Before(visits[b].start) })

	out := make([]int, len(st.Exercises))
	for k, v := range visits {
		until := end
		if k+1 < len(visits) {
			until = visits[k+1].start
		}
		out[v.index] = int(until.Sub(v.start).Seconds())
	}
	return out
}
