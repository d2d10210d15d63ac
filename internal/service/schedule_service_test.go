package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/calc"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/repository"
)

func newScheduleFixture(t *testing.T) (*ScheduleService, *fakeMaxRepo, *fakeProgramRepo, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := repository.NewScheduleCache(repository.NewRedisCacheRepository(client))

	maxRepo := &fakeMaxRepo{}
	programRepo := newFakeProgramRepo()
	svc := NewScheduleService(maxRepo, newFakeProfileRepo(), programRepo, cache)
	return svc, maxRepo, programRepo, mr.Close
}

func addTest(repo *fakeMaxRepo, lift domain.Lift, weight float64, reps int, date time.Time) {
	est := calc.OneRepMax(weight, reps)
	repo.tests = append(repo.tests, &domain.MaxTest{
		ID:           newULID(),
		UserID:       "u1",
		Lift:         lift,
		Weight:       weight,
		Reps:         reps,
		TestDate:     date,
		MaxType:      domain.MaxTypeTraining,
		EstimatedMax: est,
		WorkingMax:   calc.TrainingMax(est, domain.MaxTypeTraining),
		UpdatedAt:    date,
	})
}

func TestScheduleGetWithoutProgram(t *testing.T) {
	svc, _, _, done := newScheduleFixture(t)
	defer done()

	_, err := svc.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestScheduleGetCompilesAndCaches(t *testing.T) {
	svc, maxRepo, programRepo, done := newScheduleFixture(t)
	defer done()
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	addTest(maxRepo, domain.LiftSquat, 300, 1, day)
	programRepo.programs["u1"] = &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator,
		Week:       1,
		Session:    1,
	}

	first, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, first.Weeks, 6)
	require.NotEmpty(t, first.SourceHash)

	// Unchanged inputs serve the cached copy.
	second, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.SourceHash, second.SourceHash)
	assert.True(t, second.ComputedAt.Equal(first.ComputedAt), "expected cache hit, got a recompile")

	hash, err := svc.Hash(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.SourceHash, hash)
}

func TestScheduleRecompilesWhenInputsDrift(t *testing.T) {
	svc, maxRepo, programRepo, done := newScheduleFixture(t)
	defer done()
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	addTest(maxRepo, domain.LiftSquat, 300, 1, day)
	programRepo.programs["u1"] = &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator,
		Week:       1,
		Session:    1,
	}

	first, err := svc.Get(ctx, "u1")
	require.NoError(t, err)

	// A newer squat test changes the derived max, so the hash drifts and the
	// stale cache entry is replaced rather than served.
	addTest(maxRepo, domain.LiftSquat, 320, 1, day.AddDate(0, 0, 7))

	second, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, first.SourceHash, second.SourceHash)

	firstWeight := first.Weeks[0].Sessions[0].Exercises[0].TargetWeight
	secondWeight := second.Weeks[0].Sessions[0].Exercises[0].TargetWeight
	assert.Greater(t, secondWeight, firstWeight)

	// The replacement is now the cached copy.
	third, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.SourceHash, third.SourceHash)
	assert.True(t, third.ComputedAt.Equal(second.ComputedAt))
}
