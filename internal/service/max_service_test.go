package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

func newMaxService() (*MaxService, *fakeMaxRepo, *fakeProfileRepo, *fakeInvalidator) {
	maxRepo := &fakeMaxRepo{}
	profileRepo := newFakeProfileRepo()
	inv := &fakeInvalidator{}
	return NewMaxService(maxRepo, profileRepo, inv), maxRepo, profileRepo, inv
}

func TestRecordTestRejectsBadInput(t *testing.T) {
	svc, _, _, _ := newMaxService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  RecordTestRequest
	}{
		{"unknown lift", RecordTestRequest{Lift: "curl", Weight: 100, Reps: 5}},
		{"zero weight", RecordTestRequest{Lift: domain.LiftSquat, Weight: 0, Reps: 5}},
		{"absurd weight", RecordTestRequest{Lift: domain.LiftSquat, Weight: 2000, Reps: 5}},
		{"zero reps", RecordTestRequest{Lift: domain.LiftSquat, Weight: 225, Reps: 0}},
		{"too many reps", RecordTestRequest{Lift: domain.LiftSquat, Weight: 225, Reps: 16}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RecordTest(ctx, "u1", tc.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	// The rejection messages surface to the client; the bounds must render.
	_, err := svc.RecordTest(ctx, "u1", RecordTestRequest{Lift: domain.LiftSquat, Weight: 2000, Reps: 5})
	assert.EqualError(t, err, "validation failed: weight must be between 1 and 1500 lb")
	_, err = svc.RecordTest(ctx, "u1", RecordTestRequest{Lift: domain.LiftSquat, Weight: 225, Reps: 16})
	assert.EqualError(t, err, "validation failed: reps must be between 1 and 15")
}

func TestRecordTestFreezesWorkingMax(t *testing.T) {
	svc, _, _, inv := newMaxService()

	test, err := svc.RecordTest(context.Background(), "u1", RecordTestRequest{
		Lift:   domain.LiftBench,
		Weight: 225,
		Reps:   3,
	})
	require.NoError(t, err)

	// Epley at 3 reps, then the training-max cut, both frozen on the record.
	assert.InDelta(t, 247.48, test.EstimatedMax, 0.01)
	assert.InDelta(t, 222.73, test.WorkingMax, 0.01)
	assert.Equal(t, domain.MaxTypeTraining, test.MaxType)
	assert.NotEmpty(t, test.ID)
	assert.False(t, test.TestDate.IsZero())
	assert.Equal(t, 1, inv.calls, "new test must drop the cached schedule")
}

func TestRecordTestSingleRepIsUsedDirectly(t *testing.T) {
	svc, _, profileRepo, _ := newMaxService()

	profile := domain.DefaultProfile("u1")
	profile.MaxType = domain.MaxTypeTrue
	require.NoError(t, profileRepo.Upsert(context.Background(), profile))

	test, err := svc.RecordTest(context.Background(), "u1", RecordTestRequest{
		Lift:   domain.LiftDeadlift,
		Weight: 405,
		Reps:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, 405.0, test.EstimatedMax)
	assert.Equal(t, 405.0, test.WorkingMax)
}

func TestLiftDetailsCoversAllLifts(t *testing.T) {
	svc, _, _, _ := newMaxService()
	ctx := context.Background()

	_, err := svc.RecordTest(ctx, "u1", RecordTestRequest{
		Lift: domain.LiftSquat, Weight: 300, Reps: 2,
	})
	require.NoError(t, err)

	details, err := svc.LiftDetails(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, details, len(domain.Lifts))

	byLift := map[domain.Lift]LiftDetail{}
	for _, d := range details {
		byLift[d.Lift] = d
	}

	squat := byLift[domain.LiftSquat]
	require.NotNil(t, squat.Derived)
	require.Len(t, squat.Table, 8)
	assert.Equal(t, 100.0, squat.Table[0].Percentage)
	assert.Equal(t, 65.0, squat.Table[7].Percentage)

	// Untested lifts appear with no derived max and no ladder.
	bench := byLift[domain.LiftBench]
	assert.Nil(t, bench.Derived)
	assert.Nil(t, bench.Table)
}

func TestDerivedPrefersLatestTestDate(t *testing.T) {
	svc, maxRepo, _, _ := newMaxService()
	ctx := context.Background()

	older := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.RecordTest(ctx, "u1", RecordTestRequest{
		Lift: domain.LiftPress, Weight: 145, Reps: 1, TestDate: newer,
	})
	require.NoError(t, err)
	_, err = svc.RecordTest(ctx, "u1", RecordTestRequest{
		Lift: domain.LiftPress, Weight: 135, Reps: 1, TestDate: older,
	})
	require.NoError(t, err)
	require.Len(t, maxRepo.tests, 2)

	derived, err := svc.Derived(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 145.0, derived[domain.LiftPress].Weight)
}

func TestLiftTableRequiresRecordedTest(t *testing.T) {
	svc, _, _, _ := newMaxService()
	ctx := context.Background()

	_, err := svc.LiftTable(ctx, "u1", domain.LiftDeadlift)
	assert.ErrorIs(t, err, domain.ErrMaxTestNotFound)

	_, err = svc.LiftTable(ctx, "u1", "curl")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.RecordTest(ctx, "u1", RecordTestRequest{
		Lift: domain.LiftDeadlift, Weight: 315, Reps: 5,
	})
	require.NoError(t, err)

	table, err := svc.LiftTable(ctx, "u1", domain.LiftDeadlift)
	require.NoError(t, err)
	require.Len(t, table, 8)
	assert.Equal(t, 100.0, table[0].Percentage)
}

func TestDeleteAllWipesHistoryAndCache(t *testing.T) {
	svc, maxRepo, _, inv := newMaxService()
	ctx := context.Background()

	_, err := svc.RecordTest(ctx, "u1", RecordTestRequest{
		Lift: domain.LiftSquat, Weight: 285, Reps: 5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, maxRepo.tests)

	require.NoError(t, svc.DeleteAll(ctx, "u1"))
	assert.Empty(t, maxRepo.tests)
	assert.Equal(t, 2, inv.calls)

	derived, err := svc.Derived(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, derived)
}
