package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

func newProgramService() (*ProgramService, *fakeProgramRepo, *fakeInvalidator) {
	repo := newFakeProgramRepo()
	inv := &fakeInvalidator{}
	return NewProgramService(repo, inv), repo, inv
}

func TestSetProgramUnknownTemplate(t *testing.T) {
	svc, _, _ := newProgramService()

	_, err := svc.Set(context.Background(), "u1", SetProgramRequest{TemplateID: "smolov"})
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}

func TestSetProgramValidatesSelections(t *testing.T) {
	svc, _, _ := newProgramService()
	ctx := context.Background()

	cases := []struct {
		name       string
		selections map[string][]domain.Lift
	}{
		{"unknown slot", map[string][]domain.Lift{
			"push": {domain.LiftBench, domain.LiftPress},
		}},
		{"too few lifts", map[string][]domain.Lift{
			"cluster": {domain.LiftSquat},
		}},
		{"duplicate lift", map[string][]domain.Lift{
			"cluster": {domain.LiftSquat, domain.LiftSquat},
		}},
		{"unknown lift", map[string][]domain.Lift{
			"cluster": {domain.LiftSquat, "curl"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Set(ctx, "u1", SetProgramRequest{
				TemplateID: domain.TemplateOperator,
				Selections: tc.selections,
			})
			assert.ErrorIs(t, err, domain.ErrBadSlotSelection)
		})
	}
}

func TestSetProgramStartsAtWeekOne(t *testing.T) {
	svc, _, inv := newProgramService()

	program, err := svc.Set(context.Background(), "u1", SetProgramRequest{
		TemplateID: domain.TemplateOperator,
		Selections: map[string][]domain.Lift{
			"cluster": {domain.LiftSquat, domain.LiftBench, domain.LiftPullup},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, program.Week)
	assert.Equal(t, 1, program.Session)
	assert.Equal(t, 1, inv.calls, "activation must drop the cached schedule")
}

func TestAdvanceWrapsSessionIntoWeek(t *testing.T) {
	svc, repo, _ := newProgramService()
	ctx := context.Background()

	repo.programs["u1"] = &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator, // 3 sessions per week
		Week:       1,
		Session:    3,
	}

	program, err := svc.Advance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, program.Week)
	assert.Equal(t, 1, program.Session)
}

func TestAdvancePastFinalWeekRestartsCycle(t *testing.T) {
	svc, repo, _ := newProgramService()
	ctx := context.Background()

	repo.programs["u1"] = &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator, // 6 week cycle
		Week:       6,
		Session:    3,
	}

	program, err := svc.Advance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, program.Week)
	assert.Equal(t, 1, program.Session)
}

func TestClearRemovesProgram(t *testing.T) {
	svc, repo, inv := newProgramService()
	ctx := context.Background()

	repo.programs["u1"] = &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator,
		Week:       2,
		Session:    1,
	}

	require.NoError(t, svc.Clear(ctx, "u1"))
	_, err := svc.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	assert.Equal(t, 1, inv.calls)
}
