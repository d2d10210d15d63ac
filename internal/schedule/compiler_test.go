package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/plates"
)

func testInputs(t *testing.T) Inputs {
	t.Helper()
	profile := domain.DefaultProfile("u1")
	program := &domain.ActiveProgram{
		UserID:     "u1",
		TemplateID: domain.TemplateOperator,
		StartDate:  time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Week:       1,
		Session:    1,
		Selections: map[string][]domain.Lift{},
	}
	lifts := map[domain.Lift]domain.DerivedLift{
		domain.LiftSquat:  {Lift: domain.LiftSquat, WorkingMax: 300},
		domain.LiftBench:  {Lift: domain.LiftBench, WorkingMax: 225},
		domain.LiftPullup: {Lift: domain.LiftPullup, WorkingMax: 50, IsBodyweight: true},
	}
	return Inputs{Program: program, Lifts: lifts, Profile: profile}
}

func TestCompileOperator(t *testing.T) {
	in := testInputs(t)
	cs, err := Compile(in)
	require.NoError(t, err)

	assert.Len(t, cs.Weeks, 6)
	for _, w := range cs.Weeks {
		assert.Len(t, w.Sessions, 3)
	}

	// Week 1 session 1 uses the cluster defaults at 70%.
	sess, err := cs.Session(1, 1)
	require.NoError(t, err)
	require.Len(t, sess.Exercises, 3)

	squat := sess.Exercises[0]
	assert.Equal(t, domain.LiftSquat, squat.Lift)
	assert.Equal(t, 70.0, squat.Percentage)
	assert.Equal(t, 210.0, squat.TargetWeight) // 70% of 300 rounded to 5
	assert.True(t, squat.Plates.Achievable)
	assert.Equal(t, []int{5, 5, 5, 5, 5}, squat.RepPlan)

	pullup := sess.Exercises[2]
	assert.True(t, pullup.Bodyweight)
	assert.Equal(t, 35.0, pullup.TargetWeight) // belt mode, 70% of 50
	assert.Equal(t, plates.VariantPlates, pullup.Plates.Variant)
}

func TestCompileUnknownTemplateRefuses(t *testing.T) {
	in := testInputs(t)
	in.Program.TemplateID = domain.TemplateID("hypertrophy-9000")

	cs, err := Compile(in)
	assert.Nil(t, cs)
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}

func TestCompileMissingLiftEmitsPlaceholder(t *testing.T) {
	in := testInputs(t)
	in.Program.TemplateID = domain.TemplateMass // fixed lifts incl. deadlift

	cs, err := Compile(in)
	require.NoError(t, err)

	// No deadlift max recorded: placeholder, target 0, never achievable.
	sess, err := cs.Session(1, 3)
	require.NoError(t, err)
	require.Len(t, sess.Exercises, 1)
	dl := sess.Exercises[0]
	assert.True(t, dl.NeedsMax)
	assert.Equal(t, 0.0, dl.TargetWeight)
	assert.False(t, dl.Plates.Achievable)
}

func TestCompileSlotSelectionOverridesDefaults(t *testing.T) {
	in := testInputs(t)
	in.Program.Selections = map[string][]domain.Lift{
		"cluster": {domain.LiftDeadlift, domain.LiftPress},
	}
	in.Lifts[domain.LiftDeadlift] = domain.DerivedLift{Lift: domain.LiftDeadlift, WorkingMax: 400}
	in.Lifts[domain.LiftPress] = domain.DerivedLift{Lift: domain.LiftPress, WorkingMax: 150}

	cs, err := Compile(in)
	require.NoError(t, err)

	sess, err := cs.Session(1, 1)
	require.NoError(t, err)
	require.Len(t, sess.Exercises, 2)
	assert.Equal(t, domain.LiftDeadlift, sess.Exercises[0].Lift)
	assert.Equal(t, domain.LiftPress, sess.Exercises[1].Lift)
}

func TestCompileZuluParityPercentages(t *testing.T) {
	in := testInputs(t)
	in.Program.TemplateID = domain.TemplateZulu

	cs, err := Compile(in)
	require.NoError(t, err)

	s1, err := cs.Session(1, 1)
	require.NoError(t, err)
	s2, err := cs.Session(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 70.0, s1.Exercises[0].Percentage)
	assert.Equal(t, 65.0, s2.Exercises[0].Percentage)
}

func TestCompileDeterministic(t *testing.T) {
	in := testInputs(t)
	a, err := Compile(in)
	require.NoError(t, err)
	b, err := Compile(in)
	require.NoError(t, err)

	assert.Equal(t, a.SourceHash, b.SourceHash)
	assert.Equal(t, a.Weeks, b.Weeks)
}

func TestSourceHashChangesOnInputMutation(t *testing.T) {
	in := testInputs(t)
	base := SourceHash(in)

	t.Run("working max", func(t *testing.T) {
		mod := testInputs(t)
		dl := mod.Lifts[domain.LiftSquat]
		dl.WorkingMax += 5
		mod.Lifts[domain.LiftSquat] = dl
		assert.NotEqual(t, base, SourceHash(mod))
	})

	t.Run("rounding increment", func(t *testing.T) {
		mod := testInputs(t)
		mod.Profile.RoundingIncrement = 2.5
		assert.NotEqual(t, base, SourceHash(mod))
	})

	t.Run("bar weight", func(t *testing.T) {
		mod := testInputs(t)
		mod.Profile.BarWeight = 35
		assert.NotEqual(t, base, SourceHash(mod))
	})

	t.Run("inventory", func(t *testing.T) {
		mod := testInputs(t)
		mod.Profile.BarbellPlates[domain.DenomKey(45)]++
		assert.NotEqual(t, base, SourceHash(mod))
	})

	t.Run("template", func(t *testing.T) {
		mod := testInputs(t)
		mod.Program.TemplateID = domain.TemplateFighter
		assert.NotEqual(t, base, SourceHash(mod))
	})

	t.Run("explicit defaults hash identically", func(t *testing.T) {
		mod := testInputs(t)
		mod.Program.Selections = map[string][]domain.Lift{
			"cluster": {domain.LiftSquat, domain.LiftBench, domain.LiftPullup},
		}
		assert.Equal(t, base, SourceHash(mod))
	})
}
