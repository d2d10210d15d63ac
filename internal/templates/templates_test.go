package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

func TestLookup(t *testing.T) {
	def, err := Lookup(domain.TemplateOperator)
	require.NoError(t, err)
	assert.Equal(t, "Operator", def.Name)

	_, err = Lookup(domain.TemplateID("bogus"))
	assert.ErrorIs(t, err, domain.ErrUnknownTemplate)
}

func TestCatalogConsistency(t *testing.T) {
	for _, def := range All() {
		t.Run(string(def.ID), func(t *testing.T) {
			assert.Equal(t, def.SessionsPerWeek, len(def.Sessions))
			assert.NotEmpty(t, def.Weeks)
			for _, w := range def.Weeks {
				assert.LessOrEqual(t, w.Sets.Min, w.Sets.Max)
				assert.Positive(t, w.Sets.Min)
			}
			for _, sess := range def.Sessions {
				if sess.Slot != "" {
					_, ok := def.Slot(sess.Slot)
					assert.True(t, ok, "session references undeclared slot %q", sess.Slot)
				} else {
					assert.NotEmpty(t, sess.Lifts)
				}
			}
			for _, slot := range def.Slots {
				assert.GreaterOrEqual(t, len(slot.Defaults), slot.MinLifts)
				assert.LessOrEqual(t, len(slot.Defaults), slot.MaxLifts)
			}
			if len(def.PercentageTracks) > 0 {
				for _, track := range def.PercentageTracks {
					assert.Len(t, track, def.DurationWeeks())
				}
			}
		})
	}
}

func TestZuluParityTracks(t *testing.T) {
	def, err := Lookup(domain.TemplateZulu)
	require.NoError(t, err)

	// Sessions 1 and 3 run track A, 2 and 4 track B, independently per week.
	assert.Equal(t, 70.0, def.EffectivePercentage(1, 1))
	assert.Equal(t, 65.0, def.EffectivePercentage(1, 2))
	assert.Equal(t, 70.0, def.EffectivePercentage(1, 3))
	assert.Equal(t, 65.0, def.EffectivePercentage(1, 4))
	assert.Equal(t, 85.0, def.EffectivePercentage(4, 1))
	assert.Equal(t, 80.0, def.EffectivePercentage(4, 2))
}

func TestMassSessionOverrides(t *testing.T) {
	def, err := Lookup(domain.TemplateMass)
	require.NoError(t, err)

	// Deadlift day runs reduced volume regardless of the week definition.
	sets, reps := def.EffectiveVolume(1, 3)
	assert.Equal(t, SetsRange{Min: 2, Max: 3}, sets)
	assert.Equal(t, []int{5, 5, 5}, reps.ForSets(3))

	// Other sessions fall through to the week definition.
	sets, reps = def.EffectiveVolume(1, 1)
	assert.Equal(t, SetsRange{Min: 4, Max: 5}, sets)
	assert.Equal(t, []int{6, 6, 6, 6, 6}, reps.ForSets(5))
}

func TestRepsPlanSequence(t *testing.T) {
	plan := RepsPlan{Sequence: []int{5, 3, 2}}
	assert.Equal(t, []int{5, 3, 2}, plan.ForSets(3))
	// Shorter sequences pad with the last value.
	assert.Equal(t, []int{5, 3, 2, 2}, plan.ForSets(4))
	assert.Equal(t, []int{5, 3}, plan.ForSets(2))
}
