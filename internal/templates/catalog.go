package templates

import (
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

var order = []domain.TemplateID{
	domain.TemplateOperator,
	domain.TemplateZulu,
	domain.TemplateFighter,
	domain.TemplateMass,
}

var catalog = map[domain.TemplateID]*Def{
	domain.TemplateOperator: {
		ID:              domain.TemplateOperator,
		Name:            "Operator",
		SessionsPerWeek: 3,
		Weeks: []WeekDef{
			{Percentage: 70, Sets: SetsRange{Min: 3, Max: 5}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 5}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 90, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 3}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 5}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 85, Sets: SetsRange{Min: 3, Max: 5}, Reps: RepsPlan{PerSet: 3}},
			{Percentage: 95, Sets: SetsRange{Min: 1, Max: 3}, Reps: RepsPlan{PerSet: 2}},
		},
		Sessions: []SessionDef{
			{Slot: "cluster"}, {Slot: "cluster"}, {Slot: "cluster"},
		},
		Slots: []SlotDef{
			{
				Name: "cluster", Label: "Operator Cluster",
				MinLifts: 2, MaxLifts: 4,
				Defaults: []domain.Lift{domain.LiftSquat, domain.LiftBench, domain.LiftPullup},
			},
		},
	},

	domain.TemplateZulu: {
		ID:              domain.TemplateZulu,
		Name:            "Zulu",
		SessionsPerWeek: 4,
		Weeks: []WeekDef{
			{Percentage: 70, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 85, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 3}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 5}},
		},
		// Sessions alternate A/B/A/B; each parity runs its own percentage track.
		Sessions: []SessionDef{
			{Slot: "cluster_a"}, {Slot: "cluster_b"}, {Slot: "cluster_a"}, {Slot: "cluster_b"},
		},
		Slots: []SlotDef{
			{
				Name: "cluster_a", Label: "Cluster A",
				MinLifts: 2, MaxLifts: 3,
				Defaults: []domain.Lift{domain.LiftBench, domain.LiftPullup},
			},
			{
				Name: "cluster_b", Label: "Cluster B",
				MinLifts: 2, MaxLifts: 3,
				Defaults: []domain.Lift{domain.LiftSquat, domain.LiftPress},
			},
		},
		PercentageTracks: [][]float64{
			{70, 75, 80, 85, 75, 80}, // sessions 1,3 (track A)
			{65, 70, 75, 80, 70, 75}, // sessions 2,4 (track B)
		},
	},

	domain.TemplateFighter: {
		ID:              domain.TemplateFighter,
		Name:            "Fighter",
		SessionsPerWeek: 2,
		Weeks: []WeekDef{
			{Percentage: 70, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 90, Sets: SetsRange{Min: 2, Max: 3}, Reps: RepsPlan{PerSet: 3}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{PerSet: 5}},
		},
		Sessions: []SessionDef{
			{Slot: "cluster"}, {Slot: "cluster"},
		},
		Slots: []SlotDef{
			{
				Name: "cluster", Label: "Fighter Cluster",
				MinLifts: 2, MaxLifts: 3,
				Defaults: []domain.Lift{domain.LiftSquat, domain.LiftBench},
			},
		},
	},

	domain.TemplateMass: {
		ID:              domain.TemplateMass,
		Name:            "Mass",
		SessionsPerWeek: 3,
		Weeks: []WeekDef{
			{Percentage: 70, Sets: SetsRange{Min: 4, Max: 5}, Reps: RepsPlan{PerSet: 6}},
			{Percentage: 75, Sets: SetsRange{Min: 4, Max: 5}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 80, Sets: SetsRange{Min: 3, Max: 5}, Reps: RepsPlan{PerSet: 5}},
			{Percentage: 85, Sets: SetsRange{Min: 3, Max: 4}, Reps: RepsPlan{PerSet: 4}},
			{Percentage: 90, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{Sequence: []int{5, 3, 2}}},
			{Percentage: 75, Sets: SetsRange{Min: 3, Max: 3}, Reps: RepsPlan{Sequence: []int{5, 3, 2}}},
		},
		Sessions: []SessionDef{
			{Lifts: []domain.Lift{domain.LiftBench, domain.LiftPullup}},
			{Lifts: []domain.Lift{domain.LiftSquat, domain.LiftPress}},
			{Lifts: []domain.Lift{domain.LiftDeadlift}},
		},
		// Session 3 is the dedicated deadlift day with its own volume per week.
		SessionOverrides: map[int]map[int]SessionOverride{
			3: {
				1: {Sets: SetsRange{Min: 2, Max: 3}, Reps: RepsPlan{PerSet: 5}},
				2: {Sets: SetsRange{Min: 2, Max: 3}, Reps: RepsPlan{PerSet: 5}},
				3: {Sets: SetsRange{Min: 2, Max: 3}, Reps: RepsPlan{PerSet: 5}},
				4: {Sets: SetsRange{Min: 2, Max: 2}, Reps: RepsPlan{PerSet: 3}},
				5: {Sets: SetsRange{Min: 2, Max: 2}, Reps: RepsPlan{PerSet: 3}},
				6: {Sets: SetsRange{Min: 2, Max: 3}, Reps: RepsPlan{PerSet: 5}},
			},
		},
	},
}
