package domain

import "time"

// DerivedLift is the current working max for one lift, projected from the
// latest MaxTest. Never persisted; recomputed on demand.
type DerivedLift struct {
	Lift         Lift      `json:"lift"`
	WorkingMax   float64   `json:"working_max"`
	EstimatedMax float64   `json:"estimated_max"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	TestDate     time.Time `json:"test_date"`
	IsBodyweight bool      `json:"is_bodyweight"`
}

// DeriveLifts reduces a chronological MaxTest history to at most one entry per
// lift: the entry with the latest test date wins. tests must be in insertion
// order; on equal dates the later-inserted entry wins, so a same-day re-entry
// acts as a correction. Lifts with no tests are absent from the result.
func DeriveLifts(tests []*MaxTest) map[Lift]DerivedLift {
	out := make(map[Lift]DerivedLift, len(Lifts))
	for _, t := range tests {
		if !t.Lift.Valid() {
			continue
		}
		if cur, ok := out[t.Lift]; ok && t.TestDate.Before(cur.TestDate) {
			continue
		}
		out[t.Lift] = DerivedLift{
			Lift:         t.Lift,
			WorkingMax:   t.WorkingMax,
			EstimatedMax: t.EstimatedMax,
			Weight:       t.Weight,
			Reps:         t.Reps,
			TestDate:     t.TestDate,
			IsBodyweight: t.Lift.IsBodyweight(),
		}
	}
	return out
}
