package domain

// Lift identifies one of the five canonical barbell lifts tracked by the app.
type Lift string

const (
	LiftSquat    Lift = "squat"
	LiftBench    Lift = "bench"
	LiftDeadlift Lift = "deadlift"
	LiftPress    Lift = "press"
	LiftPullup   Lift = "pullup"
)

// Lifts lists every canonical lift in display order.
var Lifts = []Lift{LiftSquat, LiftBench, LiftDeadlift, LiftPress, LiftPullup}

// Valid reports whether l is one of the canonical lifts.
func (l Lift) Valid() bool {
	switch l {
	case LiftSquat, LiftBench, LiftDeadlift, LiftPress, LiftPullup:
		return true
	}
	return false
}

// IsBodyweight reports whether the lift is loaded with a dip belt instead of a bar.
// Only the weighted pull-up qualifies.
func (l Lift) IsBodyweight() bool {
	return l == LiftPullup
}

// DisplayName returns a human readable name for the lift.
func (l Lift) DisplayName() string {
	switch l {
	case LiftSquat:
		return "Squat"
	case LiftBench:
		return "Bench Press"
	case LiftDeadlift:
		return "Deadlift"
	case LiftPress:
		return "Overhead Press"
	case LiftPullup:
		return "Weighted Pull-Up"
	}
	return string(l)
}
