// Package calc holds the pure load math: one-rep-max estimation, training-max
// derivation, and percentage-of-max rounding. No state, safe to call anywhere.
package calc

import (
	"math"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// epleyFactor is the per-rep increment of the Epley 1RM extrapolation.
const epleyFactor = 0.0333

// OneRepMax estimates a one-rep max from a weight/rep pair using the Epley
// formula. A single rep returns the weight unchanged. Returns 0 for inputs
// outside the valid domain; range validation belongs to the caller.
func OneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps < 1 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Round(weight*(1+epleyFactor*float64(reps))*100) / 100
}

// TrainingMax derives the working max from an estimated 1RM. Under the
// "training" max type a conservative percentage is applied; under "true" the
// estimate is used as-is.
func TrainingMax(oneRepMax float64, maxType domain.MaxType) float64 {
	if oneRepMax <= 0 {
		return 0
	}
	if maxType == domain.MaxTypeTraining {
		return math.Round(oneRepMax*domain.TrainingMaxPercent*100) / 100
	}
	return oneRepMax
}

// PercentageWeight computes percentage of the working max rounded to the
// nearest multiple of increment, ties rounding up. Returns 0 when the working
// max is unset. Never negative.
func PercentageWeight(workingMax, percentage, increment float64) float64 {
	if workingMax <= 0 || percentage <= 0 || increment <= 0 {
		return 0
	}
	raw := workingMax * percentage / 100
	return math.Floor(raw/increment+0.5) * increment
}

// TableRow is one line of the fixed percentage ladder.
type TableRow struct {
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
}

// PercentageTable produces the descending 100..65 ladder paired with rounded
// weights. Pure reporting view.
func PercentageTable(workingMax, increment float64) []TableRow {
	rows := make([]TableRow, 0, 8)
	for pct := 100.0; pct >= 65; pct -= 5 {
		rows = append(rows, TableRow{
			Percentage: pct,
			Weight:     PercentageWeight(workingMax, pct, increment),
		})
	}
	return rows
}
