// Package plates decomposes a target load into physically available plates
// under a finite inventory, or explains why it cannot be realized.
package plates

import (
	"math"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// Mode selects how the load is physically arranged.
type Mode string

const (
	// ModeBarbell splits plates symmetrically across two sides of a bar.
	// Inventory counts are per side.
	ModeBarbell Mode = "barbell"
	// ModeBelt stacks plates on a single dip belt; reference weight is zero.
	ModeBelt Mode = "belt"
)

// Variant labels the shape of a decomposition result.
type Variant string

const (
	VariantPlates         Variant = "plates"
	VariantBarOnly        Variant = "bar_only"
	VariantBodyweightOnly Variant = "bodyweight_only"
	VariantBelowBar       Variant = "below_bar"
)

// nearestSearchSteps bounds the outward search for the closest achievable load.
const nearestSearchSteps = 40

// PlateCount is a consumed (denomination, count) pair, heaviest first in a stack.
type PlateCount struct {
	Denom float64 `json:"denom"`
	Count int     `json:"count"`
}

// Request describes one decomposition problem.
type Request struct {
	Target    float64               // total load including the reference weight
	Reference float64               // bar weight for barbell mode, 0 for belt mode
	Inventory domain.PlateInventory // never auto-expanded
	Mode      Mode
	Increment float64 // rounding increment, used by the nearest search
}

// Result is the outcome of a decomposition. Pure data, no side effects.
type Result struct {
	Achievable bool         `json:"achievable"`
	Variant    Variant      `json:"variant"`
	Plates     []PlateCount `json:"plates,omitempty"` // per side (barbell) or stack (belt)
	// NearestAchievable is the closest load that can be built when the target
	// cannot; zero when achievable or when no candidate was found in range.
	NearestAchievable float64 `json:"nearest_achievable,omitempty"`
}

// Total returns reference weight plus the weight of all consumed plates,
// doubling per-side plates in barbell mode.
func (r Result) Total(req Request) float64 {
	sum := 0.0
	for _, p := range r.Plates {
		sum += p.Denom * float64(p.Count)
	}
	if req.Mode == ModeBarbell {
		sum *= 2
	}
	return req.Reference + sum
}

// Calculate decomposes req.Target into available plates.
func Calculate(req Request) Result {
	if req.Target < req.Reference {
		return Result{Variant: VariantBelowBar}
	}
	if req.Target == req.Reference {
		v := VariantBarOnly
		if req.Reference == 0 {
			v = VariantBodyweightOnly
		}
		return Result{Achievable: true, Variant: v}
	}

	if stack, ok := decompose(req.Target, req); ok {
		return Result{Achievable: true, Variant: VariantPlates, Plates: stack}
	}

	return Result{
		Variant:           VariantPlates,
		NearestAchievable: searchNearest(req),
	}
}

// decompose runs the greedy largest-first consumption for one candidate total.
// Returns ok=false when the remainder cannot reach exactly zero.
func decompose(target float64, req Request) ([]PlateCount, bool) {
	needed := target - req.Reference
	if needed < 0 {
		return nil, false
	}
	if req.Mode == ModeBarbell {
		needed /= 2
	}

	var stack []PlateCount
	remaining := needed
	for _, denom := range domain.PlateDenoms {
		avail := req.Inventory.Count(denom)
		if avail <= 0 || remaining < denom {
			continue
		}
		take := int(math.Floor(remaining / denom))
		if take > avail {
			take = avail
		}
		if take == 0 {
			continue
		}
		stack = append(stack, PlateCount{Denom: denom, Count: take})
		remaining -= denom * float64(take)
		// Guard against float drift on fractional denominations.
		remaining = math.Round(remaining*1000) / 1000
	}

	if remaining != 0 {
		return nil, false
	}
	return stack, true
}

// searchNearest walks outward from the target in rounding-increment steps and
// reports the closest achievable candidate, preferring the lighter load when
// both directions match at the same distance. Returns 0 when nothing in range.
func searchNearest(req Request) float64 {
	inc := req.Increment
	if inc <= 0 {
		inc = domain.DefaultIncrement
	}
	for step := 1; step <= nearestSearchSteps; step++ {
		delta := inc * float64(step)

		if down := req.Target - delta; down >= req.Reference {
			if down == req.Reference {
				return down
			}
			if _, ok := decompose(down, req); ok {
				return down
			}
		}
		up := req.Target + delta
		if _, ok := decompose(up, req); ok {
			return up
		}
	}
	return 0
}
