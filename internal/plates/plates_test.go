package plates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

func inventory(counts map[float64]int) domain.PlateInventory {
	inv := domain.PlateInventory{}
	for d, c := range counts {
		inv[domain.DenomKey(d)] = c
	}
	inv.Normalize()
	return inv
}

func TestCalculateBarbell(t *testing.T) {
	inv := inventory(map[float64]int{45: 4, 25: 2, 10: 2, 5: 2, 2.5: 2})

	tests := []struct {
		name    string
		target  float64
		want    []PlateCount
		wantOK  bool
		variant Variant
	}{
		{
			name:    "simple working weight",
			target:  185, // 70 per side: 45+25
			want:    []PlateCount{{45, 1}, {25, 1}},
			wantOK:  true,
			variant: VariantPlates,
		},
		{
			name:    "greedy consumes largest first",
			target:  315, // 135 per side: 45x3
			want:    []PlateCount{{45, 3}},
			wantOK:  true,
			variant: VariantPlates,
		},
		{
			name:    "fractional per-side",
			target:  220, // 87.5 per side: 45+25+10+5+2.5
			want:    []PlateCount{{45, 1}, {25, 1}, {10, 1}, {5, 1}, {2.5, 1}},
			wantOK:  true,
			variant: VariantPlates,
		},
		{
			name:    "bar only",
			target:  45,
			wantOK:  true,
			variant: VariantBarOnly,
		},
		{
			name:    "below bar",
			target:  40,
			wantOK:  false,
			variant: VariantBelowBar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{Target: tt.target, Reference: 45, Inventory: inv, Mode: ModeBarbell, Increment: 5}
			got := Calculate(req)
			assert.Equal(t, tt.wantOK, got.Achievable)
			assert.Equal(t, tt.variant, got.Variant)
			assert.Equal(t, tt.want, got.Plates)
			if got.Achievable && got.Variant == VariantPlates {
				assert.Equal(t, tt.target, got.Total(req), "round trip must reproduce the target exactly")
			}
		})
	}
}

func TestCalculateBelt(t *testing.T) {
	inv := inventory(map[float64]int{45: 1, 25: 1, 10: 1, 5: 1, 2.5: 1})

	req := Request{Target: 52.5, Reference: 0, Inventory: inv, Mode: ModeBelt, Increment: 2.5}
	got := Calculate(req)
	require.True(t, got.Achievable)
	assert.Equal(t, []PlateCount{{45, 1}, {5, 1}, {2.5, 1}}, got.Plates)
	assert.Equal(t, 52.5, got.Total(req))

	// Bodyweight only: target equals the zero reference.
	got = Calculate(Request{Target: 0, Reference: 0, Inventory: inv, Mode: ModeBelt, Increment: 2.5})
	assert.True(t, got.Achievable)
	assert.Equal(t, VariantBodyweightOnly, got.Variant)
}

func TestCalculateShortfall(t *testing.T) {
	// Only one 45 per side: 225 needs 90 per side, can build at most 45+25+10+5+2.5.
	inv := inventory(map[float64]int{45: 1, 25: 1, 10: 1, 5: 1, 2.5: 1})
	req := Request{Target: 315, Reference: 45, Inventory: inv, Mode: ModeBarbell, Increment: 5}

	got := Calculate(req)
	assert.False(t, got.Achievable)
	assert.Empty(t, got.Plates)
	// Max buildable is 45 + 2*(87.5) = 220.
	assert.Equal(t, 220.0, got.NearestAchievable)
}

func TestCalculateExhaustsFullInventory(t *testing.T) {
	// Target exactly equal to the sum of all available plate weight plus bar.
	inv := inventory(map[float64]int{45: 2, 25: 1, 10: 1, 5: 1, 2.5: 1})
	total := 45 + 2*(2*45+25+10+5+2.5)
	req := Request{Target: total, Reference: 45, Inventory: inv, Mode: ModeBarbell, Increment: 2.5}

	got := Calculate(req)
	require.True(t, got.Achievable)
	assert.Equal(t, total, got.Total(req))
}

func TestCalculateSkipsZeroCounts(t *testing.T) {
	inv := inventory(map[float64]int{45: 0, 35: 0, 25: 4, 10: 0, 5: 2, 2.5: 0})
	req := Request{Target: 205, Reference: 45, Inventory: inv, Mode: ModeBarbell, Increment: 5}

	got := Calculate(req) // 80 per side: 25x3 + 5x1
	require.True(t, got.Achievable)
	assert.Equal(t, []PlateCount{{25, 3}, {5, 1}}, got.Plates)
}

func TestNearestPrefersLighterOnEqualDistance(t *testing.T) {
	// 10s only: per-side loads are multiples of 10, so totals step by 20.
	inv := inventory(map[float64]int{10: 10})
	req := Request{Target: 75, Reference: 45, Inventory: inv, Mode: ModeBarbell, Increment: 5}

	got := Calculate(req)
	require.False(t, got.Achievable)
	// 65 and 85 are both two steps away; the lighter load wins.
	assert.Equal(t, 65.0, got.NearestAchievable)
}

func TestInventoryMonotonicity(t *testing.T) {
	// Adding plates can only turn unachievable targets achievable, never the reverse.
	base := map[float64]int{45: 1, 25: 1, 10: 1, 5: 1, 2.5: 1}
	for target := 50.0; target <= 400; target += 2.5 {
		small := Calculate(Request{Target: target, Reference: 45, Inventory: inventory(base), Mode: ModeBarbell, Increment: 2.5})
		grown := map[float64]int{}
		for d, c := range base {
			grown[d] = c + 2
		}
		big := Calculate(Request{Target: target, Reference: 45, Inventory: inventory(grown), Mode: ModeBarbell, Increment: 2.5})
		if small.Achievable {
			assert.True(t, big.Achievable, "target %v regressed when inventory grew", target)
		}
	}
}
