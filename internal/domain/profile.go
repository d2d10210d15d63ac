package domain

import (
	"context"
	"strconv"
	"time"
)

// PlateDenoms is the fixed set of plate denominations in pounds, heaviest first.
var PlateDenoms = []float64{45, 35, 25, 10, 5, 2.5, 1.25}

const (
	// MaxPlateCount bounds how many plates of one denomination an inventory may hold.
	MaxPlateCount = 20

	DefaultBarWeight   = 45.0
	DefaultIncrement   = 5.0
	MinRecordableLb    = 1
	MaxRecordableLb    = 1500
	MinRecordableReps  = 1
	MaxRecordableReps  = 15
	TrainingMaxPercent = 0.90
)

// PlateInventory maps a plate denomination to an available count. Counts for
// the barbell inventory are per side (plates are loaded in pairs); the belt
// inventory counts the whole stack. Always fully populated.
type PlateInventory map[string]int

// DenomKey formats a denomination as an inventory key ("45", "2.5").
func DenomKey(denom float64) string {
	return strconv.FormatFloat(denom, 'f', -1, 64)
}

// Count returns the available count for a denomination, zero when absent.
func (inv PlateInventory) Count(denom float64) int {
	return inv[DenomKey(denom)]
}

// Normalize clamps counts into [0, MaxPlateCount] and fills missing denominations
// with zero so the inventory is always fully populated.
func (inv PlateInventory) Normalize() {
	for _, d := range PlateDenoms {
		k := DenomKey(d)
		c := inv[k]
		if c < 0 {
			c = 0
		}
		if c > MaxPlateCount {
			c = MaxPlateCount
		}
		inv[k] = c
	}
	for k := range inv {
		if !validDenomKey(k) {
			delete(inv, k)
		}
	}
}

func validDenomKey(k string) bool {
	for _, d := range PlateDenoms {
		if DenomKey(d) == k {
			return true
		}
	}
	return false
}

// DefaultBarbellInventory is a typical home-gym loadout, counted per side.
func DefaultBarbellInventory() PlateInventory {
	return PlateInventory{
		DenomKey(45): 4, DenomKey(35): 0, DenomKey(25): 1,
		DenomKey(10): 1, DenomKey(5): 1, DenomKey(2.5): 1, DenomKey(1.25): 0,
	}
}

// DefaultBeltInventory is a typical dip-belt loadout, counted as one stack.
func DefaultBeltInventory() PlateInventory {
	return PlateInventory{
		DenomKey(45): 2, DenomKey(35): 0, DenomKey(25): 1,
		DenomKey(10): 1, DenomKey(5): 1, DenomKey(2.5): 1, DenomKey(1.25): 0,
	}
}

// Profile holds per-user training settings and both plate inventories.
type Profile struct {
	UserID             string         `json:"user_id" bson:"_id"`
	RoundingIncrement  float64        `json:"rounding_increment" bson:"rounding_increment"` // 2.5 or 5 lb
	BarWeight          float64        `json:"bar_weight" bson:"bar_weight"`
	MaxType            MaxType        `json:"max_type" bson:"max_type"`
	DefaultRestSeconds int            `json:"default_rest_seconds" bson:"default_rest_seconds"` // 0 = derive from intensity
	BarbellPlates      PlateInventory `json:"barbell_plates" bson:"barbell_plates"`
	BeltPlates         PlateInventory `json:"belt_plates" bson:"belt_plates"`
	UpdatedAt          time.Time      `json:"updated_at" bson:"updated_at"`
}

// DefaultProfile returns the settings a fresh user starts with.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:            userID,
		RoundingIncrement: DefaultIncrement,
		BarWeight:         DefaultBarWeight,
		MaxType:           MaxTypeTraining,
		BarbellPlates:     DefaultBarbellInventory(),
		BeltPlates:        DefaultBeltInventory(),
	}
}

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}
