package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/templates"
)

// hashInput carries every value that can change a compiled schedule. Map keys
// are strings so json.Marshal emits them sorted, keeping the hash stable.
type hashInput struct {
	TemplateID        domain.TemplateID        `json:"template_id"`
	Selections        map[string][]domain.Lift `json:"selections"`
	WorkingMaxes      map[string]float64       `json:"working_maxes"`
	RoundingIncrement float64                  `json:"rounding_increment"`
	BarWeight         float64                  `json:"bar_weight"`
	MaxType           domain.MaxType           `json:"max_type"`
	BarbellPlates     domain.PlateInventory    `json:"barbell_plates"`
	BeltPlates        domain.PlateInventory    `json:"belt_plates"`
}

// SourceHash fingerprints the compile inputs so callers can detect staleness
// without recompiling. Slot selections are hashed in their resolved form, so
// picking the slot defaults explicitly hashes the same as leaving them unset.
func SourceHash(in Inputs) string {
	h := hashInput{
		TemplateID:        in.Program.TemplateID,
		Selections:        resolvedSelections(in.Program),
		WorkingMaxes:      make(map[string]float64, len(in.Lifts)),
		RoundingIncrement: in.Profile.RoundingIncrement,
		BarWeight:         in.Profile.BarWeight,
		MaxType:           in.Profile.MaxType,
		BarbellPlates:     in.Profile.BarbellPlates,
		BeltPlates:        in.Profile.BeltPlates,
	}
	for lift, dl := range in.Lifts {
		h.WorkingMaxes[string(lift)] = dl.WorkingMax
	}

	data, err := json.Marshal(h)
	if err != nil {
		// hashInput contains only plain values; Marshal cannot fail.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func resolvedSelections(program *domain.ActiveProgram) map[string][]domain.Lift {
	out := make(map[string][]domain.Lift)
	def, err := templates.Lookup(program.TemplateID)
	if err != nil {
		return out
	}
	for _, slot := range def.Slots {
		if sel, ok := program.Selections[slot.Name]; ok && len(sel) > 0 {
			out[slot.Name] = sel
			continue
		}
		out[slot.Name] = slot.Defaults
	}
	return out
}
