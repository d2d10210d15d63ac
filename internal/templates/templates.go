// Package templates holds the closed catalog of hand-authored periodization
// programs. Everything here is static data; the schedule compiler treats the
// override tables as configuration, never as code paths keyed on template id.
package templates

import (
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// RepsPlan is either a single reps-per-set value or an explicit per-set
// sequence. When Sequence is non-empty it wins and its length implies the
// maximum set count for that week.
type RepsPlan struct {
	PerSet   int   `json:"per_set,omitempty"`
	Sequence []int `json:"sequence,omitempty"`
}

// ForSets expands the plan to one target-rep value per set.
func (p RepsPlan) ForSets(n int) []int {
	out := make([]int, n)
	for i := range out {
		if len(p.Sequence) > 0 {
			if i < len(p.Sequence) {
				out[i] = p.Sequence[i]
			} else {
				out[i] = p.Sequence[len(p.Sequence)-1]
			}
			continue
		}
		out[i] = p.PerSet
	}
	return out
}

// SetsRange bounds how many sets a week prescribes; Min < Max permits early
// finish once Min sets are complete.
type SetsRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// WeekDef is one week of the progression.
type WeekDef struct {
	Percentage float64   `json:"percentage"`
	Sets       SetsRange `json:"sets"`
	Reps       RepsPlan  `json:"reps"`
}

// SlotDef is a user-configurable lift cluster referenced by sessions.
type SlotDef struct {
	Name     string        `json:"name"`
	Label    string        `json:"label"`
	MinLifts int           `json:"min_lifts"`
	MaxLifts int           `json:"max_lifts"`
	Defaults []domain.Lift `json:"defaults"`
}

// SessionDef names either a fixed lift list or a slot reference. Exactly one
// of Lifts / Slot is set.
type SessionDef struct {
	Lifts []domain.Lift `json:"lifts,omitempty"`
	Slot  string        `json:"slot,omitempty"`
}

// SessionOverride replaces the week's volume for one session position,
// keyed by week number. Used by programs that dedicate a session to a
// different lift with its own progression.
type SessionOverride struct {
	Sets SetsRange `json:"sets"`
	Reps RepsPlan  `json:"reps"`
}

// Def is a complete, immutable template definition.
type Def struct {
	ID              domain.TemplateID `json:"id"`
	Name            string            `json:"name"`
	Weeks           []WeekDef         `json:"weeks"`
	SessionsPerWeek int               `json:"sessions_per_week"`
	Sessions        []SessionDef      `json:"sessions"` // len == SessionsPerWeek
	Slots           []SlotDef         `json:"slots"`

	// PercentageTracks, when present, overrides the week percentage per
	// session parity: index session_number % len(PercentageTracks) selects a
	// track, each track holding one percentage per week.
	PercentageTracks [][]float64 `json:"percentage_tracks,omitempty"`

	// SessionOverrides maps session number -> week number -> volume override.
	SessionOverrides map[int]map[int]SessionOverride `json:"session_overrides,omitempty"`
}

// DurationWeeks returns the template length in weeks.
func (d *Def) DurationWeeks() int { return len(d.Weeks) }

// Slot returns the slot with the given name.
func (d *Def) Slot(name string) (SlotDef, bool) {
	for _, s := range d.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return SlotDef{}, false
}

// EffectivePercentage resolves the percentage for (week, session), both
// 1-based, applying the parity track override when declared.
func (d *Def) EffectivePercentage(week, session int) float64 {
	if len(d.PercentageTracks) > 0 {
		track := d.PercentageTracks[(session-1)%len(d.PercentageTracks)]
		if week-1 < len(track) {
			return track[week-1]
		}
	}
	return d.Weeks[week-1].Percentage
}

// EffectiveVolume resolves sets range and reps plan for (week, session),
// applying the session-level override table when declared.
func (d *Def) EffectiveVolume(week, session int) (SetsRange, RepsPlan) {
	if byWeek, ok := d.SessionOverrides[session]; ok {
		if ov, ok := byWeek[week]; ok {
			return ov.Sets, ov.Reps
		}
	}
	w := d.Weeks[week-1]
	return w.Sets, w.Reps
}

// Lookup returns the template definition for id. Unknown ids are a
// configuration error surfaced as domain.ErrUnknownTemplate.
func Lookup(id domain.TemplateID) (*Def, error) {
	if def, ok := catalog[id]; ok {
		return def, nil
	}
	return nil, domain.ErrUnknownTemplate
}

// All returns every template in the catalog, in a stable order.
func All() []*Def {
	out := make([]*Def, 0, len(order))
	for _, id := range order {
		out = append(out, catalog[id])
	}
	return out
}
