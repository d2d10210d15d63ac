// Package schedule expands a template definition against the user's derived
// lifts and profile into a fully resolved, plate-accurate multi-week plan.
package schedule

import (
	"fmt"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/calc"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/plates"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/templates"
)

// Exercise is one fully resolved exercise of a compiled session.
type Exercise struct {
	Lift         domain.Lift   `json:"lift"`
	Name         string        `json:"name"`
	TargetWeight float64       `json:"target_weight"`
	Percentage   float64       `json:"percentage"`
	SetsMin      int           `json:"sets_min"`
	SetsMax      int           `json:"sets_max"`
	RepPlan      []int         `json:"rep_plan"`
	Bodyweight   bool          `json:"bodyweight"`
	// NeedsMax marks a placeholder for a lift with no recorded max test; the
	// target weight stays 0 and the exercise is never achievable.
	NeedsMax bool          `json:"needs_max,omitempty"`
	Plates   plates.Result `json:"plates"`
}

// Session is one compiled training day.
type Session struct {
	Number    int        `json:"number"` // 1-based within the week
	Exercises []Exercise `json:"exercises"`
}

// Week is one compiled week.
type Week struct {
	Number   int       `json:"number"` // 1-based
	Sessions []Session `json:"sessions"`
}

// ComputedSchedule is the full expansion of a template against one program.
// Valid only while SourceHash matches a fresh hash of the same inputs; on
// mismatch it must be discarded and regenerated, never patched.
type ComputedSchedule struct {
	TemplateID   domain.TemplateID `json:"template_id"`
	TemplateName string            `json:"template_name"`
	Weeks        []Week            `json:"weeks"`
	SourceHash   string            `json:"source_hash"`
	ComputedAt   time.Time         `json:"computed_at"`
}

// Session returns the compiled session at (week, session), both 1-based.
func (cs *ComputedSchedule) Session(week, session int) (*Session, error) {
	if week < 1 || week > len(cs.Weeks) {
		return nil, fmt.Errorf("week %d out of range", week)
	}
	w := cs.Weeks[week-1]
	if session < 1 || session > len(w.Sessions) {
		return nil, fmt.Errorf("session %d out of range", session)
	}
	return &w.Sessions[session-1], nil
}

// Inputs gathers everything that can affect a compiled schedule.
type Inputs struct {
	Program *domain.ActiveProgram
	Lifts   map[domain.Lift]domain.DerivedLift
	Profile *domain.Profile
}

// Compile expands the program's template into a ComputedSchedule. An unknown
// template id is a configuration error; no partial schedule is produced.
func Compile(in Inputs) (*ComputedSchedule, error) {
	def, err := templates.Lookup(in.Program.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("compile schedule: %w", err)
	}

	cs := &ComputedSchedule{
		TemplateID:   def.ID,
		TemplateName: def.Name,
		SourceHash:   SourceHash(in),
		ComputedAt:   time.Now().UTC(),
	}

	for w := 1; w <= def.DurationWeeks(); w++ {
		week := Week{Number: w}
		for s := 1; s <= def.SessionsPerWeek; s++ {
			session := Session{Number: s}
			lifts := resolveLifts(def, def.Sessions[s-1], in.Program)
			pct := def.EffectivePercentage(w, s)
			sets, reps := def.EffectiveVolume(w, s)
			for _, lift := range lifts {
				session.Exercises = append(session.Exercises, compileExercise(lift, pct, sets, reps, in))
			}
			week.Sessions = append(week.Sessions, session)
		}
		cs.Weeks = append(cs.Weeks, week)
	}
	return cs, nil
}

// resolveLifts returns the session's lift list: fixed lists verbatim, slot
// references through the program's selection with the slot defaults as
// fallback when unresolved.
func resolveLifts(def *templates.Def, sess templates.SessionDef, program *domain.ActiveProgram) []domain.Lift {
	if len(sess.Lifts) > 0 {
		return sess.Lifts
	}
	if sel, ok := program.Selections[sess.Slot]; ok && len(sel) > 0 {
		return sel
	}
	if slot, ok := def.Slot(sess.Slot); ok {
		return slot.Defaults
	}
	return nil
}

func compileExercise(lift domain.Lift, pct float64, sets templates.SetsRange, reps templates.RepsPlan, in Inputs) Exercise {
	ex := Exercise{
		Lift:       lift,
		Name:       lift.DisplayName(),
		Percentage: pct,
		SetsMin:    sets.Min,
		SetsMax:    sets.Max,
		RepPlan:    reps.ForSets(sets.Max),
		Bodyweight: lift.IsBodyweight(),
	}

	dl, ok := in.Lifts[lift]
	if !ok {
		ex.NeedsMax = true
		return ex
	}

	ex.TargetWeight = calc.PercentageWeight(dl.WorkingMax, pct, in.Profile.RoundingIncrement)

	req := plates.Request{
		Target:    ex.TargetWeight,
		Increment: in.Profile.RoundingIncrement,
	}
	if ex.Bodyweight {
		req.Mode = plates.ModeBelt
		req.Inventory = in.Profile.BeltPlates
	} else {
		req.Mode = plates.ModeBarbell
		req.Reference = in.Profile.BarWeight
		req.Inventory = in.Profile.BarbellPlates
	}
	ex.Plates = plates.Calculate(req)
	return ex
}
