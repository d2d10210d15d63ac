package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/templates"
)

// ProgramService manages the single active program per user.
type ProgramService struct {
	programRepo domain.ActiveProgramRepository
	cache       CacheInvalidator
}

func NewProgramService(programRepo domain.ActiveProgramRepository, cache CacheInvalidator) *ProgramService {
	return &ProgramService{programRepo: programRepo, cache: cache}
}

func (s *ProgramService) Get(ctx context.Context, userID string) (*domain.ActiveProgram, error) {
	return s.programRepo.Get(ctx, userID)
}

// SetProgramRequest starts (or restarts) a program. Selections bind template
// slots to lift clusters; omitted slots fall back to the slot defaults.
type SetProgramRequest struct {
	TemplateID domain.TemplateID
	StartDate  time.Time
	Selections map[string][]domain.Lift
}

func (s *ProgramService) Set(ctx context.Context, userID string, req SetProgramRequest) (*domain.ActiveProgram, error) {
	def, err := templates.Lookup(req.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := validateSelections(def, req.Selections); err != nil {
		return nil, err
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}
	if req.Selections == nil {
		req.Selections = map[string][]domain.Lift{}
	}

	program := &domain.ActiveProgram{
		UserID:     userID,
		TemplateID: req.TemplateID,
		StartDate:  req.StartDate,
		Week:       1,
		Session:    1,
		Selections: req.Selections,
	}
	if err := s.programRepo.Upsert(ctx, program); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateUserCache(ctx, userID)
	return program, nil
}

// Advance moves the position to the next session, rolling into the next week
// after the last session. Past the final week it wraps back to week 1, the
// template simply repeats with current maxes.
func (s *ProgramService) Advance(ctx context.Context, userID string) (*domain.ActiveProgram, error) {
	program, err := s.programRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	def, err := templates.Lookup(program.TemplateID)
	if err != nil {
		return nil, err
	}

	program.Session++
	if program.Session > def.SessionsPerWeek {
		program.Session = 1
		program.Week++
		if program.Week > def.DurationWeeks() {
			program.Week = 1
		}
	}
	if err := s.programRepo.Upsert(ctx, program); err != nil {
		return nil, err
	}

	_ = s.cache.InvalidateUserCache(ctx, userID)
	return program, nil
}

// Clear abandons the active program.
func (s *ProgramService) Clear(ctx context.Context, userID string) error {
	if err := s.programRepo.Delete(ctx, userID); err != nil {
		return err
	}
	return s.cache.InvalidateUserCache(ctx, userID)
}

func validateSelections(def *templates.Def, selections map[string][]domain.Lift) error {
	for name, lifts := range selections {
		slot, ok := def.Slot(name)
		if !ok {
			return fmt.Errorf("%w: template %s has no slot %q", domain.ErrBadSlotSelection, def.ID, name)
		}
		if len(lifts) < slot.MinLifts || len(lifts) > slot.MaxLifts {
			return fmt.Errorf("%w: slot %q takes %d to %d lifts",
				domain.ErrBadSlotSelection, name, slot.MinLifts, slot.MaxLifts)
		}
		seen := map[domain.Lift]bool{}
		for _, lift := range lifts {
			if !lift.Valid() {
				return fmt.Errorf("%w: unknown lift %q", domain.ErrBadSlotSelection, lift)
			}
			if seen[lift] {
				return fmt.Errorf("%w: duplicate lift %q in slot %q", domain.ErrBadSlotSelection, lift, name)
			}
			seen[lift] = true
		}
	}
	return nil
}

// Templates lists the full catalog for pickers.
func (s *ProgramService) Templates() []*templates.Def {
	return templates.All()
}
