package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/calc"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

func newULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// CacheInvalidator drops derived projections after an input mutation.
type CacheInvalidator interface {
	InvalidateUserCache(ctx context.Context, userID string) error
}

// MaxService records strength tests and projects current working maxes.
type MaxService struct {
	maxRepo     domain.MaxTestRepository
	profileRepo domain.ProfileRepository
	cache       CacheInvalidator
}

func NewMaxService(maxRepo domain.MaxTestRepository, profileRepo domain.ProfileRepository, cache CacheInvalidator) *MaxService {
	return &MaxService{
		maxRepo:     maxRepo,
		profileRepo: profileRepo,
		cache:       cache,
	}
}

// RecordTestRequest is one new strength test entry.
type RecordTestRequest struct {
	Lift     domain.Lift
	Weight   float64
	Reps     int
	TestDate time.Time
}

// RecordTest validates and stores a test, freezing the estimated and working
// max at entry time under the profile's current max type.
func (s *MaxService) RecordTest(ctx context.Context, userID string, req RecordTestRequest) (*domain.MaxTest, error) {
	if !req.Lift.Valid() {
		return nil, fmt.Errorf("%w: unknown lift %q", domain.ErrValidation, req.Lift)
	}
	if req.Weight < domain.MinRecordableLb || req.Weight > domain.MaxRecordableLb {
		return nil, fmt.Errorf("%w: weight must be between %d and %d lb",
			domain.ErrValidation, domain.MinRecordableLb, domain.MaxRecordableLb)
	}
	if req.Reps < domain.MinRecordableReps || req.Reps > domain.MaxRecordableReps {
		return nil, fmt.Errorf("%w: reps must be between %d and %d",
			domain.ErrValidation, domain.MinRecordableReps, domain.MaxRecordableReps)
	}
	if req.TestDate.IsZero() {
		req.TestDate = time.Now()
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	estimated := calc.OneRepMax(req.Weight, req.Reps)
	test := &domain.MaxTest{
		ID:           newULID(),
		UserID:       userID,
		Lift:         req.Lift,
		Weight:       req.Weight,
		Reps:         req.Reps,
		TestDate:     req.TestDate,
		MaxType:      profile.MaxType,
		EstimatedMax: estimated,
		WorkingMax:   calc.TrainingMax(estimated, profile.MaxType),
	}
	if err := s.maxRepo.Create(ctx, test); err != nil {
		return nil, err
	}

	// Any recorded test can change the working maxes the schedule was built
	// from.
	_ = s.cache.InvalidateUserCache(ctx, userID)
	return test, nil
}

// History returns every recorded test in chronological order.
func (s *MaxService) History(ctx context.Context, userID string) ([]*domain.MaxTest, error) {
	return s.maxRepo.ListByUser(ctx, userID)
}

// DeleteAll wipes the full test history, usually ahead of re-entering it.
func (s *MaxService) DeleteAll(ctx context.Context, userID string) error {
	if err := s.maxRepo.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	_ = s.cache.InvalidateUserCache(ctx, userID)
	return nil
}

// Derived projects the test history down to the current working max per lift.
func (s *MaxService) Derived(ctx context.Context, userID string) (map[domain.Lift]domain.DerivedLift, error) {
	tests, err := s.maxRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.DeriveLifts(tests), nil
}

// LiftDetail is the per-lift reporting view: current working max plus the
// standard percentage ladder.
type LiftDetail struct {
	Lift    domain.Lift         `json:"lift"`
	Name    string              `json:"name"`
	Derived *domain.DerivedLift `json:"derived,omitempty"`
	Table   []calc.TableRow     `json:"table,omitempty"`
}

// LiftDetails returns all five lifts with their ladders; lifts without a
// recorded test come back without a table.
func (s *MaxService) LiftDetails(ctx context.Context, userID string) ([]LiftDetail, error) {
	derived, err := s.Derived(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	out := make([]LiftDetail, 0, len(domain.Lifts))
	for _, lift := range domain.Lifts {
		detail := LiftDetail{Lift: lift, Name: lift.DisplayName()}
		if d, ok := derived[lift]; ok {
			dd := d
			detail.Derived = &dd
			detail.Table = calc.PercentageTable(d.WorkingMax, profile.RoundingIncrement)
		}
		out = append(out, detail)
	}
	return out, nil
}

// LiftTable returns the percentage ladder for a single lift, or
// ErrMaxTestNotFound when the lift has never been tested.
func (s *MaxService) LiftTable(ctx context.Context, userID string, lift domain.Lift) ([]calc.TableRow, error) {
	if !lift.Valid() {
		return nil, fmt.Errorf("%w: unknown lift %q", domain.ErrValidation, lift)
	}
	derived, err := s.Derived(ctx, userID)
	if err != nil {
		return nil, err
	}
	d, ok := derived[lift]
	if !ok {
		return nil, domain.ErrMaxTestNotFound
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return calc.PercentageTable(d.WorkingMax, profile.RoundingIncrement), nil
}
