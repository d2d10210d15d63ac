package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/schedule"
)

// ScheduleCacheStore holds computed schedules keyed by user.
type ScheduleCacheStore interface {
	Get(ctx context.Context, userID string) (*schedule.ComputedSchedule, error)
	Put(ctx context.Context, userID string, cs *schedule.ComputedSchedule) error
	Invalidate(ctx context.Context, userID string) error
}

// ScheduleService compiles and caches each user's full training schedule.
// A cached schedule is served only while its source hash still matches the
// current inputs; on mismatch it is recompiled whole, never patched.
type ScheduleService struct {
	maxRepo     domain.MaxTestRepository
	profileRepo domain.ProfileRepository
	programRepo domain.ActiveProgramRepository
	cache       ScheduleCacheStore

	// group collapses concurrent recompiles for the same user.
	group singleflight.Group
}

func NewScheduleService(
	maxRepo domain.MaxTestRepository,
	profileRepo domain.ProfileRepository,
	programRepo domain.ActiveProgramRepository,
	cache ScheduleCacheStore,
) *ScheduleService {
	return &ScheduleService{
		maxRepo:     maxRepo,
		profileRepo: profileRepo,
		programRepo: programRepo,
		cache:       cache,
	}
}

// Get returns the current schedule, recompiling when the cache is empty or
// its source hash has drifted from the inputs.
func (s *ScheduleService) Get(ctx context.Context, userID string) (*schedule.ComputedSchedule, error) {
	in, err := s.loadInputs(ctx, userID)
	if err != nil {
		return nil, err
	}
	freshHash := schedule.SourceHash(in)

	if cached, err := s.cache.Get(ctx, userID); err == nil && cached.SourceHash == freshHash {
		return cached, nil
	}

	v, err, _ := s.group.Do(userID, func() (interface{}, error) {
		cs, err := schedule.Compile(in)
		if err != nil {
			return nil, err
		}
		// Cache errors are ignored, the schedule is recomputable.
		_ = s.cache.Put(ctx, userID, cs)
		return cs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*schedule.ComputedSchedule), nil
}

// Hash returns the source hash the current inputs would compile to, without
// compiling. Used to detect staleness cheaply.
func (s *ScheduleService) Hash(ctx context.Context, userID string) (string, error) {
	in, err := s.loadInputs(ctx, userID)
	if err != nil {
		return "", err
	}
	return schedule.SourceHash(in), nil
}

func (s *ScheduleService) loadInputs(ctx context.Context, userID string) (schedule.Inputs, error) {
	program, err := s.programRepo.Get(ctx, userID)
	if err != nil {
		return schedule.Inputs{}, err
	}
	tests, err := s.maxRepo.ListByUser(ctx, userID)
	if err != nil {
		return schedule.Inputs{}, fmt.Errorf("failed to load max tests: %w", err)
	}
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return schedule.Inputs{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return schedule.Inputs{
		Program: program,
		Lifts:   domain.DeriveLifts(tests),
		Profile: profile,
	}, nil
}
