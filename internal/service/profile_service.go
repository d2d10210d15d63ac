package service

import (
	"context"
	"fmt"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// ProfileService manages per-user training settings and plate inventories.
type ProfileService struct {
	profileRepo domain.ProfileRepository
	cache       CacheInvalidator
}

func NewProfileService(profileRepo domain.ProfileRepository, cache CacheInvalidator) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, cache: cache}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.Get(ctx, userID)
}

// UpdateProfileRequest carries the full replacement settings. Inventories are
// normalized, not validated per-plate; counts clamp into range.
type UpdateProfileRequest struct {
	RoundingIncrement  float64
	BarWeight          float64
	MaxType            domain.MaxType
	DefaultRestSeconds int
	BarbellPlates      domain.PlateInventory
	BeltPlates         domain.PlateInventory
}

func (s *ProfileService) Update(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	if req.RoundingIncrement != 2.5 && req.RoundingIncrement != 5 {
		return nil, fmt.Errorf("%w: rounding increment must be 2.5 or 5", domain.ErrValidation)
	}
	if req.BarWeight <= 0 || req.BarWeight > domain.MaxRecordableLb {
		return nil, fmt.Errorf("%w: bar weight out of range", domain.ErrValidation)
	}
	if req.MaxType != domain.MaxTypeTrue && req.MaxType != domain.MaxTypeTraining {
		return nil, fmt.Errorf("%w: unknown max type %q", domain.ErrValidation, req.MaxType)
	}
	if req.DefaultRestSeconds < 0 || req.DefaultRestSeconds > 3600 {
		return nil, fmt.Errorf("%w: default rest out of range", domain.ErrValidation)
	}

	if req.BarbellPlates == nil {
		req.BarbellPlates = domain.DefaultBarbellInventory()
	}
	if req.BeltPlates == nil {
		req.BeltPlates = domain.DefaultBeltInventory()
	}
	req.BarbellPlates.Normalize()
	req.BeltPlates.Normalize()

	profile := &domain.Profile{
		UserID:             userID,
		RoundingIncrement:  req.RoundingIncrement,
		BarWeight:          req.BarWeight,
		MaxType:            req.MaxType,
		DefaultRestSeconds: req.DefaultRestSeconds,
		BarbellPlates:      req.BarbellPlates,
		BeltPlates:         req.BeltPlates,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// Increment, bar weight, and inventory all feed the compiled schedule.
	_ = s.cache.InvalidateUserCache(ctx, userID)
	return profile, nil
}
