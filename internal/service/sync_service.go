package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// SyncService reconciles data across a user's devices. Records are whole
// documents keyed by ULID; apply is a blind upsert per record, the newest
// write of a given id wins. There is no field-level merge.
type SyncService struct {
	maxRepo domain.MaxTestRepository
	logRepo domain.SessionLogRepository
	cache   CacheInvalidator
}

func NewSyncService(maxRepo domain.MaxTestRepository, logRepo domain.SessionLogRepository, cache CacheInvalidator) *SyncService {
	return &SyncService{maxRepo: maxRepo, logRepo: logRepo, cache: cache}
}

// ChangeSet is everything that changed server-side since a device last asked.
type ChangeSet struct {
	MaxTests    []*domain.MaxTest    `json:"max_tests"`
	SessionLogs []*domain.SessionLog `json:"session_logs"`
	ServerTime  time.Time            `json:"server_time"`
}

// Changes returns records updated after since. Devices persist ServerTime and
// hand it back as the next since.
func (s *SyncService) Changes(ctx context.Context, userID string, since time.Time) (*ChangeSet, error) {
	now := time.Now()

	tests, err := s.maxRepo.ListUpdatedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListUpdatedSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	return &ChangeSet{
		MaxTests:    tests,
		SessionLogs: logs,
		ServerTime:  now,
	}, nil
}

// ApplyRequest is a device's batch of locally created or corrected records.
type ApplyRequest struct {
	MaxTests    []*domain.MaxTest    `json:"max_tests"`
	SessionLogs []*domain.SessionLog `json:"session_logs"`
}

// Apply upserts each record by id. Records claiming a different user are
// rejected outright rather than silently skipped.
func (s *SyncService) Apply(ctx context.Context, userID string, req ApplyRequest) error {
	for _, test := range req.MaxTests {
		if test.ID == "" {
			return fmt.Errorf("%w: max test without id", domain.ErrValidation)
		}
		if test.UserID != userID {
			return fmt.Errorf("%w: max test %s belongs to another user", domain.ErrValidation, test.ID)
		}
		if err := s.maxRepo.UpsertByID(ctx, test); err != nil {
			return err
		}
	}
	for _, log := range req.SessionLogs {
		if log.ID == "" {
			return fmt.Errorf("%w: session log without id", domain.ErrValidation)
		}
		if log.UserID != userID {
			return fmt.Errorf("%w: session log %s belongs to another user", domain.ErrValidation, log.ID)
		}
		if err := s.logRepo.UpsertByID(ctx, log); err != nil {
			return err
		}
	}

	if len(req.MaxTests) > 0 {
		_ = s.cache.InvalidateUserCache(ctx, userID)
	}
	return nil
}
