package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tylerjacox/TB3-Tactical-Barbell-sub000/internal/domain"
)

// ExportService bundles a user's full training history into a JSON archive
// and stores it on the S3-compatible archive store.
type ExportService struct {
	maxRepo domain.MaxTestRepository
	logRepo domain.SessionLogRepository
	archive domain.ArchiveRepository
}

func NewExportService(maxRepo domain.MaxTestRepository, logRepo domain.SessionLogRepository, archive domain.ArchiveRepository) *ExportService {
	return &ExportService{maxRepo: maxRepo, logRepo: logRepo, archive: archive}
}

// HistoryArchive is the exported document layout.
type HistoryArchive struct {
	UserID      string               `json:"user_id"`
	ExportedAt  time.Time            `json:"exported_at"`
	MaxTests    []*domain.MaxTest    `json:"max_tests"`
	SessionLogs []*domain.SessionLog `json:"session_logs"`
}

// ExportResult points at the stored archive.
type ExportResult struct {
	URL        string    `json:"url"`
	Key        string    `json:"key"`
	ExportedAt time.Time `json:"exported_at"`
}

// Export writes one archive object per call and returns its location.
func (s *ExportService) Export(ctx context.Context, userID string) (*ExportResult, error) {
	tests, err := s.maxRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	archive := HistoryArchive{
		UserID:      userID,
		ExportedAt:  now,
		MaxTests:    tests,
		SessionLogs: logs,
	}
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal archive: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, newULID())
	url, err := s.archive.Upload(ctx, key, data, "application/json")
	if err != nil {
		return nil, err
	}
	return &ExportResult{URL: url, Key: key, ExportedAt: now}, nil
}
