package domain

import (
	"context"
)

// ArchiveRepository defines the interface for history export storage
type ArchiveRepository interface {
	// Upload saves an archive object and returns its access URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
