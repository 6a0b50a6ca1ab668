package ports

import (
	"context"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// UploadRepository defines persistence for the anonymous upload flow.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (*domain.Upload, error)
	// ListRecent returns the newest uploads first, at most limit entries.
	ListRecent(ctx context.Context, limit int64) ([]*domain.Upload, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Upload, error)
}
