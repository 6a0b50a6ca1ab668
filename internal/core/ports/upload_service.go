package ports

import (
	"context"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// UploadInput carries the fields of an anonymous upload. Image is the filename
// the transport layer already wrote to disk.
type UploadInput struct {
	Name        string
	Email       string
	Description string
	Image       string
}

// UploadService implements the unauthenticated story-upload flow.
type UploadService interface {
	Create(ctx context.Context, in UploadInput) (*domain.Upload, error)
	ListAll(ctx context.Context) ([]*domain.Upload, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Upload, error)
}
