package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

const recentUploadsLimit = 50

// UploadService implements the anonymous upload flow.
type UploadService struct {
	repo ports.UploadRepository
	log  zerolog.Logger
}

func NewUploadService(repo ports.UploadRepository, log zerolog.Logger) *UploadService {
	return &UploadService{repo: repo, log: log}
}

// Create persists an upload record. The image file is already on disk; when
// persistence fails the transport layer removes it as compensation.
func (s *UploadService) Create(ctx context.Context, in ports.UploadInput) (*domain.Upload, error) {
	if in.Name == "" || in.Email == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: name, email, and description are required", domain.ErrValidation)
	}
	if in.Image == "" {
		return nil, fmt.Errorf("%w: image file is required", domain.ErrValidation)
	}

	now := time.Now().UTC()
	upload := &domain.Upload{
		Name:        in.Name,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, upload)
	if err != nil {
		s.log.Error().Err(err).Str("email", upload.Email).Msg("failed to create upload")
		return nil, err
	}

	s.log.Info().Str("upload_id", created.ID).Str("email", created.Email).Msg("upload created")
	return created, nil
}

// ListAll returns the newest uploads, capped at 50.
func (s *UploadService) ListAll(ctx context.Context) ([]*domain.Upload, error) {
	return s.repo.ListRecent(ctx, recentUploadsLimit)
}

// ListByEmail returns a submitter's uploads, newest first.
func (s *UploadService) ListByEmail(ctx context.Context, email string) ([]*domain.Upload, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
