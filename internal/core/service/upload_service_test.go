package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

type stubUploadRepo struct {
	uploads   []*domain.Upload
	lastLimit int64
	nextID    int
}

func (r *stubUploadRepo) Create(_ context.Context, upload *domain.Upload) (*domain.Upload, error) {
	clone := *upload
	r.nextID++
	clone.ID = fmt.Sprintf("upload-%d", r.nextID)
	r.uploads = append(r.uploads, &clone)
	return &clone, nil
}

func (r *stubUploadRepo) ListRecent(_ context.Context, limit int64) ([]*domain.Upload, error) {
	r.lastLimit = limit
	return r.uploads, nil
}

func (r *stubUploadRepo) ListByEmail(_ context.Context, email string) ([]*domain.Upload, error) {
	var out []*domain.Upload
	for _, u := range r.uploads {
		if u.Email == email {
			out = append(out, u)
		}
	}
	return out, nil
}

func validUploadInput() ports.UploadInput {
	return ports.UploadInput{
		Name:        "Alice",
		Email:       "Alice@Example.com",
		Description: "Street food from my childhood",
		Image:       "image-123.jpg",
	}
}

func TestUploadService_Create(t *testing.T) {
	repo := &stubUploadRepo{}
	svc := NewUploadService(repo, zerolog.Nop())

	upload, err := svc.Create(context.Background(), validUploadInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if upload.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if upload.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", upload.Email)
	}
	if upload.CreatedAt.IsZero() || upload.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be stamped")
	}
}

func TestUploadService_Create_Validation(t *testing.T) {
	repo := &stubUploadRepo{}
	svc := NewUploadService(repo, zerolog.Nop())

	in := validUploadInput()
	in.Description = ""
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing description, got %v", err)
	}

	in = validUploadInput()
	in.Image = ""
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing image, got %v", err)
	}
}

func TestUploadService_ListAll_Capped(t *testing.T) {
	repo := &stubUploadRepo{}
	svc := NewUploadService(repo, zerolog.Nop())

	if _, err := svc.ListAll(context.Background()); err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if repo.lastLimit != recentUploadsLimit {
		t.Fatalf("expected limit %d, got %d", recentUploadsLimit, repo.lastLimit)
	}
}

func TestUploadService_ListByEmail_Normalizes(t *testing.T) {
	repo := &stubUploadRepo{}
	svc := NewUploadService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validUploadInput()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	uploads, err := svc.ListByEmail(context.Background(), "  ALICE@example.com ")
	if err != nil {
		t.Fatalf("ListByEmail failed: %v", err)
	}
	if len(uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(uploads))
	}
}
