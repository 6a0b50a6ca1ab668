package ports

import (
	"context"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// IdentityVerifier validates a federated ID token (signature and audience)
// and extracts the asserted profile.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.GoogleProfile, error)
}
