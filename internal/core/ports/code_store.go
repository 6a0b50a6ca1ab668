package ports

import (
	"context"
	"time"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// CodeStore holds pending email verifications keyed by address. The interface
// is deliberately a plain keyed store with TTL so the default in-process map
// can be swapped for an external cache in a multi-instance deployment.
type CodeStore interface {
	// Get returns the entry for email, or domain.ErrCodeNotFound.
	Get(ctx context.Context, email string) (*domain.VerificationEntry, error)
	// Set stores (or replaces) the entry. The ttl bounds how long the backing
	// store keeps it; the entry's own ExpiresAt remains authoritative on read.
	Set(ctx context.Context, email string, entry *domain.VerificationEntry, ttl time.Duration) error
	Delete(ctx context.Context, email string) error
}
