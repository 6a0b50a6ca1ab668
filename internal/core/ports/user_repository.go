package ports

import (
	"context"
	"time"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the email
	// (or google id) collides with an existing account.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailOrGoogleID matches either identifier; used by the federated
	// flows where the account may have been created before linking.
	FindByEmailOrGoogleID(ctx context.Context, email, googleID string) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// LinkGoogle backfills the google id and profile picture on an existing
	// account (account linking, never a duplicate).
	LinkGoogle(ctx context.Context, id, googleID, picture string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
