package ports

import (
	"context"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// RegisterInput carries a local registration request, including the emailed
// verification code the caller must have received first.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	VerificationCode string
}

// AuthService implements the credential and email-verification flows.
type AuthService interface {
	// SendVerification issues a fresh code for a not-yet-registered email.
	SendVerification(ctx context.Context, email string) error
	// Register consumes the verification code and creates a local account.
	// Returns the signed session token alongside the created user.
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// GoogleRegister verifies the Google ID token and stages the extracted
	// profile behind an emailed verification code. Returns the email the code
	// was sent to.
	GoogleRegister(ctx context.Context, idToken string) (string, error)
	// VerifyGoogleRegistration consumes the code and creates the staged
	// federated account.
	VerifyGoogleRegistration(ctx context.Context, email, code string) (string, *domain.User, error)
	GoogleLogin(ctx context.Context, idToken string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateRole(ctx context.Context, userID, role string) (*domain.User, error)
}
