// Package identity verifies federated ID tokens.
package identity

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
)

// GoogleVerifier implements ports.IdentityVerifier against Google's token
// endpoint: the token's signature and audience are checked before any claim
// is trusted.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*domain.GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate google id token: %w", err)
	}

	profile := &domain.GoogleProfile{
		GoogleID: payload.Subject,
	}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.Name = name
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		profile.ProfilePicture = picture
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("google id token missing email claim")
	}
	return profile, nil
}
