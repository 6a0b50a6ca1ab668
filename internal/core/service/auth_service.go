package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sthaniya/sthaniya-api/internal/core/domain"
	"github.com/sthaniya/sthaniya-api/internal/core/ports"
)

const (
	minPasswordLength = 6
	bcryptCost        = 12
	codeTTL           = 10 * time.Minute
	defaultTokenTTL   = 7 * 24 * time.Hour
)

// AuthService implements registration, login, the Google federated flows, and
// the email verification gate in front of account creation.
type AuthService struct {
	users    ports.UserRepository
	codes    ports.CodeStore
	mailer   ports.Mailer
	identity ports.IdentityVerifier

	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	codes ports.CodeStore,
	mailer ports.Mailer,
	identity ports.IdentityVerifier,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		users:     users,
		codes:     codes,
		mailer:    mailer,
		identity:  identity,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// SendVerification issues a 6-digit code for a not-yet-registered email and
// dispatches it by mail. The code never appears in the response or the logs.
func (s *AuthService) SendVerification(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	entry := &domain.VerificationEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL),
	}
	if err := s.codes.Set(ctx, email, entry, codeTTL); err != nil {
		return err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("verification mail dispatch failed")
		return domain.ErrMailDelivery
	}

	s.log.Info().Str("email", email).Msg("verification code sent")
	return nil
}

// Register consumes the verification code and creates a local account.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return "", nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}
	if in.VerificationCode == "" {
		return "", nil, fmt.Errorf("%w: verification code is required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters long", domain.ErrValidation, minPasswordLength)
	}

	if _, err := s.consumeCode(ctx, email, in.VerificationCode); err != nil {
		return "", nil, err
	}

	// The code was requested before the account existed; re-check to close the
	// race between request and consumption.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          in.Name,
		Email:         email,
		PasswordHash:  string(hash),
		AuthProvider:  domain.ProviderLocal,
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return token, created, nil
}

// Login verifies a local password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.AuthProvider == domain.ProviderGoogle && user.PasswordHash == "" {
		return "", nil, domain.ErrGoogleAccount
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	s.stampLogin(ctx, user)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GoogleRegister verifies the ID token, stages the profile behind an emailed
// code, and returns the address the code was sent to. Account creation is
// deferred to VerifyGoogleRegistration.
func (s *AuthService) GoogleRegister(ctx context.Context, idToken string) (string, error) {
	profile, err := s.identity.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("google id token rejected")
		return "", domain.ErrGoogleAuthFailed
	}
	email := normalizeEmail(profile.Email)

	if _, err := s.users.FindByEmailOrGoogleID(ctx, email, profile.GoogleID); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}
	entry := &domain.VerificationEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(codeTTL),
		Google:    profile,
	}
	if err := s.codes.Set(ctx, email, entry, codeTTL); err != nil {
		return "", err
	}

	if err := s.mailer.SendVerificationCode(ctx, email, code); err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("verification mail dispatch failed")
		return "", domain.ErrMailDelivery
	}
	return email, nil
}

// VerifyGoogleRegistration consumes the code and creates the staged account.
func (s *AuthService) VerifyGoogleRegistration(ctx context.Context, email, code string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if code == "" {
		return "", nil, fmt.Errorf("%w: verification code is required", domain.ErrValidation)
	}

	entry, err := s.consumeCode(ctx, email, code)
	if err != nil {
		return "", nil, err
	}
	if entry.Google == nil {
		// A local code cannot complete a federated registration.
		return "", nil, domain.ErrCodeNotFound
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:           entry.Google.Name,
		Email:          normalizeEmail(entry.Google.Email),
		AuthProvider:   domain.ProviderGoogle,
		GoogleID:       entry.Google.GoogleID,
		ProfilePicture: entry.Google.ProfilePicture,
		EmailVerified:  true,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("google user registered")
	return token, created, nil
}

// GoogleLogin verifies the ID token and signs in the matching account,
// backfilling the google id on a previously local account.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (string, *domain.User, error) {
	profile, err := s.identity.Verify(ctx, idToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("google id token rejected")
		return "", nil, domain.ErrGoogleAuthFailed
	}
	email := normalizeEmail(profile.Email)

	user, err := s.users.FindByEmailOrGoogleID(ctx, email, profile.GoogleID)
	if err != nil {
		return "", nil, err
	}

	if user.GoogleID == "" {
		if err := s.users.LinkGoogle(ctx, user.ID, profile.GoogleID, profile.ProfilePicture); err != nil {
			return "", nil, err
		}
		user.GoogleID = profile.GoogleID
		user.ProfilePicture = profile.ProfilePicture
	}

	s.stampLogin(ctx, user)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the sanitized account for the given id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateRole records the user's chosen role.
func (s *AuthService) UpdateRole(ctx context.Context, userID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", domain.ErrValidation, domain.RoleUser, domain.RoleContributor)
	}
	return s.users.UpdateRole(ctx, userID, role)
}

// consumeCode enforces the verification gate: expiry, the attempt budget, and
// single use. On a wrong code the attempt counter is persisted back so the
// budget survives across requests.
func (s *AuthService) consumeCode(ctx context.Context, email, code string) (*domain.VerificationEntry, error) {
	entry, err := s.codes.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if entry.Expired(now) {
		_ = s.codes.Delete(ctx, email)
		return nil, domain.ErrCodeExpired
	}
	if entry.Attempts >= domain.MaxVerificationAttempts {
		_ = s.codes.Delete(ctx, email)
		return nil, domain.ErrTooManyAttempts
	}
	if entry.Code != code {
		entry.Attempts++
		if err := s.codes.Set(ctx, email, entry, time.Until(entry.ExpiresAt)); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to persist attempt counter")
		}
		return nil, domain.ErrCodeInvalid
	}

	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to delete consumed code")
	}
	return entry, nil
}

func (s *AuthService) stampLogin(ctx context.Context, user *domain.User) {
	now := time.Now().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
		return
	}
	user.LastLogin = &now
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateCode returns a uniformly random 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
