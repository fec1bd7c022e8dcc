package auth

import (
	"context"
	"fmt"
	"log/slog"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/core/common/validation"
	"github.com/frahmantamala/talento-plus/internal/core/events"
	"github.com/frahmantamala/talento-plus/pkg/textnorm"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes; longer credentials are refused
// instead of silently truncated.
const maxCredentialBytes = 72

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Options struct {
	BCryptCost          int
	MinCredentialLength int
}

type Service struct {
	repo      RepositoryAPI
	profiles  ProfileLookup
	tokens    TokenGeneratorAPI
	publisher events.Publisher
	opts      Options
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, profiles ProfileLookup, tokens TokenGeneratorAPI, publisher events.Publisher, opts Options, logger *slog.Logger) *Service {
	if opts.BCryptCost == 0 {
		opts.BCryptCost = bcrypt.DefaultCost
	}
	if opts.MinCredentialLength <= 0 {
		opts.MinCredentialLength = 3
	}
	return &Service{
		repo:      repo,
		profiles:  profiles,
		tokens:    tokens,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// SetProfileLookup wires the employee side after construction, since the
// employee service itself depends on this one for provisioning.
func (s *Service) SetProfileLookup(profiles ProfileLookup) {
	s.profiles = profiles
}

// EnsureAccount guarantees an account exists for email, creating one whose
// credential is credential when absent. The bool reports whether it was
// created by this call.
func (s *Service) EnsureAccount(ctx context.Context, email, credential string) (*Account, bool, error) {
	email = textnorm.Fold(email)
	if err := s.checkPolicy(email, credential); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("lookup account %s: %w", email, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := HashPassword(credential, s.opts.BCryptCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash credential: %w", err)
	}

	account := &Account{Email: email, PasswordHash: hash, IsActive: true}
	if err := s.repo.Create(ctx, account); err != nil {
		// another writer may have won the race for the same email
		if again, lookupErr := s.repo.GetByEmail(ctx, email); lookupErr == nil && again != nil {
			return again, false, nil
		}
		return nil, false, fmt.Errorf("create account %s: %w", email, err)
	}

	s.logger.Info("account provisioned", "account_id", account.ID, "email", email)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewAccountProvisionedEvent(account.ID, email)); err != nil {
			s.logger.Warn("failed to publish account event", "email", email, "error", err)
		}
	}
	return account, true, nil
}

func (s *Service) checkPolicy(email, credential string) error {
	v := validation.NewValidator()
	v.Field("email", email).Required().Email()
	v.Field("credential", credential).
		Required().
		MinLength(s.opts.MinCredentialLength).
		MaxLength(maxCredentialBytes)
	if appErr := v.Validate(); appErr != nil {
		return appErrors.ErrCredentialPolicy.WithDetails(appErr.Details)
	}
	return nil
}

// AccountExists reports whether email already has a login.
func (s *Service) AccountExists(ctx context.Context, email string) (bool, error) {
	account, err := s.repo.GetByEmail(ctx, textnorm.Fold(email))
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

func (s *Service) DeleteAccount(ctx context.Context, email string) error {
	return s.repo.DeleteByEmail(ctx, textnorm.Fold(email))
}

// Authenticate checks an email and document pair and returns a token pair.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	email := textnorm.Fold(dto.Email)
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthTokens{}, appErrors.NewInternalError("failed to load account", err)
	}
	if account == nil {
		return AuthTokens{}, appErrors.ErrInvalidCredentials
	}
	if err := VerifyPassword(account.PasswordHash, dto.Document); err != nil {
		return AuthTokens{}, appErrors.ErrInvalidCredentials
	}
	if !account.IsActive {
		return AuthTokens{}, appErrors.ErrAccountInactive
	}

	profile, err := s.profileFor(ctx, email)
	if err != nil {
		return AuthTokens{}, err
	}

	s.logger.Info("login succeeded", "employee_id", profile.EmployeeID)
	return s.issue(*profile)
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	account, err := s.repo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return AuthTokens{}, appErrors.NewInternalError("failed to load account", err)
	}
	if account == nil {
		return AuthTokens{}, appErrors.ErrInvalidToken
	}
	if !account.IsActive {
		return AuthTokens{}, appErrors.ErrAccountInactive
	}

	profile, err := s.profileFor(ctx, claims.Email)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.issue(*profile)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateAccessToken(tokenString)
}

func (s *Service) profileFor(ctx context.Context, email string) (*Profile, error) {
	if s.profiles == nil {
		return nil, appErrors.NewInternalError("profile lookup not configured", nil)
	}
	profile, err := s.profiles.ProfileByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.NewInternalError("failed to load employee", err)
	}
	if profile == nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	if !profile.Active {
		return nil, appErrors.ErrAccountInactive
	}
	return profile, nil
}

func (s *Service) issue(profile Profile) (AuthTokens, error) {
	access, err := s.tokens.GenerateAccessToken(profile)
	if err != nil {
		return AuthTokens{}, appErrors.NewInternalError("failed to sign token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(profile)
	if err != nil {
		return AuthTokens{}, appErrors.NewInternalError("failed to sign token", err)
	}

	var expiresIn int64
	if gen, ok := s.tokens.(*JWTTokenGenerator); ok {
		expiresIn = int64(gen.AccessTokenTTL.Seconds())
	}
	return AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
