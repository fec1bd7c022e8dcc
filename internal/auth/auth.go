package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account is the login identity bound to an employee by email.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is what the auth domain needs to know about the employee behind an
// account.
type Profile struct {
	EmployeeID int64
	Email      string
	FullName   string
	Active     bool
}

// ProfileLookup resolves the employee that owns an email.
type ProfileLookup interface {
	ProfileByEmail(ctx context.Context, email string) (*Profile, error)
}

type RepositoryAPI interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	DeleteByEmail(ctx context.Context, email string) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(profile Profile) (string, error)
	GenerateRefreshToken(profile Profile) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims represents JWT token claims
type Claims struct {
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
	FullName   string `json:"name"`
	TokenType  string `json:"typ"`
	jwt.RegisteredClaims
}
