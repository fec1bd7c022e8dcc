package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/core/events"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock account repository for testing
type mockAccountRepository struct {
	mu            sync.Mutex
	accounts      map[string]*Account
	nextID        int64
	returnError   bool
	errorToReturn error
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{accounts: map[string]*Account{}}
}

func (m *mockAccountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.accounts[email], nil
}

func (m *mockAccountRepository) Create(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[account.Email]; exists {
		return errors.New("UNIQUE constraint failed: accounts.email")
	}
	m.nextID++
	account.ID = m.nextID
	m.accounts[account.Email] = account
	return nil
}

func (m *mockAccountRepository) DeleteByEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, email)
	return nil
}

type mockProfiles map[string]*Profile

func (m mockProfiles) ProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	return m[email], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service   *Service
		repo      *mockAccountRepository
		profiles  mockProfiles
		publisher *recordingPublisher
		tokenGen  *JWTTokenGenerator
		ctx       context.Context
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockAccountRepository()
		profiles = mockProfiles{
			"ana@empresa.com": {EmployeeID: 7, Email: "ana@empresa.com", FullName: "Ana Ruiz", Active: true},
			"leo@empresa.com": {EmployeeID: 8, Email: "leo@empresa.com", FullName: "Leo Paz", Active: false},
		}
		publisher = &recordingPublisher{}
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-test-access-secret",
			"test-refresh-secret-test-refresh-secret",
			15*time.Minute, 24*time.Hour, "talento-plus")
		service = NewService(repo, profiles, tokenGen, publisher,
			Options{BCryptCost: bcrypt.MinCost, MinCredentialLength: 3},
			slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("EnsureAccount", func() {
		ginkgo.It("should create an account keyed by the normalized email", func() {
			// When
			account, created, err := service.EnsureAccount(ctx, "  Ána@Empresa.com ", "12345")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created).To(gomega.BeTrue())
			gomega.Expect(account.Email).To(gomega.Equal("ana@empresa.com"))
			gomega.Expect(VerifyPassword(account.PasswordHash, "12345")).To(gomega.Succeed())
			gomega.Expect(publisher.events).To(gomega.HaveLen(1))
			gomega.Expect(publisher.events[0].EventType()).To(gomega.Equal(events.EventTypeAccountProvisioned))
		})

		ginkgo.It("should be idempotent", func() {
			first, created, err := service.EnsureAccount(ctx, "ana@empresa.com", "12345")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created).To(gomega.BeTrue())

			second, created, err := service.EnsureAccount(ctx, "ANA@empresa.com", "99999")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created).To(gomega.BeFalse())
			gomega.Expect(second.ID).To(gomega.Equal(first.ID))
			gomega.Expect(VerifyPassword(second.PasswordHash, "12345")).To(gomega.Succeed())
			gomega.Expect(publisher.events).To(gomega.HaveLen(1))
		})

		ginkgo.It("should reject credentials below the minimum length", func() {
			_, created, err := service.EnsureAccount(ctx, "ana@empresa.com", "12")
			gomega.Expect(created).To(gomega.BeFalse())
			gomega.Expect(errors.Is(err, appErrors.ErrCredentialPolicy)).To(gomega.BeTrue())
			gomega.Expect(repo.accounts).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject credentials longer than bcrypt accepts", func() {
			long := make([]byte, 73)
			for i := range long {
				long[i] = '1'
			}
			_, _, err := service.EnsureAccount(ctx, "ana@empresa.com", string(long))
			gomega.Expect(errors.Is(err, appErrors.ErrCredentialPolicy)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject malformed emails", func() {
			_, _, err := service.EnsureAccount(ctx, "not an email", "12345")
			gomega.Expect(errors.Is(err, appErrors.ErrCredentialPolicy)).To(gomega.BeTrue())
		})

		ginkgo.It("should surface store failures", func() {
			repo.returnError = true
			repo.errorToReturn = errors.New("database error")
			_, _, err := service.EnsureAccount(ctx, "ana@empresa.com", "12345")
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("database error")))
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.BeforeEach(func() {
			_, _, err := service.EnsureAccount(ctx, "ana@empresa.com", "12345")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, _, err = service.EnsureAccount(ctx, "leo@empresa.com", "67890")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return tokens carrying the employee identity", func() {
				// When
				tokens, err := service.Authenticate(ctx, LoginDTO{Email: "Ana@Empresa.com", Document: "12345"})

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
				gomega.Expect(tokens.ExpiresIn).To(gomega.Equal(int64(900)))

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.EmployeeID).To(gomega.Equal(int64(7)))
				gomega.Expect(claims.Email).To(gomega.Equal("ana@empresa.com"))
				gomega.Expect(claims.FullName).To(gomega.Equal("Ana Ruiz"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject a wrong document", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "ana@empresa.com", Document: "00000"})
				gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown email", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "nobody@empresa.com", Document: "12345"})
				gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an inactive employee", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "leo@empresa.com", Document: "67890"})
				gomega.Expect(err).To(gomega.MatchError(appErrors.ErrAccountInactive))
			})

			ginkgo.It("should report missing fields", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "ana@empresa.com"})
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("document is required"))
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		var pair AuthTokens

		ginkgo.BeforeEach(func() {
			_, _, err := service.EnsureAccount(ctx, "ana@empresa.com", "12345")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			pair, err = service.Authenticate(ctx, LoginDTO{Email: "ana@empresa.com", Document: "12345"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should issue a fresh pair from a refresh token", func() {
			next, err := service.RefreshTokens(ctx, pair.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(next.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.EmployeeID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should not accept an access token as a refresh token", func() {
			_, err := service.RefreshTokens(ctx, pair.AccessToken)
			gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidToken))
		})

		ginkgo.It("should fail once the account is gone", func() {
			gomega.Expect(service.DeleteAccount(ctx, "ana@empresa.com")).To(gomega.Succeed())
			_, err := service.RefreshTokens(ctx, pair.RefreshToken)
			gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidToken))
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject a refresh token used as access token", func() {
			refresh, err := tokenGen.GenerateRefreshToken(Profile{EmployeeID: 1, Email: "a@b.co"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.ValidateAccessToken(refresh)
			gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidToken))
		})

		ginkgo.It("should report expiry distinctly", func() {
			expired := NewJWTTokenGenerator(
				"test-access-secret-test-access-secret",
				"test-refresh-secret-test-refresh-secret",
				-time.Minute, time.Hour, "talento-plus")
			token, err := expired.GenerateAccessToken(Profile{EmployeeID: 1})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.MatchError(appErrors.ErrTokenExpired))
		})

		ginkgo.It("should reject garbage", func() {
			_, err := service.ValidateAccessToken("not-a-jwt")
			gomega.Expect(err).To(gomega.MatchError(appErrors.ErrInvalidToken))
		})
	})
})
