package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	appErrors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/internal/transport"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler *Handler
		service *Service
	)

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		tokenGen := NewJWTTokenGenerator(
			"test-access-secret-test-access-secret",
			"test-refresh-secret-test-refresh-secret",
			time.Hour, 24*time.Hour, "")
		profiles := mockProfiles{"ana@empresa.com": {EmployeeID: 7, Email: "ana@empresa.com", FullName: "Ana Ruiz", Active: true}}
		service = NewService(newMockAccountRepository(), profiles, tokenGen, nil, Options{BCryptCost: bcrypt.MinCost}, lg)
		_, _, err := service.EnsureAccount(context.Background(), "ana@empresa.com", "12345")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		handler = NewHandler(transport.NewBaseHandler(lg), service)
	})

	login := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
		handler.Login(rec, req)
		return rec
	}

	ginkgo.It("returns tokens for a valid login", func() {
		rec := login(`{"email":"ana@empresa.com","document":"12345"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var tokens AuthTokens
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &tokens)).To(gomega.Succeed())
		gomega.Expect(tokens.TokenType).To(gomega.Equal("Bearer"))
	})

	ginkgo.It("answers 401 with the error code for bad credentials", func() {
		rec := login(`{"email":"ana@empresa.com","document":"nope"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(string(appErrors.ErrCodeInvalidCredentials)))
	})

	ginkgo.It("answers 400 for a malformed body", func() {
		rec := login(`{`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var protected http.Handler

		ginkgo.BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := ClaimsFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErrors.EmployeeIDFromContext(r.Context())).To(gomega.Equal(claims.EmployeeID))
				w.WriteHeader(http.StatusNoContent)
			}))
		})

		ginkgo.It("lets a valid bearer token through", func() {
			tokens, err := service.Authenticate(context.Background(), LoginDTO{Email: "ana@empresa.com", Document: "12345"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		})

		ginkgo.It("rejects a request without a token", func() {
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
