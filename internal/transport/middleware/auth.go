package middleware

import (
	"net/http"

	errors "github.com/frahmantamala/talento-plus/internal"
	"github.com/frahmantamala/talento-plus/pkg/logger"
)

// EmployeeContext tags the request logger with the authenticated employee id.
// It must run after the auth middleware.
func EmployeeContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := errors.EmployeeIDFromContext(r.Context()); id != 0 {
			r = r.WithContext(logger.With(r.Context(), "employeeID", id))
		}
		next.ServeHTTP(w, r)
	})
}
