package middleware

import (
	"net/http"

	"github.com/frahmantamala/talento-plus/pkg/logger"
	"github.com/google/uuid"
)

// RequestID reuses an incoming X-Trace-ID or mints one, and binds it to the
// request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
