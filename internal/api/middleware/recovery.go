package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/teamboard/teamboard/internal/api/response"
)

// Recovery is middleware that recovers from panics, logs the stack and
// returns a generic 500. http.ErrAbortHandler is re-raised.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				requestID := GetRequestID(r.Context())
				slog.Error("panic recovered",
					"error", rec,
					"requestId", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Internal(w, "An unexpected error occurred", requestID)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
