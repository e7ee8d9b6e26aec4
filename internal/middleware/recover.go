package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/answerai/answerai/internal/metrics"
)

// Recover turns a panic into a 500 error envelope. It sits outside RequestID,
// so the request id is read back from the response header RequestID already set.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			requestID := GetRequestID(r.Context())
			if requestID == "" {
				requestID = w.Header().Get(requestIDHeader)
			}
			metrics.PanicsRecovered.WithLabelValues(r.Method).Inc()

			m.log.Error().
				Interface("error", err).
				Str("stack", string(debug.Stack())).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Str("request_id", requestID).
				Msg("panic recovered")

			writeError(w, http.StatusInternalServerError, "internal_server_error", "An unexpected error occurred")
		}()

		next.ServeHTTP(w, r)
	})
}
