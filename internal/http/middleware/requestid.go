package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags each request with an id and puts a logger carrying it
// into the request context, so every log line downstream (handlers, gorm)
// can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)

		reqLogger := log.Logger.With().Str("request_id", reqID).Logger()
		ctx := reqLogger.WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
