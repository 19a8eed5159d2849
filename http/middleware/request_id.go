package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/safespace"
)

// RequestID adds a uuid to the request context under safespace.RequestIDKey.
// logger.LogContext reports it alongside the request.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), safespace.RequestIDKey, uuid.NewString())
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
