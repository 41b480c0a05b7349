// Package middleware provides chi middleware for the HTTP API: request
// tracing and JWT authentication.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/shaouxyz/mentormatch-sub003/internal/api/shared"
)

// TraceMiddleware adds a trace ID to the request context.
// This middleware should be applied early in the middleware chain so that
// all subsequent handlers have access to the trace ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		log := slog.With(slog.String("trace_id", shared.GetTraceID(ctx)))
		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
