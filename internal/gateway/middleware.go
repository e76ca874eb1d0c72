package gateway

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/SebastienMelki/tablegate/internal/observability"
)

// requestIDHeader carries the request ID on responses, as API Gateway does.
const requestIDHeader = "X-Amzn-RequestId"

type contextKey string

const requestIDContextKey contextKey = "request_id"

// RequestID assigns a time-sortable request ID to every request, exposes it
// in the response header, and injects it into the request context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := uuid.Must(uuid.NewV7()).String()
			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestID retrieves the request ID from the context, or "" if unset.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// StageRateLimit returns middleware applying a single token bucket to the
// whole stage. Rejected requests receive 429.
func StageRateLimit(cfg RateLimitConfig, metrics *observability.Metrics) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.HTTPThrottled.Add(r.Context(), 1)
				}
				writeMessage(w, http.StatusTooManyRequests, "message", msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
