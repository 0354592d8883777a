package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context. Handlers and the storage calls they make observe the
// deadline through r.Context(); the response itself is written by the handler.
func Timeout(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
