package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	h "invento/internal/delivery/http/helpers"
	"invento/internal/domain"
)

type contextKey string

const claimsKey contextKey = "claims"

// SetClaims returns a context carrying the authenticated staff claims. Used by auth middleware.
func SetClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the authenticated staff claims from the context, if present.
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*domain.Claims)
	return c, ok && c != nil
}

// RequireAuth returns a wrapper that validates the Bearer token, checks that its role is one of
// roles (any role when none are given) and stores the claims in the request context.
// A missing or invalid token yields 401; a valid token with the wrong role yields 403.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger, roles ...domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Name, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Name, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Name, "missing token")
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Name, "invalid or expired token")
				return
			}
			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				logger.WarnContext(r.Context(), "role not permitted", "subject", claims.Subject, "role", claims.Role, "path", r.URL.Path)
				h.WriteJSONError(w, http.StatusForbidden, domain.ErrForbidden.Name, "your role cannot perform this action")
				return
			}
			next(w, r.WithContext(SetClaims(r.Context(), claims)))
		}
	}
}
