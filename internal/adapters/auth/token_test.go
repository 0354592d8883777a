package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invento/internal/domain"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	j := NewJWT("test-secret")

	token, err := j.Issue("admin@invento.in", domain.RoleVolunteer, time.Hour)
	require.NoError(t, err)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &domain.Claims{Subject: "admin@invento.in", Role: domain.RoleVolunteer}, claims)
}

func TestJWT_VerifyRejects(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	j := NewJWT("test-secret")
	j.now = func() time.Time { return now }

	expired, err := j.Issue("a@invento.in", domain.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewJWT("other").Issue("a@invento.in", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	badRole, err := j.Issue("a@invento.in", domain.Role("root"), time.Hour)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
		Role:             domain.RoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        expired,
		"foreign secret": otherSecret,
		"unknown role":   badRole,
		"alg none":       none,
		"garbage":        "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := j.Verify(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
