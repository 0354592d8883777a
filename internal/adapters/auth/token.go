package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"invento/internal/domain"
)

const issuer = "invento-api"

type jwtClaims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

// JWT issues and verifies HS256 staff tokens.
type JWT struct {
	secret []byte
	now    func() time.Time
}

// NewJWT returns a token issuer and verifier sharing secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

var (
	_ domain.TokenIssuer   = (*JWT)(nil)
	_ domain.TokenVerifier = (*JWT)(nil)
)

func (j *JWT) Issue(subject string, role domain.Role, expiry time.Duration) (string, error) {
	now := j.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify parses token and returns its claims. Any failure yields ErrUnauthorized.
func (j *JWT) Verify(token string) (*domain.Claims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrUnauthorized.WithMessage("token expired")
		}
		return nil, domain.ErrUnauthorized.WithMessage("invalid token")
	}
	if claims.Role != domain.RoleAdmin && claims.Role != domain.RoleVolunteer {
		return nil, domain.ErrUnauthorized.WithMessage("invalid token role")
	}
	return &domain.Claims{Subject: claims.Subject, Role: claims.Role}, nil
}
