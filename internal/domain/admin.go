package domain

import (
	"context"
	"time"
)

// Role is the permission level of a staff account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleVolunteer Role = "volunteer"
)

// Admin is a staff account allowed to operate on registrations.
type Admin struct {
	Email        string    `bson:"_id" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Salt         string    `bson:"salt" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Claims is the identity carried by a verified token.
type Claims struct {
	Subject string
	Role    Role
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated staff member.
type TokenIssuer interface {
	Issue(subject string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// AdminRepository defines storage for staff accounts.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Upsert(ctx context.Context, admin *Admin) error
}

// AdminAuthService authenticates staff and provisions accounts.
type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *Admin, err error)
	EnsureAdmin(ctx context.Context, email, name, password string, role Role) error
}
