package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"invento/internal/domain"
)

const minPasswordLen = 8

var errBadCredentials = domain.ErrUnauthorized.WithMessage("invalid email or password")

type adminAuthService struct {
	admins      domain.AdminRepository
	hasher      domain.PasswordHasher
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	logger      *slog.Logger
}

// NewAdminAuthService creates the staff login service.
func NewAdminAuthService(admins domain.AdminRepository, hasher domain.PasswordHasher, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, logger *slog.Logger) domain.AdminAuthService {
	return &adminAuthService{
		admins:      admins,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		logger:      logger,
	}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, errBadCredentials
		}
		return "", nil, fmt.Errorf("get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		s.logger.Warn("staff login failed", "email", email)
		return "", nil, errBadCredentials
	}
	token, err := s.tokenIssuer.Issue(admin.Email, admin.Role, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, admin, nil
}

// EnsureAdmin creates or resets a staff account.
func (s *adminAuthService) EnsureAdmin(ctx context.Context, email, name, password string, role domain.Role) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return domain.Validationf("invalid email format")
	}
	if len(password) < minPasswordLen {
		return domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if role != domain.RoleAdmin && role != domain.RoleVolunteer {
		return domain.Validationf("unknown role %q", role)
	}
	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return err
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return err
	}
	admin := &domain.Admin{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.admins.Upsert(ctx, admin); err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	s.logger.Info("staff account ensured", "email", email, "role", role)
	return nil
}
