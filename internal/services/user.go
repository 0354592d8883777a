package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"invento/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type userService struct {
	userRepo     domain.UserRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewUserService creates the onboarding service.
func NewUserService(userRepo domain.UserRepository, emailService domain.EmailService, logger *slog.Logger) domain.UserService {
	return &userService{userRepo: userRepo, emailService: emailService, logger: logger}
}

func (s *userService) Onboard(ctx context.Context, req *domain.OnboardRequest) (*domain.User, bool, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !emailRegexp.MatchString(email) {
		return nil, false, domain.Validationf("invalid email format")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get user by email: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(
		strings.TrimSpace(req.Name),
		email,
		strings.TrimSpace(req.Phone),
		strings.TrimSpace(req.ClgName),
		strings.ToLower(strings.TrimSpace(req.Gender)),
		now, now,
	)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race with a concurrent onboarding of the same email.
			existing, getErr := s.userRepo.GetByEmail(ctx, email)
			if getErr != nil {
				return nil, false, fmt.Errorf("get user by email: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user onboarded", "invento_id", user.ID)

	if err := s.emailService.SendWelcomeMessage(ctx, &domain.WelcomeMessageEmailData{
		Email: user.Email, Name: user.Name, InventoID: user.ID,
	}); err != nil {
		s.logger.Error("send welcome email", "error", err, "invento_id", user.ID)
	}
	return user, true, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
