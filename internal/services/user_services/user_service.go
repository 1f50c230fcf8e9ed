// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshcart/chat-service/internal/auth"
	"github.com/freshcart/chat-service/internal/domain"
	"github.com/freshcart/chat-service/internal/repository/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("user with this email already exists")

// UserService is the in-process user directory: registration, login and
// the contact listing the chat client builds rooms from.
type UserService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       Logger
}

func NewUserService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Register creates a new account. The email is normalized (trimmed,
// lowercased) before the uniqueness check so lookups stay case-insensitive.
func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	u := &domain.User{Email: email}
	if err := u.IsValid(); err != nil {
		s.logger.Warn("registration validation failed", "email", maskEmail(email), "error", err.Error())
		return nil, err
	}
	if err := u.HashPassword(password); err != nil {
		s.logger.Warn("registration password rejected", "email", maskEmail(email), "error", err.Error())
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("registration existence check failed", "error", err, "email", maskEmail(email))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		s.logger.Warn("registration failed - email already exists", "email", maskEmail(email))
		return nil, ErrEmailTaken
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			// Concurrent registration slipped past the existence check;
			// the unique index caught it.
			return nil, ErrEmailTaken
		}
		s.logger.Error("user creation failed", "error", err, "email", maskEmail(email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered successfully", "user_id", created.ID, "email", maskEmail(email))
	return created, nil
}

// Login authenticates a user and returns the account plus a signed JWT.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found", "email", maskEmail(email))
		return nil, "", ErrInvalidCredentials
	}

	if err := account.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "email", maskEmail(email), "user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(account.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "error", err, "user_id", account.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", account.ID, "email", maskEmail(email))
	return account, token, nil
}

// ListOthers returns every account's public profile except the given user,
// for the client's contact picker.
func (s *UserService) ListOthers(ctx context.Context, userID uint) ([]domain.PublicUser, error) {
	accounts, err := s.userRepo.FindAllExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]domain.PublicUser, 0, len(accounts))
	for i := range accounts {
		profiles = append(profiles, accounts[i].Public())
	}
	return profiles, nil
}

// GetProfile loads a single public profile.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*domain.PublicUser, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := account.Public()
	return &profile, nil
}

// ValidateJWTToken validates a JWT and returns the user ID it carries.
func (s *UserService) ValidateJWTToken(tokenString string) (uint, error) {
	return auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
}
