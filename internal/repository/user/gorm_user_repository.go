// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/freshcart/chat-service/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("user with this email already exists")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create inserts a new account. The email must already be normalized;
// a duplicate is reported as ErrDuplicateEmail rather than a raw driver error.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.validateUserInput(user); err != nil {
		log.Printf("[UserRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		// Secure logging - no credential material exposed
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user)
}

// ExistsByEmail checks for an account without exposing its data.
func (r *gormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, errors.New("email is required")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking email existence: %v", err)
		return false, errors.New("database error checking email existence")
	}

	return count > 0, nil
}

func (r *gormUserRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, errors.New("invalid user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking user existence for ID %d: %v", id, err)
		return false, errors.New("database error checking user existence")
	}

	return count > 0, nil
}

// FindAllExcept returns every account except the given one, for the
// contact picker in the client.
func (r *gormUserRepository) FindAllExcept(ctx context.Context, userID uint) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", userID).
		Order("id asc").
		Find(&users).Error

	if err != nil {
		log.Printf("[UserRepository] Database error listing users excluding ID %d: %v", userID, err)
		return nil, errors.New("database error retrieving users")
	}

	return users, nil
}

func (r *gormUserRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error counting users: %v", err)
		return 0, errors.New("database error counting users")
	}
	return count, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormUserRepository) validateUserInput(user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := user.IsValid(); err != nil {
		return err
	}
	if user.Password == "" {
		return errors.New("credential is required")
	}
	return nil
}

// ===== ERROR HANDLING HELPERS =====

// handleFindError - secure error handling without data leakage
func (r *gormUserRepository) handleFindError(err error, user *domain.User) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] Database query error: %v", err)
	return nil, errors.New("database query failed")
}
