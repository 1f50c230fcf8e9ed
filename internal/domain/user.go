// File: internal/domain/user.go
package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email format invalid")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the profile shape exposed to other users.
type PublicUser struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Public strips the credential from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// NormalizeEmail trims and lowercases an address so lookups are
// case-insensitive regardless of how the client typed it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword securely hashes the user's password.
func (u *User) HashPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ValidatePassword compares a plain-text password with the user's hashed password.
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) IsValid() error {
	if u.Email == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(u.Email, "@") {
		return ErrEmailInvalid
	}
	return nil
}
