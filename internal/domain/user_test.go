// File: internal/domain/user_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Alice@Example.COM", "alice@example.com"},
		{"trims whitespace", "  bob@example.com  ", "bob@example.com"},
		{"already normalized", "carol@example.com", "carol@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestUser_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"valid", "alice@example.com", nil},
		{"empty email", "", ErrEmailRequired},
		{"no at sign", "not-an-email", ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Email: tt.email}
			err := u.IsValid()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUser_HashAndValidatePassword(t *testing.T) {
	u := &User{Email: "alice@example.com"}

	require.NoError(t, u.HashPassword("correct-horse"))
	assert.NotEqual(t, "correct-horse", u.Password, "password must never be stored in plain text")

	assert.NoError(t, u.ValidatePassword("correct-horse"))
	assert.Error(t, u.ValidatePassword("wrong-horse"))
}

func TestUser_HashPassword_TooShort(t *testing.T) {
	u := &User{Email: "alice@example.com"}

	err := u.HashPassword("short")

	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUser_Public_StripsCredential(t *testing.T) {
	u := &User{ID: 7, Email: "alice@example.com", Password: "hashed"}

	public := u.Public()

	assert.Equal(t, uint(7), public.ID)
	assert.Equal(t, "alice@example.com", public.Email)
}
