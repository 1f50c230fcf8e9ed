package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation recognizes a unique-index conflict across the supported
// drivers. Postgres is translated by gorm to ErrDuplicatedKey; the sqlite
// driver surfaces the raw constraint message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
