package user

import (
	"context"

	"github.com/freshcart/chat-service/internal/domain"
)

// UserRepository handles account directory data operations.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	FindAllExcept(ctx context.Context, userID uint) ([]domain.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
