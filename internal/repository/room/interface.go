package room

import (
	"context"

	"github.com/freshcart/chat-service/internal/domain"
)

// RoomRepository handles chat room registry data operations.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error)
	FindByID(ctx context.Context, id uint) (*domain.ChatRoom, error)
	FindByPair(ctx context.Context, userA, userB uint) (*domain.ChatRoom, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.ChatRoom, error)
	CountRooms(ctx context.Context) (int64, error)
}
