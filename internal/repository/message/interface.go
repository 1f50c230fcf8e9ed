package message

import (
	"context"

	"github.com/freshcart/chat-service/internal/domain"
)

// MessageRepository handles the per-room message log and its read flags.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByRoomID(ctx context.Context, roomID uint) ([]domain.Message, error)
	FindByRoomIDWithPagination(ctx context.Context, roomID uint, limit, offset int) ([]domain.Message, int64, error)
	FindLastByRoomID(ctx context.Context, roomID uint) (*domain.Message, error)
	MarkRoomRead(ctx context.Context, roomID, readerID uint) (int64, error)
	CountUnreadInRoom(ctx context.Context, roomID, userID uint) (int64, error)
	CountUnreadForUser(ctx context.Context, userID uint) (int64, error)
	CountByRoomID(ctx context.Context, roomID uint) (int64, error)
}
