// File: internal/services/chat/interface.go
package chat

import (
	"context"

	"github.com/freshcart/chat-service/internal/domain"
)

// RoomProvider handles the room registry.
type RoomProvider interface {
	CreateOrGetRoom(ctx context.Context, userA, userB uint) (*RoomDetail, error)
	ListRoomsForUser(ctx context.Context, userID uint) ([]RoomSummary, error)
}

// MessageProvider handles the per-room message log.
type MessageProvider interface {
	AppendMessage(ctx context.Context, roomID, senderID uint, body string) (*MessageDetail, error)
	ListMessages(ctx context.Context, roomID, requestingUserID uint, limit, offset int) ([]domain.Message, error)
	MarkRead(ctx context.Context, roomID, userID uint) (int64, error)
}

// UnreadProvider exposes the derived unread accounting view.
type UnreadProvider interface {
	UnreadCountForUser(ctx context.Context, userID uint) (int64, error)
}

// Service combines all chat capabilities.
type Service interface {
	RoomProvider
	MessageProvider
	UnreadProvider
}
