// File: internal/services/chat/types.go
package chat

import (
	"time"

	"github.com/freshcart/chat-service/internal/domain"
)

// RoomDetail is a room record joined with both participants' public profiles.
type RoomDetail struct {
	ID         uint      `json:"id"`
	User1ID    uint      `json:"user1_id"`
	User2ID    uint      `json:"user2_id"`
	User1Email string    `json:"user1_email"`
	User2Email string    `json:"user2_email"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomSummary is one entry of a user's room list: the other participant,
// the latest message (nil for an empty room) and the unread counter.
type RoomSummary struct {
	ID            uint              `json:"id"`
	OtherUser     domain.PublicUser `json:"other_user"`
	LastMessage   *string           `json:"last_message"`
	LastMessageAt *time.Time        `json:"last_message_at"`
	UnreadCount   int64             `json:"unread_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

// LastActivity is the recency key for sorting summaries: last message time,
// falling back to room creation.
func (s *RoomSummary) LastActivity() time.Time {
	if s.LastMessageAt != nil {
		return *s.LastMessageAt
	}
	return s.CreatedAt
}

// MessageDetail is a stored message joined with the sender's public profile.
type MessageDetail struct {
	domain.Message
	SenderEmail string `json:"sender_email"`
}
