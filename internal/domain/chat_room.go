// File: internal/domain/chat_room.go
package domain

import "time"

// ChatRoom pairs two users for message exchange. The pair is stored in
// canonical order (User1ID < User2ID) so the composite unique index keys
// the unordered pair regardless of which side initiated the room.
type ChatRoom struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	User1ID   uint      `json:"user1_id" gorm:"column:user1_id;not null;uniqueIndex:idx_chat_rooms_pair"`
	User2ID   uint      `json:"user2_id" gorm:"column:user2_id;not null;uniqueIndex:idx_chat_rooms_pair"`
	CreatedAt time.Time `json:"created_at"`
}

func (ChatRoom) TableName() string { return "chat_rooms" }

// NormalizePair returns the two ids in canonical storage order, smaller first.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant reports whether the given user belongs to the room.
func (r *ChatRoom) HasParticipant(userID uint) bool {
	return r.User1ID == userID || r.User2ID == userID
}

// OtherParticipant returns the id of the participant that is not userID.
// The caller must have checked membership first.
func (r *ChatRoom) OtherParticipant(userID uint) uint {
	if r.User1ID == userID {
		return r.User2ID
	}
	return r.User1ID
}
