// File: internal/domain/message.go
package domain

import "time"

// Message is a single entry in a room's append-only log. Created unread;
// the only mutation it ever sees is the read acknowledgment, which is
// one-directional (read messages never become unread again).
type Message struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	ChatRoomID uint      `json:"chat_room_id" gorm:"not null;index"`
	SenderID   uint      `json:"sender_id" gorm:"not null"`
	Body       string    `json:"message" gorm:"column:message;not null"`
	CreatedAt  time.Time `json:"timestamp" gorm:"column:timestamp"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false"`
}

func (Message) TableName() string { return "chat_messages" }
