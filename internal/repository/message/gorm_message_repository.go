// File: internal/repository/message/gorm_message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/freshcart/chat-service/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

const maxMessageLength = 10000

type gormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends a message to the room log. The row is stored unread; the
// server, not the client, assigns the timestamp.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		// Secure logging - no message content exposed
		log.Printf("[MessageRepository] Database error during message creation for room ID %d: %v",
			message.ChatRoomID, err)
		return nil, errors.New("database error creating message")
	}

	log.Printf("[MessageRepository] Message created successfully with ID: %d for room: %d",
		message.ID, message.ChatRoomID)
	return message, nil
}

// FindByRoomID returns the full room log in insertion order: creation time
// ascending, id as the monotonic tiebreak so ties stay deterministic.
func (r *gormMessageRepository) FindByRoomID(ctx context.Context, roomID uint) ([]domain.Message, error) {
	if roomID == 0 {
		return nil, errors.New("invalid room ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for room ID %d: %v", roomID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// FindByRoomIDWithPagination bounds the read for long-lived conversations.
func (r *gormMessageRepository) FindByRoomIDWithPagination(ctx context.Context, roomID uint, limit, offset int) ([]domain.Message, int64, error) {
	if roomID == 0 {
		return nil, 0, errors.New("invalid room ID")
	}
	if limit <= 0 || limit > 1000 {
		return nil, 0, errors.New("invalid limit: must be between 1 and 1000")
	}
	if offset < 0 {
		return nil, 0, errors.New("invalid offset: must be >= 0")
	}

	var messages []domain.Message
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_room_id = ?", roomID).Count(&total).Error; err != nil {
		log.Printf("[MessageRepository] Database error counting messages for room ID %d: %v", roomID, err)
		return nil, 0, errors.New("database error counting messages")
	}

	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("timestamp ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error in paginated query for room ID %d: %v", roomID, err)
		return nil, 0, errors.New("database error retrieving paginated messages")
	}

	return messages, total, nil
}

// FindLastByRoomID returns the most recent message, or nil when the room is
// empty (an empty room is not an error for summary building).
func (r *gormMessageRepository) FindLastByRoomID(ctx context.Context, roomID uint) (*domain.Message, error) {
	if roomID == 0 {
		return nil, errors.New("invalid room ID")
	}

	var message domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_room_id = ?", roomID).
		Order("timestamp DESC, id DESC").
		First(&message).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("[MessageRepository] Database error finding last message for room ID %d: %v", roomID, err)
		return nil, errors.New("database error finding last message")
	}

	return &message, nil
}

// MarkRoomRead flips is_read on every unread message in the room that the
// reader did not send. One-directional: nothing ever flips back to unread.
func (r *gormMessageRepository) MarkRoomRead(ctx context.Context, roomID, readerID uint) (int64, error) {
	if roomID == 0 || readerID == 0 {
		return 0, errors.New("invalid room ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		Update("is_read", true)

	if result.Error != nil {
		log.Printf("[MessageRepository] Database error marking room %d read for user %d: %v",
			roomID, readerID, result.Error)
		return 0, errors.New("database error marking messages read")
	}

	return result.RowsAffected, nil
}

// CountUnreadInRoom counts messages in the room sent by the other party and
// not yet read.
func (r *gormMessageRepository) CountUnreadInRoom(ctx context.Context, roomID, userID uint) (int64, error) {
	if roomID == 0 || userID == 0 {
		return 0, errors.New("invalid room ID or user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("chat_room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Count(&count).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error counting unread for room ID %d: %v", roomID, err)
		return 0, errors.New("database error counting unread messages")
	}

	return count, nil
}

// CountUnreadForUser aggregates unread messages across every room the user
// participates in. By construction it equals the sum of the per-room counts.
func (r *gormMessageRepository) CountUnreadForUser(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Joins("JOIN chat_rooms ON chat_rooms.id = chat_messages.chat_room_id").
		Where("(chat_rooms.user1_id = ? OR chat_rooms.user2_id = ?)", userID, userID).
		Where("chat_messages.sender_id <> ? AND chat_messages.is_read = ?", userID, false).
		Count(&count).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error counting unread for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting unread messages")
	}

	return count, nil
}

func (r *gormMessageRepository) CountByRoomID(ctx context.Context, roomID uint) (int64, error) {
	if roomID == 0 {
		return 0, errors.New("invalid room ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_room_id = ?", roomID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for room ID %d: %v", roomID, err)
		return 0, errors.New("database error counting room messages")
	}

	return count, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.ChatRoomID == 0 {
		return errors.New("room ID is required")
	}
	if message.SenderID == 0 {
		return errors.New("sender ID is required")
	}
	if strings.TrimSpace(message.Body) == "" {
		return errors.New("message body cannot be empty")
	}
	if len(message.Body) > maxMessageLength {
		return fmt.Errorf("message body too long (max %d characters)", maxMessageLength)
	}
	return nil
}
