// File: internal/repository/room/gorm_room_repository.go
package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/freshcart/chat-service/internal/domain"
)

var ErrRoomNotFound = errors.New("chat room not found")

// ErrDuplicatePair is returned when the composite unique index on
// (user1_id, user2_id) rejects an insert. The index, not application logic,
// is what guarantees at most one room per unordered pair under concurrent
// creation; callers recover by re-reading the pair.
var ErrDuplicatePair = errors.New("room already exists for this pair")

type gormRoomRepository struct {
	db *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) RoomRepository {
	return &gormRoomRepository{db: db}
}

// Create inserts a room. The pair must already be in canonical order
// (User1ID < User2ID); rows violating that would defeat the unique key.
func (r *gormRoomRepository) Create(ctx context.Context, room *domain.ChatRoom) (*domain.ChatRoom, error) {
	if err := r.validateRoomInput(room); err != nil {
		log.Printf("[RoomRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePair
		}
		log.Printf("[RoomRepository] Database error creating room for pair (%d, %d): %v",
			room.User1ID, room.User2ID, err)
		return nil, errors.New("database error creating chat room")
	}

	log.Printf("[RoomRepository] Room created successfully with ID: %d for pair (%d, %d)",
		room.ID, room.User1ID, room.User2ID)
	return room, nil
}

func (r *gormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.ChatRoom, error) {
	if id == 0 {
		return nil, errors.New("invalid room ID")
	}

	var room domain.ChatRoom
	err := r.db.WithContext(ctx).First(&room, id).Error
	return r.handleFindError(err, &room)
}

// FindByPair looks the pair up in either stored order. Canonicalization makes
// the reversed match unnecessary for rows written by this code, but rooms
// persisted before normalization may still carry the larger id first.
func (r *gormRoomRepository) FindByPair(ctx context.Context, userA, userB uint) (*domain.ChatRoom, error) {
	if userA == 0 || userB == 0 {
		return nil, errors.New("invalid user ID")
	}

	var room domain.ChatRoom
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userA, userB, userB, userA).
		First(&room).Error
	return r.handleFindError(err, &room)
}

// FindByUserID returns every room the user participates in, on either side
// of the pair.
func (r *gormRoomRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.ChatRoom, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var rooms []domain.ChatRoom
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&rooms).Error

	if err != nil {
		log.Printf("[RoomRepository] Database error finding rooms for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chat rooms")
	}

	return rooms, nil
}

func (r *gormRoomRepository) CountRooms(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ChatRoom{}).Count(&count).Error
	if err != nil {
		log.Printf("[RoomRepository] Database error counting rooms: %v", err)
		return 0, errors.New("database error counting rooms")
	}
	return count, nil
}

// ===== VALIDATION HELPERS =====

func (r *gormRoomRepository) validateRoomInput(room *domain.ChatRoom) error {
	if room == nil {
		return errors.New("room cannot be nil")
	}
	if room.User1ID == 0 || room.User2ID == 0 {
		return errors.New("both user IDs are required")
	}
	if room.User1ID == room.User2ID {
		return errors.New("room participants must be distinct")
	}
	if room.User1ID > room.User2ID {
		return errors.New("room pair must be in canonical order")
	}
	return nil
}

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

// ===== ERROR HANDLING HELPERS =====

func (r *gormRoomRepository) handleFindError(err error, room *domain.ChatRoom) (*domain.ChatRoom, error) {
	if err == nil {
		return room, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}

	log.Printf("[RoomRepository] Database query error: %v", err)
	return nil, errors.New("database query failed")
}
