// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/freshcart/chat-service/internal/domain"
	"github.com/freshcart/chat-service/internal/repository/message"
	"github.com/freshcart/chat-service/internal/repository/room"
	"github.com/freshcart/chat-service/internal/repository/user"
	"github.com/freshcart/chat-service/internal/services/chat"
)

// ChatService implements the room registry, the message store and the
// unread accounting view on top of the injected repositories.
type ChatService struct {
	roomRepo    room.RoomRepository
	messageRepo message.MessageRepository
	userRepo    user.UserRepository
	config      *chat.Config
	logger      Logger
}

func NewChatService(
	roomRepo room.RoomRepository,
	messageRepo message.MessageRepository,
	userRepo user.UserRepository,
	logger Logger,
) (*ChatService, error) {
	cfg := chat.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chat config: %w", err)
	}
	return &ChatService{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		config:      cfg,
		logger:      logger,
	}, nil
}

var _ chat.Service = (*ChatService)(nil)

// CreateOrGetRoom returns the single room for the unordered pair, creating it
// on first use. Idempotent: both argument orders resolve to the same room.
// A lost creation race is recovered by re-reading the pair, never surfaced.
func (s *ChatService) CreateOrGetRoom(ctx context.Context, userA, userB uint) (*chat.RoomDetail, error) {
	const op = "CreateOrGetRoom"

	if userA == 0 || userB == 0 {
		return nil, chat.NewValidationError(op, "both user IDs are required")
	}
	if userA == userB {
		return nil, chat.NewValidationError(op, "cannot create a room with a single participant")
	}
	for _, id := range []uint{userA, userB} {
		exists, err := s.userRepo.ExistsByID(ctx, id)
		if err != nil {
			return nil, chat.NewInternalError(op, "failed to verify participant", err)
		}
		if !exists {
			return nil, chat.NewValidationError(op, fmt.Sprintf("user %d does not exist", id))
		}
	}

	user1, user2 := domain.NormalizePair(userA, userB)

	existing, err := s.roomRepo.FindByPair(ctx, user1, user2)
	if err == nil {
		return s.buildRoomDetail(ctx, existing)
	}
	if !errors.Is(err, room.ErrRoomNotFound) {
		return nil, chat.NewInternalError(op, "room lookup failed", err)
	}

	created, err := s.roomRepo.Create(ctx, &domain.ChatRoom{User1ID: user1, User2ID: user2})
	if err == nil {
		s.logger.Info("chat room created", "room_id", created.ID, "user1_id", user1, "user2_id", user2)
		return s.buildRoomDetail(ctx, created)
	}

	if errors.Is(err, room.ErrDuplicatePair) {
		// Lost the race against a concurrent create-or-get for the same
		// pair; the winning row is the canonical one.
		conflict := chat.NewConflictError(op, err)
		s.logger.Warn("room creation conflict recovered", "error", conflict.Error(),
			"user1_id", user1, "user2_id", user2)

		winner, err := s.roomRepo.FindByPair(ctx, user1, user2)
		if err != nil {
			return nil, chat.NewInternalError(op, "conflict recovery lookup failed", err)
		}
		return s.buildRoomDetail(ctx, winner)
	}

	return nil, chat.NewInternalError(op, "room creation failed", err)
}

// ListRoomsForUser returns one summary per room the user participates in,
// most recent activity first.
func (s *ChatService) ListRoomsForUser(ctx context.Context, userID uint) ([]chat.RoomSummary, error) {
	const op = "ListRoomsForUser"

	if userID == 0 {
		return nil, chat.NewValidationError(op, "user ID is required")
	}

	rooms, err := s.roomRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to list rooms", err)
	}

	summaries := make([]chat.RoomSummary, 0, len(rooms))
	for i := range rooms {
		summary, err := s.buildRoomSummary(ctx, &rooms[i], userID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		ti, tj := summaries[i].LastActivity(), summaries[j].LastActivity()
		if ti.Equal(tj) {
			return summaries[i].ID > summaries[j].ID
		}
		return ti.After(tj)
	})

	return summaries, nil
}

// AppendMessage inserts a message after checking that the sender is one of
// the room's two participants. Rejected sends persist nothing.
func (s *ChatService) AppendMessage(ctx context.Context, roomID, senderID uint, body string) (*chat.MessageDetail, error) {
	const op = "AppendMessage"

	body = strings.TrimSpace(body)
	if roomID == 0 || senderID == 0 {
		return nil, chat.NewValidationError(op, "room ID and sender ID are required")
	}
	if body == "" {
		return nil, chat.NewValidationError(op, "message body cannot be empty")
	}
	if len(body) > s.config.MaxBodyLength {
		return nil, chat.NewValidationError(op,
			fmt.Sprintf("message body exceeds %d characters", s.config.MaxBodyLength))
	}

	target, err := s.findRoom(ctx, op, roomID)
	if err != nil {
		return nil, err
	}
	if !target.HasParticipant(senderID) {
		s.logger.Warn("message rejected from non-participant", "room_id", roomID, "sender_id", senderID)
		return nil, chat.NewUnauthorizedError(senderID, roomID)
	}

	stored, err := s.messageRepo.Create(ctx, &domain.Message{
		ChatRoomID: roomID,
		SenderID:   senderID,
		Body:       body,
	})
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to store message", err)
	}

	sender, err := s.userRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to load sender profile", err)
	}

	s.logger.Info("message appended", "room_id", roomID, "message_id", stored.ID, "sender_id", senderID)
	return &chat.MessageDetail{Message: *stored, SenderEmail: sender.Email}, nil
}

// ListMessages returns the room log in insertion order and, as part of the
// same call, acknowledges the other party's unread messages. The read-marks-
// read contract is preserved for the client, but internally it is an explicit
// acknowledge-then-list composition; the repository reads have no hidden
// mutation. limit <= 0 returns the full room.
func (s *ChatService) ListMessages(ctx context.Context, roomID, requestingUserID uint, limit, offset int) ([]domain.Message, error) {
	const op = "ListMessages"

	if roomID == 0 || requestingUserID == 0 {
		return nil, chat.NewValidationError(op, "room ID and user ID are required")
	}
	if limit > s.config.MaxPageSize {
		return nil, chat.NewValidationError(op,
			fmt.Sprintf("limit exceeds maximum page size of %d", s.config.MaxPageSize))
	}

	target, err := s.findRoom(ctx, op, roomID)
	if err != nil {
		return nil, err
	}
	if !target.HasParticipant(requestingUserID) {
		return nil, chat.NewUnauthorizedError(requestingUserID, roomID)
	}

	// Acknowledge before reading so the returned rows already carry the
	// flipped read flag.
	if _, err := s.messageRepo.MarkRoomRead(ctx, roomID, requestingUserID); err != nil {
		return nil, chat.NewInternalError(op, "failed to acknowledge messages", err)
	}

	if limit > 0 {
		messages, _, err := s.messageRepo.FindByRoomIDWithPagination(ctx, roomID, limit, offset)
		if err != nil {
			return nil, chat.NewInternalError(op, "failed to list messages", err)
		}
		return messages, nil
	}

	messages, err := s.messageRepo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to list messages", err)
	}
	return messages, nil
}

// MarkRead is the explicit acknowledgment variant, for opening a room from a
// list without fetching its messages. Returns the number of rows flipped.
func (s *ChatService) MarkRead(ctx context.Context, roomID, userID uint) (int64, error) {
	const op = "MarkRead"

	if roomID == 0 || userID == 0 {
		return 0, chat.NewValidationError(op, "room ID and user ID are required")
	}

	target, err := s.findRoom(ctx, op, roomID)
	if err != nil {
		return 0, err
	}
	if !target.HasParticipant(userID) {
		return 0, chat.NewUnauthorizedError(userID, roomID)
	}

	updated, err := s.messageRepo.MarkRoomRead(ctx, roomID, userID)
	if err != nil {
		return 0, chat.NewInternalError(op, "failed to mark messages read", err)
	}

	s.logger.Debug("messages acknowledged", "room_id", roomID, "user_id", userID, "updated", updated)
	return updated, nil
}

// UnreadCountForUser totals unread messages addressed to the user across all
// their rooms. Pure read; always equals the sum of per-room counts.
func (s *ChatService) UnreadCountForUser(ctx context.Context, userID uint) (int64, error) {
	const op = "UnreadCountForUser"

	if userID == 0 {
		return 0, chat.NewValidationError(op, "user ID is required")
	}

	count, err := s.messageRepo.CountUnreadForUser(ctx, userID)
	if err != nil {
		return 0, chat.NewInternalError(op, "failed to count unread messages", err)
	}
	return count, nil
}

// ===== INTERNAL HELPERS =====

func (s *ChatService) findRoom(ctx context.Context, op string, roomID uint) (*domain.ChatRoom, error) {
	target, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return nil, chat.NewNotFoundError(op, roomID)
		}
		return nil, chat.NewInternalError(op, "room lookup failed", err)
	}
	return target, nil
}

func (s *ChatService) buildRoomDetail(ctx context.Context, r *domain.ChatRoom) (*chat.RoomDetail, error) {
	user1, err := s.userRepo.FindByID(ctx, r.User1ID)
	if err != nil {
		return nil, chat.NewInternalError("buildRoomDetail", "failed to load participant", err)
	}
	user2, err := s.userRepo.FindByID(ctx, r.User2ID)
	if err != nil {
		return nil, chat.NewInternalError("buildRoomDetail", "failed to load participant", err)
	}

	return &chat.RoomDetail{
		ID:         r.ID,
		User1ID:    r.User1ID,
		User2ID:    r.User2ID,
		User1Email: user1.Email,
		User2Email: user2.Email,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (s *ChatService) buildRoomSummary(ctx context.Context, r *domain.ChatRoom, userID uint) (*chat.RoomSummary, error) {
	const op = "ListRoomsForUser"

	other, err := s.userRepo.FindByID(ctx, r.OtherParticipant(userID))
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to load other participant", err)
	}

	last, err := s.messageRepo.FindLastByRoomID(ctx, r.ID)
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to load last message", err)
	}

	unread, err := s.messageRepo.CountUnreadInRoom(ctx, r.ID, userID)
	if err != nil {
		return nil, chat.NewInternalError(op, "failed to count unread messages", err)
	}

	summary := &chat.RoomSummary{
		ID:          r.ID,
		OtherUser:   other.Public(),
		UnreadCount: unread,
		CreatedAt:   r.CreatedAt,
	}
	if last != nil {
		summary.LastMessage = &last.Body
		summary.LastMessageAt = &last.CreatedAt
	}
	return summary, nil
}
