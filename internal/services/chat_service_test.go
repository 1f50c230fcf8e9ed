// File: internal/services/chat_service_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/freshcart/chat-service/internal/domain"
	messagerepo "github.com/freshcart/chat-service/internal/repository/message"
	roomrepo "github.com/freshcart/chat-service/internal/repository/room"
	userrepo "github.com/freshcart/chat-service/internal/repository/user"
	"github.com/freshcart/chat-service/internal/services/chat"
)

type chatFixture struct {
	db          *gorm.DB
	service     *ChatService
	messageRepo messagerepo.MessageRepository
	alice       *domain.User
	bob         *domain.User
	carol       *domain.User
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.ChatRoom{}, &domain.Message{}))

	users := userrepo.NewGormUserRepository(db)
	rooms := roomrepo.NewGormRoomRepository(db)
	messages := messagerepo.NewGormMessageRepository(db)

	service, err := NewChatService(rooms, messages, users, &NoOpLogger{})
	require.NoError(t, err)

	f := &chatFixture{db: db, service: service, messageRepo: messages}
	f.alice = f.seedUser(t, users, "alice@example.com")
	f.bob = f.seedUser(t, users, "bob@example.com")
	f.carol = f.seedUser(t, users, "carol@example.com")
	return f
}

func (f *chatFixture) seedUser(t *testing.T, repo userrepo.UserRepository, email string) *domain.User {
	t.Helper()

	u := &domain.User{Email: email}
	require.NoError(t, u.HashPassword("password123"))
	created, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	return created
}

func assertChatErrorType(t *testing.T, err error, want chat.ErrorType) {
	t.Helper()

	var chatErr *chat.ChatError
	require.True(t, errors.As(err, &chatErr), "expected *chat.ChatError, got %v", err)
	assert.Equal(t, want, chatErr.Type)
}

func TestCreateOrGetRoom_IdempotentAcrossArgumentOrder(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateOrGetRoom(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)

	second, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Less(t, first.User1ID, first.User2ID, "pair must be stored in canonical order")

	var count int64
	require.NoError(t, f.db.Model(&domain.ChatRoom{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateOrGetRoom_ResolvesParticipantEmails(t *testing.T) {
	f := newChatFixture(t)

	detail, err := f.service.CreateOrGetRoom(context.Background(), f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	assert.Equal(t, f.alice.Email, detail.User1Email)
	assert.Equal(t, f.bob.Email, detail.User2Email)
}

func TestCreateOrGetRoom_RejectsSelfChat(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.CreateOrGetRoom(context.Background(), f.alice.ID, f.alice.ID)

	assertChatErrorType(t, err, chat.ErrTypeValidation)
}

func TestCreateOrGetRoom_RejectsUnknownUser(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.CreateOrGetRoom(context.Background(), f.alice.ID, 9999)

	assertChatErrorType(t, err, chat.ErrTypeValidation)
}

func TestCreateOrGetRoom_RejectsZeroID(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.CreateOrGetRoom(context.Background(), 0, f.bob.ID)

	assertChatErrorType(t, err, chat.ErrTypeValidation)
}

func TestAppendMessage_RoundTrip(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	sent, err := f.service.AppendMessage(ctx, room.ID, f.alice.ID, "  hello bob  ")
	require.NoError(t, err)

	assert.Equal(t, "hello bob", sent.Body, "body is stored trimmed")
	assert.Equal(t, f.alice.Email, sent.SenderEmail)
	assert.False(t, sent.IsRead, "new messages start unread")

	listed, err := f.service.ListMessages(ctx, room.ID, f.alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, sent.ID, listed[0].ID)
	assert.Equal(t, "hello bob", listed[0].Body)
}

func TestAppendMessage_RejectsNonParticipantWithoutPersisting(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, room.ID, f.carol.ID, "let me in")
	assertChatErrorType(t, err, chat.ErrTypeUnauthorized)

	count, err := f.messageRepo.CountByRoomID(ctx, room.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count, "rejected sends must persist nothing")
}

func TestAppendMessage_RejectsEmptyBody(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "   ")

	assertChatErrorType(t, err, chat.ErrTypeValidation)
}

func TestAppendMessage_RejectsUnknownRoom(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.service.AppendMessage(context.Background(), 404, f.alice.ID, "hello?")

	assertChatErrorType(t, err, chat.ErrTypeNotFound)
}

func TestListMessages_PreservesInsertionOrder(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		_, err := f.service.AppendMessage(ctx, room.ID, f.alice.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	listed, err := f.service.ListMessages(ctx, room.ID, f.bob.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 5)
	for i, msg := range listed {
		assert.Equal(t, fmt.Sprintf("msg %d", i+1), msg.Body)
	}
}

func TestListMessages_MarksOtherPartysMessagesRead(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "one")
	require.NoError(t, err)
	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "two")
	require.NoError(t, err)

	unread, err := f.service.UnreadCountForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	listed, err := f.service.ListMessages(ctx, room.ID, f.bob.ID, 0, 0)
	require.NoError(t, err)
	for _, msg := range listed {
		assert.True(t, msg.IsRead, "fetched messages must already carry the read flag")
	}

	unread, err = f.service.UnreadCountForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread, "reading the room zeroes its unread count")
}

func TestListMessages_ReaderDoesNotAcknowledgeOwnOutbox(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "for bob")
	require.NoError(t, err)

	// Alice re-reading her own room must not flip the flag Bob's counter
	// depends on.
	_, err = f.service.ListMessages(ctx, room.ID, f.alice.ID, 0, 0)
	require.NoError(t, err)

	unread, err := f.service.UnreadCountForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}

func TestListMessages_RejectsNonParticipant(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.ListMessages(ctx, room.ID, f.carol.ID, 0, 0)

	assertChatErrorType(t, err, chat.ErrTypeUnauthorized)
}

func TestListMessages_Pagination(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		_, err := f.service.AppendMessage(ctx, room.ID, f.alice.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	page, err := f.service.ListMessages(ctx, room.ID, f.bob.ID, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "msg 2", page[0].Body)
	assert.Equal(t, "msg 3", page[1].Body)
}

func TestMarkRead_CountsAndIsIdempotent(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "one")
	require.NoError(t, err)
	_, err = f.service.AppendMessage(ctx, room.ID, f.alice.ID, "two")
	require.NoError(t, err)

	updated, err := f.service.MarkRead(ctx, room.ID, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, updated)

	updated, err = f.service.MarkRead(ctx, room.ID, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, updated, "repeat acknowledgment flips nothing")
}

func TestMarkRead_RejectsNonParticipant(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.MarkRead(ctx, room.ID, f.carol.ID)

	assertChatErrorType(t, err, chat.ErrTypeUnauthorized)
}

func TestUnreadCountForUser_SumsAcrossRooms(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	roomAB, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	roomCB, err := f.service.CreateOrGetRoom(ctx, f.carol.ID, f.bob.ID)
	require.NoError(t, err)

	_, err = f.service.AppendMessage(ctx, roomAB.ID, f.alice.ID, "from alice")
	require.NoError(t, err)
	_, err = f.service.AppendMessage(ctx, roomCB.ID, f.carol.ID, "from carol")
	require.NoError(t, err)
	_, err = f.service.AppendMessage(ctx, roomCB.ID, f.carol.ID, "again")
	require.NoError(t, err)

	unread, err := f.service.UnreadCountForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	// Senders never count their own messages as unread.
	unread, err = f.service.UnreadCountForUser(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)
}

func TestListRoomsForUser_OrdersByRecencyAndBuildsSummaries(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	roomAB, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)
	roomCB, err := f.service.CreateOrGetRoom(ctx, f.carol.ID, f.bob.ID)
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour)
	_, err = f.messageRepo.Create(ctx, &domain.Message{
		ChatRoomID: roomCB.ID, SenderID: f.carol.ID, Body: "older", CreatedAt: base,
	})
	require.NoError(t, err)
	_, err = f.messageRepo.Create(ctx, &domain.Message{
		ChatRoomID: roomAB.ID, SenderID: f.alice.ID, Body: "newer", CreatedAt: base.Add(time.Minute),
	})
	require.NoError(t, err)

	summaries, err := f.service.ListRoomsForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, roomAB.ID, summaries[0].ID, "room with the newest message comes first")
	assert.Equal(t, f.alice.Email, summaries[0].OtherUser.Email)
	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "newer", *summaries[0].LastMessage)
	assert.EqualValues(t, 1, summaries[0].UnreadCount)

	assert.Equal(t, roomCB.ID, summaries[1].ID)
	assert.Equal(t, f.carol.Email, summaries[1].OtherUser.Email)
}

func TestListRoomsForUser_EmptyRoomFallsBackToCreationTime(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	room, err := f.service.CreateOrGetRoom(ctx, f.alice.ID, f.bob.ID)
	require.NoError(t, err)

	summaries, err := f.service.ListRoomsForUser(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, room.ID, summaries[0].ID)
	assert.Nil(t, summaries[0].LastMessage)
	assert.Nil(t, summaries[0].LastMessageAt)
	assert.EqualValues(t, 0, summaries[0].UnreadCount)
}
