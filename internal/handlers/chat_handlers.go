// File: internal/handlers/chat_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/freshcart/chat-service/internal/services/chat"
)

// ChatHandler exposes the room registry, message log and unread counters.
type ChatHandler struct {
	ChatService chat.Service
}

func NewChatHandler(service chat.Service) *ChatHandler {
	return &ChatHandler{ChatService: service}
}

type createRoomRequest struct {
	User1ID uint `json:"user1Id"`
	User2ID uint `json:"user2Id"`
}

// CreateOrGetRoom returns the room for a pair of users, creating it on
// first contact. Calling it twice (in either argument order) yields the
// same room.
func (h *ChatHandler) CreateOrGetRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	room, err := h.ChatService.CreateOrGetRoom(r.Context(), req.User1ID, req.User2ID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

// ListRooms returns the user's conversations, most recently active first.
func (h *ChatHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUintVar(r, "userId")
	if !ok {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	rooms, err := h.ChatService.ListRoomsForUser(r.Context(), userID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

type sendMessageRequest struct {
	ChatRoomID uint   `json:"chatRoomId"`
	SenderID   uint   `json:"senderId"`
	Message    string `json:"message"`
}

// SendMessage appends a message to a room on behalf of a participant.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.ChatService.AppendMessage(r.Context(), req.ChatRoomID, req.SenderID, req.Message)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListMessages returns a room's messages in chronological order. Fetching
// the log also marks the other participant's messages as read, so the
// reader's unread counter drops to zero for this room.
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	roomID, ok := parseUintVar(r, "chatRoomId")
	if !ok {
		writeError(w, "Invalid chat room ID", http.StatusBadRequest)
		return
	}

	userID, err := parseUintQuery(r, "userId")
	if err != nil {
		writeError(w, "Missing or invalid userId query parameter", http.StatusBadRequest)
		return
	}

	limit := parseIntQueryDefault(r, "limit", 0)
	offset := parseIntQueryDefault(r, "offset", 0)

	messages, err := h.ChatService.ListMessages(r.Context(), roomID, userID, limit, offset)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

type markReadRequest struct {
	ChatRoomID uint `json:"chatRoomId"`
	UserID     uint `json:"userId"`
}

// MarkRead flags the other participant's messages in a room as read.
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.ChatService.MarkRead(r.Context(), req.ChatRoomID, req.UserID); err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Messages marked as read"})
}

// UnreadCount returns the user's total unread messages across all rooms.
func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUintVar(r, "userId")
	if !ok {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	count, err := h.ChatService.UnreadCountForUser(r.Context(), userID)
	if err != nil {
		writeChatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"unread_count": count})
}

func parseUintQuery(r *http.Request, name string) (uint, error) {
	parsed, err := strconv.ParseUint(r.URL.Query().Get(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseIntQueryDefault(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
