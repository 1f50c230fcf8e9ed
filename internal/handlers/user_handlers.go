// File: internal/handlers/user_handlers.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/freshcart/chat-service/internal/middleware"
	"github.com/freshcart/chat-service/internal/repository/user"
	"github.com/freshcart/chat-service/internal/services/user_services"
)

// UserHandler serves the contact directory.
type UserHandler struct {
	UserService *user_services.UserService
}

func NewUserHandler(service *user_services.UserService) *UserHandler {
	return &UserHandler{UserService: service}
}

// ListUsers returns every registered user except the one in the path, so
// the client can offer a contact picker without showing the caller to
// themselves.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	currentUserID, ok := parseUintVar(r, "currentUserId")
	if !ok {
		writeError(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	profiles, err := h.UserService.ListOthers(r.Context(), currentUserID)
	if err != nil {
		log.Printf("[UserHandler] List users error: %v", err)
		writeError(w, "Could not retrieve users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.UserService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			writeError(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("[UserHandler] Profile error: %v", err)
		writeError(w, "Could not retrieve profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// parseUintVar reads a numeric mux path variable.
func parseUintVar(r *http.Request, name string) (uint, bool) {
	raw := mux.Vars(r)[name]
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(parsed), true
}
