// File: internal/handlers/json.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freshcart/chat-service/internal/services/chat"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeChatError maps a service error onto the HTTP status it deserves.
// Conflicts never reach this point: the service recovers them internally.
func writeChatError(w http.ResponseWriter, err error) {
	var chatErr *chat.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Type {
		case chat.ErrTypeValidation:
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		case chat.ErrTypeUnauthorized:
			writeError(w, chatErr.Message, http.StatusForbidden)
			return
		case chat.ErrTypeNotFound:
			writeError(w, chatErr.Message, http.StatusNotFound)
			return
		}
	}
	writeError(w, "Something went wrong on our end.", http.StatusInternalServerError)
}
