// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/freshcart/chat-service/internal/domain"
	"github.com/freshcart/chat-service/internal/ratelimit"
	"github.com/freshcart/chat-service/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	UserService *user_services.UserService
	Limiter     *ratelimit.MemoryRateLimiter
}

// NewAuthHandler creates a new AuthHandler. The limiter is optional; when
// present, successful logins reset the caller's attempt window.
func NewAuthHandler(service *user_services.UserService, limiter *ratelimit.MemoryRateLimiter) *AuthHandler {
	return &AuthHandler{UserService: service, Limiter: limiter}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new account creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	created, err := h.UserService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user_services.ErrEmailTaken),
			errors.Is(err, domain.ErrEmailRequired),
			errors.Is(err, domain.ErrEmailInvalid),
			errors.Is(err, domain.ErrPasswordTooShort):
			writeError(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("[AuthHandler] Registration error: %v", err)
			writeError(w, "Could not register user", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user":    created.Public(),
	})
}

// Login validates credentials and returns the account plus a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	account, token, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_services.ErrInvalidCredentials) {
			writeError(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Printf("[AuthHandler] Login error: %v", err)
		writeError(w, "Could not log in", http.StatusInternalServerError)
		return
	}

	if h.Limiter != nil {
		h.Limiter.RecordSuccess(ratelimit.GetClientIP(r))
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    account.Public(),
		"token":   token,
	})
}
