// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/freshcart/chat-service/internal/middleware"
	"github.com/freshcart/chat-service/internal/ratelimit"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Chat        *ChatHandler
	AuthLimiter *ratelimit.MemoryRateLimiter
	JWT         func(http.Handler) http.Handler
}

// NewRouter assembles the API routes. Registration and login sit behind the
// rate limiter; /me requires a valid token. The chat routes trust the ids
// in the request, matching the polling client's contract.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	authRoutes := r.NewRoute().Subrouter()
	if deps.AuthLimiter != nil {
		authRoutes.Use(middleware.RateLimitMiddleware(deps.AuthLimiter, "auth"))
	}
	authRoutes.HandleFunc("/register", deps.Auth.Register).Methods("POST")
	authRoutes.HandleFunc("/login", deps.Auth.Login).Methods("POST")

	if deps.JWT != nil {
		me := r.PathPrefix("/me").Subrouter()
		me.Use(deps.JWT)
		me.HandleFunc("", deps.Users.Me).Methods("GET")
	}

	r.HandleFunc("/users/{currentUserId:[0-9]+}", deps.Users.ListUsers).Methods("GET")
	r.HandleFunc("/chatroom", deps.Chat.CreateOrGetRoom).Methods("POST")
	r.HandleFunc("/chatrooms/{userId:[0-9]+}", deps.Chat.ListRooms).Methods("GET")
	r.HandleFunc("/messages/mark-read", deps.Chat.MarkRead).Methods("POST")
	r.HandleFunc("/messages/{chatRoomId:[0-9]+}", deps.Chat.ListMessages).Methods("GET")
	r.HandleFunc("/messages", deps.Chat.SendMessage).Methods("POST")
	r.HandleFunc("/unread-count/{userId:[0-9]+}", deps.Chat.UnreadCount).Methods("GET")

	return r
}
