// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/freshcart/chat-service/internal/config"
	"github.com/freshcart/chat-service/internal/domain"
	"github.com/freshcart/chat-service/internal/handlers"
	"github.com/freshcart/chat-service/internal/middleware"
	"github.com/freshcart/chat-service/internal/ratelimit"
	messagerepo "github.com/freshcart/chat-service/internal/repository/message"
	roomrepo "github.com/freshcart/chat-service/internal/repository/room"
	userrepo "github.com/freshcart/chat-service/internal/repository/user"
	"github.com/freshcart/chat-service/internal/services"
	"github.com/freshcart/chat-service/internal/services/user_services"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
	}
}

func main() {
	cfg := config.Load()

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.ChatRoom{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := userrepo.NewGormUserRepository(db)
	roomRepo := roomrepo.NewGormRoomRepository(db)
	messageRepo := messagerepo.NewGormMessageRepository(db)

	// --- Services ---
	logger := services.NewLogger("chat-service")

	userService := user_services.NewUserService(userRepo, cfg.JWTSecretKey, logger)

	chatService, err := services.NewChatService(roomRepo, messageRepo, userRepo, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Rate Limiting ---
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	// --- Handlers & Router ---
	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:        handlers.NewAuthHandler(userService, authLimiter),
		Users:       handlers.NewUserHandler(userService),
		Chat:        handlers.NewChatHandler(chatService),
		AuthLimiter: authLimiter,
		JWT:         middleware.NewJWTMiddleware(userService),
	})

	router.Use(corsMiddleware)
	router.Use(middleware.RecoverPanic)
	router.Use(middleware.LoggingMiddleware)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Chat service starting on port %s (driver=%s)", cfg.ServerPort, cfg.DBDriver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
