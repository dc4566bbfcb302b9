package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/innovatex/hub/internal/config"
	"github.com/innovatex/hub/internal/database"
	"github.com/innovatex/hub/internal/handlers"
	"github.com/innovatex/hub/internal/realtime"
	"github.com/innovatex/hub/internal/repositories"
	"github.com/innovatex/hub/internal/services"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database connections
	postgresPool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create postgres pool: %v", err)
	}
	defer postgresPool.Close()

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create redis client: %v", err)
	}
	defer redisClient.Close()

	// Durable stores
	userRepo := repositories.NewPostgresUserRepository(postgresPool)
	conversationRepo := repositories.NewPostgresConversationRepository(postgresPool)
	messageRepo := repositories.NewPostgresMessageRepository(postgresPool)
	notificationRepo := repositories.NewPostgresNotificationRepository(postgresPool)
	sessionRepo := repositories.NewRedisSessionRepository(redisClient)
	lastSeenRepo := repositories.NewRedisLastSeenRepository(redisClient)

	// Services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.JWTSecret, cfg.JWTExpiry)
	messagingService := services.NewMessagingService(conversationRepo, messageRepo, userRepo)

	// Realtime core
	presenceTable := realtime.NewTable()
	relay := realtime.NewRelay(presenceTable)
	hub := realtime.NewHub(presenceTable, relay, authService, messageRepo, lastSeenRepo, cfg.ClientURL)

	notificationService := services.NewNotificationService(notificationRepo, relay)

	router := handlers.NewRouter(cfg, authService, messagingService, notificationService, presenceTable, lastSeenRepo, hub)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("Starting server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// graceful shutdown
	group.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-groupCtx.Done():
			return nil
		}

		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
