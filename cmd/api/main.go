package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartchef/backend/config"
	"github.com/smartchef/backend/internal/api"
	"github.com/smartchef/backend/internal/database"
	"github.com/smartchef/backend/internal/middleware"
	"github.com/smartchef/backend/internal/router"
	"github.com/smartchef/backend/internal/server"
	"github.com/smartchef/backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// Rate limiting is the only redis consumer; run without it.
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	var textModel service.TextModel
	if gemini, err := service.NewGeminiModel(ctx, cfg); err != nil {
		// All generations degrade to the fallback recipe without a model.
		log.Printf("Generative model unavailable: %v", err)
	} else {
		textModel = gemini
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	generator := service.NewRecipeGenerator(textModel)
	rateLimiter := middleware.NewSuggestionRateLimiter(redisClient)

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, generator, authService, rateLimiter)

	srv := server.New(cfg, router.SetupRouter(authHandler, recipeHandler, db))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
