package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/router"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

const devJWTSecret = "dev-insecure-jwt-secret"

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	secret := cfg.JWTSecret
	if secret == "" && !cfg.IsRelease() {
		log.Println("JWT_SECRET is not set, using an insecure development secret")
		secret = devJWTSecret
	}
	tokens, err := auth.NewTokenService(secret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}

	// Initialize AI service
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	r := router.New(router.Dependencies{
		TaskService:    services.NewTaskService(taskRepo, userRepo, suggester),
		CommentService: services.NewCommentService(commentRepo, taskRepo),
		AuthService:    services.NewAuthService(userRepo, tokens),
		UserRepo:       userRepo,
		Tokens:         tokens,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
