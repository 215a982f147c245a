package main

import (
	"log"

	"tasklist-be/internal/cache"
	"tasklist-be/internal/config"
	"tasklist-be/internal/controllers"
	"tasklist-be/internal/database"
	"tasklist-be/internal/jwt"
	"tasklist-be/internal/repository"
	"tasklist-be/internal/router"
	"tasklist-be/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// Connect to database and apply migrations
	db, dialect, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	log.Printf("Database ready (%s)", dialect)

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.TokenTTL())

	// Initialize services
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(cfg.BcryptCost), jwtService)
	taskService := service.NewTaskService(taskRepo, cacheClient, cfg.TaskCacheTTL)

	engine := router.New(router.Options{
		AuthController:     controllers.NewAuthController(authService),
		TaskController:     controllers.NewTaskController(taskService),
		TokenVerifier:      jwtService,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	addr := ":" + cfg.Port
	log.Printf("Server starting on http://localhost%s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
