package main

import (
	"log"

	"gamenight/config"
	"gamenight/engine"
	"gamenight/handlers"
	"gamenight/middleware"
	"gamenight/models"
	"gamenight/routes"
	"gamenight/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Evening{},
		&models.Player{},
		&models.GameRecord{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	registry := engine.DefaultRegistry()
	authService := services.NewAuthService(db, cfg.JWTSecret)
	eveningService := services.NewEveningService(db)
	gameService := services.NewGameService(db, redisClient, registry, cfg.EditWindow, cfg.StandingsTTL)

	// Initialize WebSocket hub
	hub := services.NewHub(gameService)
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	eveningHandler := handlers.NewEveningHandler(eveningService)
	gameHandler := handlers.NewGameHandler(gameService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, eveningHandler, gameHandler, hub, eveningService, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
