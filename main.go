package main

import (
	"log"

	"quizhub/config"
	"quizhub/handlers"
	"quizhub/models"
	"quizhub/routes"
	"quizhub/services"

	"github.com/gin-gonic/gin"
)

func main() {
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
		&models.Quiz{},
		&models.Question{},
		&models.Option{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	sessions := services.NewSessionStore(redisClient, cfg.SessionTTL)
	authService := services.NewAuthService(db, sessions)
	quizService := services.NewQuizService(db)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecret, cfg.SessionTTL)
	quizHandler := handlers.NewQuizHandler(quizService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Setup Gin router
	router := gin.Default()
	routes.SetupRoutes(router, authHandler, quizHandler, statsHandler, sessions, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
