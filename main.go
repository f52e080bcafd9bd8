package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"planpoker/config"
	"planpoker/handlers"
	"planpoker/middleware"
	"planpoker/routes"
	"planpoker/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize the in-memory store and the realtime hub
	store := services.NewGameStore()
	hub := services.NewHub()
	gameService := services.NewGameService(store, hub)
	hub.SetGameService(gameService)
	go hub.Run()

	// Periodically sweep games everyone has left
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			count := gameService.CleanupEmptyGames()
			log.Printf("Cleaned up %d empty games", count)
		}
	}()

	// Initialize handlers
	gameHandler := handlers.NewGameHandler(gameService)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.CORS(cfg))

	routes.SetupRoutes(router, gameHandler, hub, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
