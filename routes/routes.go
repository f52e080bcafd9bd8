package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"planpoker/config"
	"planpoker/handlers"
	"planpoker/services"
)

func SetupRoutes(
	router *gin.Engine,
	gameHandler *handlers.GameHandler,
	hub *services.Hub,
	cfg *config.Config,
) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}

	// API routes
	api := router.Group("/api")
	{
		api.GET("/health", gameHandler.Health)
		api.POST("/create-game", gameHandler.CreateGame)
		api.GET("/game/:gameId", gameHandler.GetGame)
	}

	// WebSocket endpoint for real-time game communication. Games are joined
	// by message, not by URL, so one endpoint serves every room.
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		hub.RegisterClient(conn)
	})
}
