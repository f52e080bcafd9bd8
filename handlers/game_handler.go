package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"planpoker/models"
	"planpoker/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// Health reports liveness.
func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateGame registers an empty waiting game and returns its id.
func (h *GameHandler) CreateGame(c *gin.Context) {
	gameID := h.gameService.CreateGame()
	c.JSON(http.StatusOK, gin.H{"gameId": gameID})
}

// GetGame returns the current state of a game, including the vote summary
// once votes are revealed.
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID := c.Param("gameId")

	state, summary, exists := h.gameService.Snapshot(gameID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": models.ErrGameNotFound.Error()})
		return
	}

	response := gin.H{
		"players":      state.Players,
		"started":      state.Started,
		"creator":      state.Creator,
		"revealed":     state.Revealed,
		"currentTopic": state.CurrentTopic,
	}
	if summary != nil {
		response["summary"] = summary
	}
	c.JSON(http.StatusOK, response)
}
