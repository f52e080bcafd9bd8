package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planpoker/services"
)

type noopNotifier struct{}

func (noopNotifier) BroadcastToGame(string, string, any) {}
func (noopNotifier) SendToClient(string, string, any)    {}
func (noopNotifier) BindToGame(string, string)           {}

func newTestRouter() (*gin.Engine, *services.GameService) {
	gin.SetMode(gin.TestMode)

	store := services.NewGameStore()
	service := services.NewGameService(store, noopNotifier{})
	handler := NewGameHandler(service)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/health", handler.Health)
	api.POST("/create-game", handler.CreateGame)
	api.GET("/game/:gameId", handler.GetGame)

	return router, service
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doRequest(router, http.MethodGet, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateGameReturnsFreshID(t *testing.T) {
	router, _ := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/create-game")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body["gameId"], 6)

	// the fresh game is immediately fetchable as a waiting room
	w = doRequest(router, http.MethodGet, "/api/game/"+body["gameId"])
	require.Equal(t, http.StatusOK, w.Code)

	var game map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &game))
	assert.Equal(t, false, game["started"])
	assert.Equal(t, false, game["revealed"])
	assert.Empty(t, game["players"])
	assert.NotContains(t, game, "summary")
}

func TestGetGameNotFound(t *testing.T) {
	router, _ := newTestRouter()

	w := doRequest(router, http.MethodGet, "/api/game/nope")

	require.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Game not found", body["error"])
}

func TestGetGameIncludesSummaryWhenRevealed(t *testing.T) {
	router, service := newTestRouter()

	service.Join("g1", "c1", "alice")
	service.Join("g1", "c2", "bob")
	service.Start("g1", "alice", nil)
	service.Vote("g1", "alice", "5")
	service.Vote("g1", "bob", "8")
	service.Reveal("g1")

	w := doRequest(router, http.MethodGet, "/api/game/g1")

	require.Equal(t, http.StatusOK, w.Code)
	var game struct {
		Started  bool `json:"started"`
		Revealed bool `json:"revealed"`
		Players  []struct {
			Username string `json:"username"`
			Vote     any    `json:"vote"`
		} `json:"players"`
		Summary *struct {
			Average     string  `json:"average"`
			ClosestCard *string `json:"closestCard"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &game))

	assert.True(t, game.Started)
	assert.True(t, game.Revealed)
	require.Len(t, game.Players, 2)
	assert.Equal(t, "5", game.Players[0].Vote)
	assert.Equal(t, "8", game.Players[1].Vote)
	require.NotNil(t, game.Summary)
	assert.Equal(t, "6.5", game.Summary.Average)
}
