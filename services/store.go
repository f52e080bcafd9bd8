package services

import (
	"sync"

	"planpoker/models"
)

// GameStore is the in-memory source of truth for all games.
type GameStore struct {
	games map[string]*models.Game
	mutex sync.RWMutex
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string]*models.Game),
	}
}

// GetOrCreate returns the game with the given id, creating an empty one if
// absent. The second result reports whether a new game was created.
func (s *GameStore) GetOrCreate(gameID string) (*models.Game, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if game, exists := s.games[gameID]; exists {
		return game, false
	}
	game := models.NewGame(gameID)
	s.games[gameID] = game
	return game, true
}

// Get returns a game by id.
func (s *GameStore) Get(gameID string) (*models.Game, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	game, exists := s.games[gameID]
	return game, exists
}

// Put registers a game under its id, replacing any existing entry.
func (s *GameStore) Put(game *models.Game) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.games[game.ID] = game
}

// Range calls fn for every stored game until fn returns false.
func (s *GameStore) Range(fn func(gameID string, game *models.Game) bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for id, game := range s.games {
		if !fn(id, game) {
			return
		}
	}
}

// CleanupEmpty removes games that have no players and returns how many were
// dropped.
func (s *GameStore) CleanupEmpty() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	count := 0
	for id, game := range s.games {
		if len(game.Players) == 0 {
			delete(s.games, id)
			count++
		}
	}
	return count
}
