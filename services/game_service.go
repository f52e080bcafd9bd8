package services

import (
	"log"
	"sync"

	"planpoker/models"
)

// Notifier delivers outbound events to connections. The hub implements it;
// tests substitute a recording fake.
type Notifier interface {
	BroadcastToGame(gameID string, event string, payload any)
	SendToClient(clientID string, event string, payload any)
	BindToGame(clientID string, gameID string)
}

// GameService owns every game state transition. A single mutex serializes
// events across all games, so each one runs to completion before the next
// and no two events ever interleave on the same game.
type GameService struct {
	store    *GameStore
	notifier Notifier
	mu       sync.Mutex
}

func NewGameService(store *GameStore, notifier Notifier) *GameService {
	return &GameService{
		store:    store,
		notifier: notifier,
	}
}

// CreateGame registers an empty waiting game under a fresh id and returns
// the id. The first player to join claims creatorship.
func (s *GameService) CreateGame() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	gameID := NewGameID()
	for {
		if _, exists := s.store.Get(gameID); !exists {
			break
		}
		gameID = NewGameID()
	}
	s.store.Put(models.NewGame(gameID))
	log.Printf("New game created: %s", gameID)
	return gameID
}

// Join adds the connection to a game, creating the game on first contact.
// A connection re-sending its own join is accepted again rather than being
// rejected as a duplicate of itself; a username held by another connection
// is rejected with usernameExists to the caller only.
func (s *GameService) Join(gameID, clientID, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, created := s.store.GetOrCreate(gameID)
	if created {
		log.Printf("New game created on join: %s", gameID)
	}

	if existing := game.FindPlayerByClient(clientID); existing != nil {
		if existing.Username != username {
			log.Printf("Renaming player %s to %s in game %s", existing.Username, username, gameID)
			existing.Username = username
		}
		s.notifier.SendToClient(clientID, models.EventJoinSuccess, models.JoinSuccessPayload{GameID: gameID, Username: username})
		s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.FullState(game))
		return
	}

	if game.FindPlayerByName(username) != nil {
		log.Printf("Duplicate username %s in game %s", username, gameID)
		s.notifier.SendToClient(clientID, models.EventUsernameExists, models.ErrorPayload{Message: models.ErrUsernameExists.Error()})
		return
	}

	game.Players = append(game.Players, models.NewPlayer(clientID, username))
	if game.Creator == "" {
		game.Creator = username
	}
	s.notifier.BindToGame(clientID, gameID)
	log.Printf("Player %s joined game %s (%d total)", username, gameID, len(game.Players))

	s.notifier.SendToClient(clientID, models.EventJoinSuccess, models.JoinSuccessPayload{GameID: gameID, Username: username})
	s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.FullState(game))
}

// Start opens voting. Only the creator may start; anyone else is ignored
// without a reply.
func (s *GameService) Start(gameID, username string, topic *string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, exists := s.store.Get(gameID)
	if !exists || game.Creator != username {
		return
	}

	if topic != nil && *topic == "" {
		topic = nil
	}
	game.Started = true
	game.CurrentTopic = topic
	log.Printf("Game started: %s", gameID)

	s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.FullState(game))
}

// Vote records a player's vote and re-hides all votes until the next
// reveal. The broadcast that follows never carries raw vote values.
func (s *GameService) Vote(gameID, username string, vote any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, exists := s.store.Get(gameID)
	if !exists {
		return
	}

	if player := game.FindPlayerByName(username); player != nil {
		player.Vote = vote
	}
	game.Revealed = false

	s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.MaskedState(game))
}

// Reveal exposes every submitted vote to all participants at once.
func (s *GameService) Reveal(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, exists := s.store.Get(gameID)
	if !exists {
		return
	}

	game.Revealed = true
	s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.FullState(game))
}

// Restart clears votes and flags for a new round. Clients get the fresh
// state first, then a separate gameRestarted signal to drop any local
// selection.
func (s *GameService) Restart(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, exists := s.store.Get(gameID)
	if !exists {
		return
	}

	for _, player := range game.Players {
		player.Vote = nil
	}
	game.Started = false
	game.Revealed = false
	game.CurrentTopic = nil
	log.Printf("Game restarted: %s", gameID)

	s.notifier.BroadcastToGame(gameID, models.EventUpdateGameState, models.FullState(game))
	s.notifier.BroadcastToGame(gameID, models.EventGameRestarted, nil)
}

// Disconnect removes the connection's player row from every game holding
// one and updates the remaining members. Unknown connections are a no-op.
func (s *GameService) Disconnect(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected []*models.Game
	s.store.Range(func(_ string, game *models.Game) bool {
		if game.RemovePlayerByClient(clientID) {
			affected = append(affected, game)
		}
		return true
	})

	for _, game := range affected {
		log.Printf("Player disconnected from game %s (%d remaining)", game.ID, len(game.Players))
		s.notifier.BroadcastToGame(game.ID, models.EventUpdateGameState, models.FullState(game))
	}
}

// Snapshot returns the full projection of a game plus, once revealed, the
// vote summary. Used by the HTTP surface.
func (s *GameService) Snapshot(gameID string) (models.GameStateView, *VoteSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, exists := s.store.Get(gameID)
	if !exists {
		return models.GameStateView{}, nil, false
	}

	var summary *VoteSummary
	if game.Revealed {
		summary = VotingAverage(game.Players)
	}
	return models.FullState(game), summary, true
}

// CleanupEmptyGames sweeps games without players and returns how many were
// removed. Run periodically by the server.
func (s *GameService) CleanupEmptyGames() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.CleanupEmpty()
}
