package models

// Game phases, derived from the Started/Revealed flags.
const (
	StatusWaiting  = "waiting"
	StatusVoting   = "voting"
	StatusRevealed = "revealed"
)

// Game is one estimation session. Players keep join order so broadcasts
// stay deterministic.
type Game struct {
	ID           string    `json:"id"`
	Players      []*Player `json:"players"`
	Started      bool      `json:"started"`
	Creator      string    `json:"creator"`
	Revealed     bool      `json:"revealed"`
	CurrentTopic *string   `json:"currentTopic"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		Players: []*Player{},
	}
}

// Status reports the presentation phase of the game.
func (g *Game) Status() string {
	switch {
	case g.Revealed:
		return StatusRevealed
	case g.Started:
		return StatusVoting
	default:
		return StatusWaiting
	}
}

// FindPlayerByName returns the player with the given username, or nil.
func (g *Game) FindPlayerByName(username string) *Player {
	for _, p := range g.Players {
		if p.Username == username {
			return p
		}
	}
	return nil
}

// FindPlayerByClient returns the player bound to the given connection, or nil.
func (g *Game) FindPlayerByClient(clientID string) *Player {
	for _, p := range g.Players {
		if p.ClientID == clientID {
			return p
		}
	}
	return nil
}

// RemovePlayerByClient drops the player row owned by the given connection
// and reports whether a row was removed.
func (g *Game) RemovePlayerByClient(clientID string) bool {
	for i, p := range g.Players {
		if p.ClientID == clientID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return true
		}
	}
	return false
}
