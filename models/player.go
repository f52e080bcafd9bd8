package models

// Player is one participant inside a game, owned by exactly one live
// connection. Vote is any JSON scalar the client sent (card value or a
// sentinel like "?"); nil means no vote this round.
type Player struct {
	ClientID string `json:"id"`
	Username string `json:"username"`
	Vote     any    `json:"vote"`
}

func NewPlayer(clientID, username string) *Player {
	return &Player{
		ClientID: clientID,
		Username: username,
		Vote:     nil,
	}
}

// HasVoted reports whether the player has submitted a vote this round.
func (p *Player) HasVoted() bool {
	return p.Vote != nil
}
