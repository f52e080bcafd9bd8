package models

import "github.com/samber/lo"

// Wire event names. These match what the web clients listen for, so they
// must not change.
const (
	EventJoinGame    = "joinGame"
	EventStartGame   = "startGame"
	EventVote        = "vote"
	EventReveal      = "reveal"
	EventRestartGame = "restartGame"

	EventJoinSuccess     = "joinSuccess"
	EventUsernameExists  = "usernameExists"
	EventUpdateGameState = "updateGameState"
	EventGameRestarted   = "gameRestarted"
)

// Message is the envelope for every websocket frame in both directions.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Inbound payloads.

type JoinPayload struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

type StartPayload struct {
	GameID   string  `json:"gameId"`
	Username string  `json:"username"`
	Topic    *string `json:"topic"`
}

type VotePayload struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
	Vote     any    `json:"vote"`
}

type RevealPayload struct {
	GameID string `json:"gameId"`
}

type RestartPayload struct {
	GameID string `json:"gameId"`
}

// Outbound payloads.

type JoinSuccessPayload struct {
	GameID   string `json:"gameId"`
	Username string `json:"username"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// FullPlayerView exposes the raw vote. Used for every broadcast except the
// one that follows a vote submission.
type FullPlayerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Vote     any    `json:"vote"`
}

// MaskedPlayerView hides votes behind a hasVoted flag while a round is in
// progress. Vote is always null here.
type MaskedPlayerView struct {
	Username string `json:"username"`
	HasVoted bool   `json:"hasVoted"`
	Vote     any    `json:"vote"`
}

// GameStateView is the updateGameState payload. Players holds either full
// or masked views, chosen by the constructor, never built inline.
type GameStateView struct {
	Players      any     `json:"players"`
	Started      bool    `json:"started"`
	Creator      string  `json:"creator"`
	Revealed     bool    `json:"revealed"`
	CurrentTopic *string `json:"currentTopic"`
}

// FullState projects the game with raw votes included.
func FullState(g *Game) GameStateView {
	players := lo.Map(g.Players, func(p *Player, _ int) FullPlayerView {
		return FullPlayerView{ID: p.ClientID, Username: p.Username, Vote: p.Vote}
	})
	return GameStateView{
		Players:      players,
		Started:      g.Started,
		Creator:      g.Creator,
		Revealed:     g.Revealed,
		CurrentTopic: g.CurrentTopic,
	}
}

// MaskedState projects the game with votes hidden, only marking who voted.
func MaskedState(g *Game) GameStateView {
	players := lo.Map(g.Players, func(p *Player, _ int) MaskedPlayerView {
		return MaskedPlayerView{Username: p.Username, HasVoted: p.HasVoted(), Vote: nil}
	})
	return GameStateView{
		Players:      players,
		Started:      g.Started,
		Creator:      g.Creator,
		Revealed:     g.Revealed,
		CurrentTopic: g.CurrentTopic,
	}
}
