package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPlayerGame() *Game {
	game := NewGame("g1")
	game.Creator = "alice"
	game.Started = true
	game.Players = []*Player{
		{ClientID: "c1", Username: "alice", Vote: "5"},
		{ClientID: "c2", Username: "bob", Vote: nil},
	}
	return game
}

func TestMaskedStateNeverSerializesVotes(t *testing.T) {
	state := MaskedState(twoPlayerGame())

	data, err := json.Marshal(Message{Type: EventUpdateGameState, Payload: state})
	require.NoError(t, err)

	var decoded struct {
		Payload struct {
			Players []struct {
				Username string `json:"username"`
				HasVoted bool   `json:"hasVoted"`
				Vote     any    `json:"vote"`
			} `json:"players"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Payload.Players, 2)
	assert.True(t, decoded.Payload.Players[0].HasVoted)
	assert.False(t, decoded.Payload.Players[1].HasVoted)
	for _, p := range decoded.Payload.Players {
		assert.Nil(t, p.Vote)
	}
	assert.NotContains(t, string(data), `"5"`)
}

func TestFullStateCarriesRawVotes(t *testing.T) {
	state := FullState(twoPlayerGame())

	players, ok := state.Players.([]FullPlayerView)
	require.True(t, ok)
	require.Len(t, players, 2)
	assert.Equal(t, "5", players[0].Vote)
	assert.Nil(t, players[1].Vote)
	assert.Equal(t, "alice", state.Creator)
	assert.True(t, state.Started)
}

func TestGameStatusDerivation(t *testing.T) {
	game := NewGame("g1")
	assert.Equal(t, StatusWaiting, game.Status())

	game.Started = true
	assert.Equal(t, StatusVoting, game.Status())

	game.Revealed = true
	assert.Equal(t, StatusRevealed, game.Status())
}
