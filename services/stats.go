package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samber/lo"

	"planpoker/models"
)

// DefaultDeck is the card set clients estimate with. Only its numeric cards
// take part in the closest-card suggestion.
var DefaultDeck = []string{"0", "1", "2", "3", "5", "8", "13", "21", "34", "65", "?"}

// VoteSummary is the aggregate shown once votes are revealed.
type VoteSummary struct {
	Average     string  `json:"average"`
	ClosestCard *string `json:"closestCard"`
}

// VotingAverage computes the arithmetic mean over votes that parse as finite
// numbers, rounded to one decimal for display, together with the numeric deck
// card closest to it. Sentinel votes ("?", "∞", "coffee") are skipped. Returns
// nil when no numeric votes exist.
func VotingAverage(players []*models.Player) *VoteSummary {
	numeric := lo.FilterMap(players, func(p *models.Player, _ int) (float64, bool) {
		return parseVote(p.Vote)
	})
	if len(numeric) == 0 {
		return nil
	}

	average := lo.Sum(numeric) / float64(len(numeric))
	summary := &VoteSummary{
		Average: strconv.FormatFloat(average, 'f', 1, 64),
	}

	cards := lo.FilterMap(DefaultDeck, func(card string, _ int) (float64, bool) {
		return parseVote(card)
	})
	if len(cards) > 0 {
		closest := lo.MinBy(cards, func(a, b float64) bool {
			return math.Abs(a-average) < math.Abs(b-average)
		})
		card := strconv.FormatFloat(closest, 'f', -1, 64)
		summary.ClosestCard = &card
	}
	return summary
}

// parseVote interprets a vote of any JSON scalar type as a finite number.
func parseVote(vote any) (float64, bool) {
	if vote == nil {
		return 0, false
	}
	var value float64
	switch v := vote.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		parsed, err := strconv.ParseFloat(fmt.Sprint(v), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
