package elo

import (
	"math"

	"karuta-rating/internal/domain"
)

// ExpectedScore returns the modeled win probability for a player rated
// ratingA against an opponent rated ratingB.
func ExpectedScore(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// PerformanceScore blends the win/loss outcome with the share of cards
// captured. cardWeight in [0,1] controls how much the card margin matters.
//
// When both players captured the same number of cards the match was decided
// by a separate tiebreak, so the card counts carry no information and the
// base score is returned as-is.
func PerformanceScore(outcome domain.Outcome, cardsWon, cardsLost int, cardWeight float64) float64 {
	var base float64
	switch outcome {
	case domain.OutcomeWin:
		base = 1.0
	case domain.OutcomeLoss:
		base = 0.0
	default:
		// unreachable with validated data, kept as a defined fallback
		base = 0.5
	}

	if cardsWon == cardsLost {
		return base
	}

	ratio := float64(cardsWon) / float64(cardsWon+cardsLost)
	score := (1-cardWeight)*base + cardWeight*ratio

	return math.Max(0.0, math.Min(1.0, score))
}
