package elo

import (
	"testing"

	"karuta-rating/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name     string
		ratingA  float64
		ratingB  float64
		expected float64
	}{
		{"equal ratings", 1500, 1500, 0.5},
		{"400 points ahead", 1900, 1500, 10.0 / 11.0},
		{"400 points behind", 1500, 1900, 1.0 / 11.0},
		{"200 points ahead", 1700, 1500, 0.7597},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ExpectedScore(tt.ratingA, tt.ratingB), 1e-4)
		})
	}
}

func TestExpectedScoreSymmetry(t *testing.T) {
	pairs := [][2]float64{
		{1500, 1500},
		{1200, 1800},
		{2100, 900},
		{1500.5, 1499.5},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		assert.InDelta(t, 1.0, ExpectedScore(a, b)+ExpectedScore(b, a), 1e-12)
	}

	assert.Equal(t, 0.5, ExpectedScore(1500, 1500))
	assert.Equal(t, 0.5, ExpectedScore(873.2, 873.2))
}

func TestPerformanceScore(t *testing.T) {
	tests := []struct {
		name      string
		outcome   domain.Outcome
		cardsWon  int
		cardsLost int
		weight    float64
		expected  float64
	}{
		{"shutout win", domain.OutcomeWin, 17, 0, 0.3, 1.0},
		{"shutout loss", domain.OutcomeLoss, 0, 17, 0.3, 0.0},
		{"close win", domain.OutcomeWin, 10, 7, 0.3, 0.7 + 0.3*10.0/17.0},
		{"close loss", domain.OutcomeLoss, 7, 10, 0.3, 0.3 * 7.0 / 17.0},
		{"zero weight ignores cards on win", domain.OutcomeWin, 9, 8, 0, 1.0},
		{"zero weight ignores cards on loss", domain.OutcomeLoss, 8, 9, 0, 0.0},
		{"full weight is pure card ratio", domain.OutcomeWin, 10, 7, 1, 10.0 / 17.0},
		{"unknown token is neutral", domain.OutcomeUnknown, 5, 5, 0.3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerformanceScore(tt.outcome, tt.cardsWon, tt.cardsLost, tt.weight)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestPerformanceScoreEqualCapture(t *testing.T) {
	// a tied capture count is settled by a separate tiebreak, so the card
	// ratio must be ignored for every weight
	for _, n := range []int{0, 8, 10} {
		for _, w := range []float64{0, 0.3, 0.5, 1} {
			assert.Equal(t, 1.0, PerformanceScore(domain.OutcomeWin, n, n, w))
			assert.Equal(t, 0.0, PerformanceScore(domain.OutcomeLoss, n, n, w))
		}
	}
}

func TestPerformanceScoreRange(t *testing.T) {
	for cardsWon := 0; cardsWon <= 20; cardsWon++ {
		for cardsLost := 0; cardsLost <= 20; cardsLost++ {
			for _, w := range []float64{0, 0.25, 0.5, 0.75, 1} {
				for _, o := range []domain.Outcome{domain.OutcomeWin, domain.OutcomeLoss, domain.OutcomeUnknown} {
					got := PerformanceScore(o, cardsWon, cardsLost, w)
					assert.GreaterOrEqual(t, got, 0.0)
					assert.LessOrEqual(t, got, 1.0)
				}
			}
		}
	}
}
