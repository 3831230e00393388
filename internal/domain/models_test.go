package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		token    string
		expected Outcome
	}{
		{"勝", OutcomeWin},
		{"勝利", OutcomeWin},
		{"〇", OutcomeWin},
		{"負", OutcomeLoss},
		{"敗北", OutcomeLoss},
		{"✕", OutcomeLoss},
		{"引分", OutcomeUnknown},
		{"win", OutcomeUnknown},
		{"", OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOutcome(tt.token))
		})
	}
}

func TestOutcomeOpposite(t *testing.T) {
	assert.Equal(t, OutcomeLoss, OutcomeWin.Opposite())
	assert.Equal(t, OutcomeWin, OutcomeLoss.Opposite())
	assert.Equal(t, OutcomeUnknown, OutcomeUnknown.Opposite())
}
