package report

import (
	"bytes"
	"strings"
	"testing"

	"karuta-rating/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"ascii", "abc", 3},
		{"kanji name", "田中太郎", 8},
		{"mixed", "A太郎", 5},
		{"fullwidth circle", "〇", 2},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.width, displayWidth(tt.input))
		})
	}
}

func TestPrintAlignsByDisplayCells(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, []domain.PlayerRating{
		{Player: "田中太郎", Rating: 1516.0, Wins: 1, Losses: 0},
		{Player: "Bob", Rating: 1484.0, Wins: 0, Losses: 1},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "player      rating  wins/losses", lines[0])
	// 8 display cells of kanji + 2 spaces, 3 of ascii + 7 spaces
	assert.Equal(t, "  田中太郎 1516.0  1/0", lines[1])
	assert.Equal(t, "       Bob 1484.0  0/1", lines[2])
}
