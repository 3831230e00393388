// Package report renders the final standings for the terminal. Player
// names are mostly CJK, so column alignment counts full-width runes as two
// cells.
package report

import (
	"fmt"
	"io"
	"strings"

	"karuta-rating/internal/domain"

	"golang.org/x/text/width"
)

const nameColumnWidth = 10

// Print writes the ratings table, already sorted by Snapshot, to w.
func Print(w io.Writer, snapshot []domain.PlayerRating) {
	fmt.Fprintln(w, "player      rating  wins/losses")
	for _, p := range snapshot {
		fmt.Fprintf(w, "%s %.1f  %d/%d\n", padName(p.Player, nameColumnWidth), p.Rating, p.Wins, p.Losses)
	}
}

// padName right-aligns name in a column of cells, not runes.
func padName(name string, cells int) string {
	pad := cells - displayWidth(name)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + name
}

func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}
