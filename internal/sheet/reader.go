// Package sheet reads and writes the Excel workbooks the rating engine
// exchanges with the league organizers: the monthly match sheet, the
// previous-month checkpoint and the results workbook.
package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"karuta-rating/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Match sheet column headers, as produced by the league's score keepers.
const (
	ColMatchNumber = "試合番号"
	ColPlayer      = "名前"
	ColOpponent    = "相手"
	ColResult      = "結果"
	ColCards       = "獲得札数"
)

// Output / checkpoint sheet names.
const (
	RatingsSheet = "レーティング"
	HistorySheet = "試合履歴"
)

// ReadMatches loads all match rows from the workbook at path. sheetName
// selects the sheet; empty means the first sheet. Rows with blank cells are
// kept but marked incomplete so the processor can report how many
// placeholders it discarded. A workbook that cannot be opened or is missing
// a required column is a fatal load error for the caller.
func ReadMatches(path, sheetName string) ([]domain.MatchRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match workbook %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheetName)
	}

	cols, err := headerIndex(rows[0], ColMatchNumber, ColPlayer, ColOpponent, ColResult, ColCards)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}

	matches := make([]domain.MatchRow, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		row := domain.MatchRow{
			Player:   cell(raw, cols[ColPlayer]),
			Opponent: cell(raw, cols[ColOpponent]),
			Result:   strings.TrimSpace(cell(raw, cols[ColResult])),
			Complete: true,
		}

		numCell := strings.TrimSpace(cell(raw, cols[ColMatchNumber]))
		cardsCell := strings.TrimSpace(cell(raw, cols[ColCards]))
		if numCell == "" || cardsCell == "" ||
			strings.TrimSpace(row.Player) == "" ||
			strings.TrimSpace(row.Opponent) == "" ||
			row.Result == "" {
			row.Complete = false
			matches = append(matches, row)
			continue
		}

		if row.MatchNumber, err = parseInt(numCell); err != nil {
			row.Complete = false
		}
		if row.Cards, err = parseInt(cardsCell); err != nil {
			row.Complete = false
		}
		matches = append(matches, row)
	}

	return matches, nil
}

// ReadCheckpoint loads a previously saved ratings sheet. Any malformed row
// is an error; the caller treats it as a checkpoint load failure and starts
// from a fresh store.
func ReadCheckpoint(path string) ([]domain.PlayerRating, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(RatingsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", RatingsSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", RatingsSheet)
	}

	cols, err := headerIndex(rows[0], "player", "rating", "wins", "losses")
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", RatingsSheet, err)
	}

	entries := make([]domain.PlayerRating, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		entry := domain.PlayerRating{
			Player: strings.TrimSpace(cell(raw, cols["player"])),
		}
		if entry.Player == "" {
			return nil, fmt.Errorf("checkpoint row %d: empty player name", i+2)
		}
		if entry.Rating, err = strconv.ParseFloat(strings.TrimSpace(cell(raw, cols["rating"])), 64); err != nil {
			return nil, fmt.Errorf("checkpoint row %d: bad rating: %w", i+2, err)
		}
		if entry.Wins, err = parseInt(cell(raw, cols["wins"])); err != nil {
			return nil, fmt.Errorf("checkpoint row %d: bad wins: %w", i+2, err)
		}
		if entry.Losses, err = parseInt(cell(raw, cols["losses"])); err != nil {
			return nil, fmt.Errorf("checkpoint row %d: bad losses: %w", i+2, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func headerIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

// cell returns the value at idx; excelize returns ragged row slices with
// trailing empty cells trimmed.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseInt accepts both "17" and the "17.0" shape Excel sometimes stores
// for numeric cells.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(fl), nil
}
