package sheet

import (
	"fmt"

	"karuta-rating/internal/domain"

	"github.com/xuri/excelize/v2"
)

var historyHeader = []string{
	"match_number", "player_a", "player_b", "result_a", "cards_a", "cards_b",
	"actual_score_a", "expected_score_a",
	"rating_a_before", "rating_b_before", "rating_a_after", "rating_b_after",
	"rating_change_a", "rating_change_b",
}

// WriteResults saves the ratings table and, when any updates were applied,
// the match history into a results workbook at path.
func WriteResults(path string, snapshot []domain.PlayerRating, history []domain.HistoryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RatingsSheet); err != nil {
		return fmt.Errorf("failed to create ratings sheet: %w", err)
	}

	if err := writeRow(f, RatingsSheet, 1, "player", "rating", "wins", "losses"); err != nil {
		return err
	}
	for i, p := range snapshot {
		if err := writeRow(f, RatingsSheet, i+2, p.Player, p.Rating, p.Wins, p.Losses); err != nil {
			return err
		}
	}

	if len(history) > 0 {
		if _, err := f.NewSheet(HistorySheet); err != nil {
			return fmt.Errorf("failed to create history sheet: %w", err)
		}

		cells := make([]interface{}, len(historyHeader))
		for i, h := range historyHeader {
			cells[i] = h
		}
		if err := writeRow(f, HistorySheet, 1, cells...); err != nil {
			return err
		}
		for i, e := range history {
			err := writeRow(f, HistorySheet, i+2,
				e.MatchNumber, e.PlayerA, e.PlayerB, e.ResultA, e.CardsA, e.CardsB,
				e.ActualA, e.ExpectedA,
				e.RatingABefore, e.RatingBBefore, e.RatingAAfter, e.RatingBAfter,
				e.ChangeA, e.ChangeB,
			)
			if err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save results workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cellName, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("bad cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cellName, v); err != nil {
			return fmt.Errorf("failed to write cell %s!%s: %w", sheet, cellName, err)
		}
	}
	return nil
}
