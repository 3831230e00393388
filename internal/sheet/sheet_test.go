package sheet

import (
	"path/filepath"
	"testing"

	"karuta-rating/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeMatchWorkbook(t *testing.T, path, sheetName string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheetName))

	header := []interface{}{ColMatchNumber, ColPlayer, ColOpponent, ColResult, ColCards}
	all := append([][]interface{}{header}, rows...)
	for r, cells := range all {
		for c, v := range cells {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheetName, cellName, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.xlsx")
	writeMatchWorkbook(t, path, "5月", [][]interface{}{
		{1, "田中太郎", "佐藤花子", "勝", 17},
		{1, "佐藤花子", "田中太郎", "負", 3},
		{2}, // unplayed placeholder, only the match number is filled in
	})

	rows, err := ReadMatches(path, "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.MatchRow{
		MatchNumber: 1,
		Player:      "田中太郎",
		Opponent:    "佐藤花子",
		Result:      "勝",
		Cards:       17,
		Complete:    true,
	}, rows[0])
	assert.Equal(t, 3, rows[1].Cards)
	assert.False(t, rows[2].Complete)
}

func TestReadMatchesSheetSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.xlsx")
	writeMatchWorkbook(t, path, "6月", [][]interface{}{
		{1, "A", "B", "勝", 10},
	})

	rows, err := ReadMatches(path, "6月")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ReadMatches(path, "7月")
	assert.Error(t, err)
}

func TestReadMatchesMissingFile(t *testing.T) {
	_, err := ReadMatches(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}

func TestReadMatchesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matches.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", ColMatchNumber))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", ColPlayer))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadMatches(path, "")
	assert.ErrorContains(t, err, "missing required column")
}

func TestResultsCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	snapshot := []domain.PlayerRating{
		{Player: "田中太郎", Rating: 1516.0, Wins: 1, Losses: 0},
		{Player: "佐藤花子", Rating: 1484.0, Wins: 0, Losses: 1},
	}
	history := []domain.HistoryEntry{{
		MatchNumber: 1,
		PlayerA:     "田中太郎",
		PlayerB:     "佐藤花子",
		ResultA:     "勝",
		CardsA:      17,
		CardsB:      0,
		ExpectedA:   0.5,
		ActualA:     1.0,
	}}

	require.NoError(t, WriteResults(path, snapshot, history))

	// a results workbook doubles as next month's checkpoint
	entries, err := ReadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, snapshot, entries)
}

func TestWriteResultsSkipsHistorySheetWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, WriteResults(path, []domain.PlayerRating{{Player: "A", Rating: 1500}}, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{RatingsSheet}, f.GetSheetList())
}

func TestReadCheckpointMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", RatingsSheet))
	for i, h := range []string{"player", "rating", "wins", "losses"} {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(RatingsSheet, cellName, h))
	}
	require.NoError(t, f.SetCellValue(RatingsSheet, "A2", "A"))
	require.NoError(t, f.SetCellValue(RatingsSheet, "B2", "not-a-number"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := ReadCheckpoint(path)
	assert.ErrorContains(t, err, "bad rating")
}
