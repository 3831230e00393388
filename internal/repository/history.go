package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"karuta-rating/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type HistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewHistoryRepository(sqlDB *sql.DB, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const insertHistoryQuery = `
INSERT INTO rating_history (
    id, match_number, player_a, player_b, result_a, cards_a, cards_b,
    expected_a, actual_a,
    rating_a_before, rating_b_before, rating_a_after, rating_b_after,
    created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertBatch appends the run's history entries in one transaction,
// preserving their applied order. Entries without an ID get a nanoid.
func (r *HistoryRepository) InsertBatch(ctx context.Context, entries []domain.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx, insertHistoryQuery,
			id, e.MatchNumber, e.PlayerA, e.PlayerB, e.ResultA, e.CardsA, e.CardsB,
			e.ExpectedA, e.ActualA,
			e.RatingABefore, e.RatingBBefore, e.RatingAAfter, e.RatingBAfter,
			now)
		if err != nil {
			return fmt.Errorf("failed to insert history entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetByPlayer returns the most recent history entries involving a player.
func (r *HistoryRepository) GetByPlayer(ctx context.Context, player string, limit int) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, match_number, player_a, player_b, result_a, cards_a, cards_b,
       expected_a, actual_a,
       rating_a_before, rating_b_before, rating_a_after, rating_b_after
FROM rating_history
WHERE player_a = ? OR player_b = ?
ORDER BY created_at DESC, match_number DESC
LIMIT ?`, player, player, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating history: %w", err)
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		err := rows.Scan(
			&e.ID, &e.MatchNumber, &e.PlayerA, &e.PlayerB, &e.ResultA, &e.CardsA, &e.CardsB,
			&e.ExpectedA, &e.ActualA,
			&e.RatingABefore, &e.RatingBBefore, &e.RatingAAfter, &e.RatingBAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		e.ChangeA = e.RatingAAfter - e.RatingABefore
		e.ChangeB = e.RatingBAfter - e.RatingBBefore
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating history: %w", err)
	}

	return result, nil
}
