package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"karuta-rating/internal/constants"
	"karuta-rating/internal/domain"

	"github.com/rs/zerolog"
)

// RatingsRepository persists the rating store snapshot between monthly
// runs, so a run without an explicit checkpoint workbook resumes from the
// last saved state.
type RatingsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRatingsRepository(sqlDB *sql.DB, logger zerolog.Logger) *RatingsRepository {
	return &RatingsRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const upsertRatingQuery = `
INSERT INTO player_ratings (player, rating, wins, losses, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(player) DO UPDATE SET
    rating = excluded.rating,
    wins = excluded.wins,
    losses = excluded.losses,
    updated_at = excluded.updated_at`

// UpsertBatch writes the full snapshot in one transaction.
func (r *RatingsRepository) UpsertBatch(ctx context.Context, ratings []domain.PlayerRating) error {
	if len(ratings) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for i := 0; i < len(ratings); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(ratings) {
			end = len(ratings)
		}

		for _, p := range ratings[i:end] {
			_, err := tx.ExecContext(ctx, upsertRatingQuery,
				p.Player, p.Rating, p.Wins, p.Losses, now, now)
			if err != nil {
				return fmt.Errorf("failed to upsert rating for %s: %w", p.Player, err)
			}
		}
	}

	return tx.Commit()
}

// GetAll returns every stored player rating, rating descending. Used as
// the checkpoint source when no checkpoint workbook is supplied.
func (r *RatingsRepository) GetAll(ctx context.Context) ([]domain.PlayerRating, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT player, rating, wins, losses FROM player_ratings ORDER BY rating DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query player ratings: %w", err)
	}
	defer rows.Close()

	var result []domain.PlayerRating
	for rows.Next() {
		var p domain.PlayerRating
		if err := rows.Scan(&p.Player, &p.Rating, &p.Wins, &p.Losses); err != nil {
			return nil, fmt.Errorf("failed to scan player rating: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player ratings: %w", err)
	}

	r.logger.Debug().Int("players", len(result)).Msg("loaded stored ratings")
	return result, nil
}

// Get returns one player's stored rating, or sql.ErrNoRows.
func (r *RatingsRepository) Get(ctx context.Context, player string) (*domain.PlayerRating, error) {
	var p domain.PlayerRating
	err := r.db.QueryRowContext(ctx,
		`SELECT player, rating, wins, losses FROM player_ratings WHERE player = ?`, player).
		Scan(&p.Player, &p.Rating, &p.Wins, &p.Losses)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
