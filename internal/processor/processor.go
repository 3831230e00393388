package processor

import (
	"sort"
	"strings"

	"karuta-rating/internal/domain"
	"karuta-rating/internal/rating"

	"github.com/rs/zerolog"
)

// Processor validates, deduplicates and applies raw match rows against a
// rating store. It keeps no state between calls; every problem below the
// dataset level is a warning, never a failure.
type Processor struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Processor {
	return &Processor{logger: logger}
}

// Summary reports what one processing pass did.
type Summary struct {
	Applied   int
	Rejected  []domain.Rejection
	Discarded int // incomplete placeholder rows
}

// pairKey identifies one match between one unordered pair of players. The
// dataset stores a row per participant, so every pair is seen twice; only
// the first sighting triggers an update.
type pairKey struct {
	matchNumber int
	low, high   string
}

func makePairKey(matchNumber int, a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{matchNumber: matchNumber, low: a, high: b}
}

// Process runs the full pipeline: clean, trim, group by match number in
// ascending order, then pair up, validate and apply each match. Updates
// must happen in ascending match-number order because every expected score
// depends on the ratings left by earlier matches.
func (p *Processor) Process(rows []domain.MatchRow, store *rating.Store, history *rating.HistoryLog, kFactor, cardWeight float64) Summary {
	var summary Summary

	cleaned := make([]domain.MatchRow, 0, len(rows))
	for _, row := range rows {
		row.Player = strings.TrimSpace(row.Player)
		row.Opponent = strings.TrimSpace(row.Opponent)
		if !row.Complete || row.Player == "" || row.Opponent == "" || row.Result == "" {
			summary.Discarded++
			continue
		}
		cleaned = append(cleaned, row)
	}

	if len(cleaned) == 0 {
		p.logger.Info().Msg("no valid match rows found, ratings unchanged")
		return summary
	}

	groups := make(map[int][]domain.MatchRow)
	numbers := make([]int, 0)
	for _, row := range cleaned {
		if _, ok := groups[row.MatchNumber]; !ok {
			numbers = append(numbers, row.MatchNumber)
		}
		groups[row.MatchNumber] = append(groups[row.MatchNumber], row)
	}
	sort.Ints(numbers)

	processed := make(map[pairKey]bool)

	for _, num := range numbers {
		group := groups[num]
		p.logger.Debug().Int("match_number", num).Int("rows", len(group)).Msg("processing match")

		// one index build per group, opponent lookup is an explicit miss
		byPlayer := make(map[string]domain.MatchRow, len(group))
		for _, row := range group {
			if _, ok := byPlayer[row.Player]; !ok {
				byPlayer[row.Player] = row
			}
		}

		for _, row := range group {
			key := makePairKey(num, row.Player, row.Opponent)
			if processed[key] {
				continue
			}

			opp, ok := byPlayer[row.Opponent]
			if !ok {
				p.reject(&summary, row, domain.RejectMissingOpponentData)
				continue
			}

			if opp.Opponent != row.Player {
				p.logger.Warn().
					Int("match_number", num).
					Str("player", row.Player).
					Str("opponent", row.Opponent).
					Str("declared", opp.Opponent).
					Str("reason", string(domain.RejectOpponentMismatch)).
					Msg("opponent row does not reference player back")
				summary.Rejected = append(summary.Rejected, domain.Rejection{
					MatchNumber: num,
					Player:      row.Player,
					Opponent:    row.Opponent,
					Reason:      domain.RejectOpponentMismatch,
				})
				continue
			}

			outcome := domain.ParseOutcome(row.Result)
			oppOutcome := domain.ParseOutcome(opp.Result)
			if outcome == domain.OutcomeUnknown || oppOutcome != outcome.Opposite() {
				p.logger.Warn().
					Int("match_number", num).
					Str("player", row.Player).
					Str("opponent", row.Opponent).
					Str("result", row.Result).
					Str("opponent_result", opp.Result).
					Str("reason", string(domain.RejectResultContradiction)).
					Msg("results are not logical complements")
				summary.Rejected = append(summary.Rejected, domain.Rejection{
					MatchNumber: num,
					Player:      row.Player,
					Opponent:    row.Opponent,
					Reason:      domain.RejectResultContradiction,
				})
				continue
			}

			update := store.Apply(row.Player, opp.Player, outcome, row.Cards, opp.Cards, kFactor, cardWeight)

			history.Append(domain.HistoryEntry{
				MatchNumber:   num,
				PlayerA:       row.Player,
				PlayerB:       opp.Player,
				ResultA:       row.Result,
				CardsA:        row.Cards,
				CardsB:        opp.Cards,
				ExpectedA:     update.ExpectedA,
				ActualA:       update.ActualA,
				RatingABefore: update.RatingABefore,
				RatingBBefore: update.RatingBBefore,
				RatingAAfter:  update.RatingAAfter,
				RatingBAfter:  update.RatingBAfter,
				ChangeA:       update.RatingAAfter - update.RatingABefore,
				ChangeB:       update.RatingBAfter - update.RatingBBefore,
			})
			processed[key] = true
			summary.Applied++

			p.logger.Info().
				Int("match_number", num).
				Str("player", row.Player).
				Str("opponent", opp.Player).
				Str("result", row.Result).
				Int("cards", row.Cards).
				Int("opponent_cards", opp.Cards).
				Float64("new_rating", update.RatingAAfter).
				Float64("opponent_new_rating", update.RatingBAfter).
				Msg("rating updated")
		}
	}

	if summary.Applied == 0 {
		p.logger.Info().Int("rejected", len(summary.Rejected)).Msg("no rating updates applied")
	}

	return summary
}

func (p *Processor) reject(summary *Summary, row domain.MatchRow, reason domain.RejectReason) {
	p.logger.Warn().
		Int("match_number", row.MatchNumber).
		Str("player", row.Player).
		Str("opponent", row.Opponent).
		Str("reason", string(reason)).
		Msg("opponent row not found")
	summary.Rejected = append(summary.Rejected, domain.Rejection{
		MatchNumber: row.MatchNumber,
		Player:      row.Player,
		Opponent:    row.Opponent,
		Reason:      reason,
	})
}
