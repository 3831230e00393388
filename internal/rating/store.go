package rating

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"karuta-rating/internal/domain"
	"karuta-rating/internal/elo"
)

// Store holds the current rating and win/loss record of every player seen
// so far. Apply is the only mutator and must be called in the chronological
// order matches were played: each update reads the ratings left behind by
// all earlier ones.
type Store struct {
	initialRating float64
	ratings       map[string]*domain.PlayerRating
	order         []string // insertion order, keeps Snapshot ties stable
}

// Update reports everything Apply computed for one match.
type Update struct {
	ExpectedA     float64
	ActualA       float64
	RatingABefore float64
	RatingBBefore float64
	RatingAAfter  float64
	RatingBAfter  float64
}

func NewStore(initialRating float64) *Store {
	return &Store{
		initialRating: initialRating,
		ratings:       make(map[string]*domain.PlayerRating),
	}
}

// Ensure returns the player's rating entry, creating it at the initial
// rating on first appearance. Idempotent.
func (s *Store) Ensure(player string) *domain.PlayerRating {
	if r, ok := s.ratings[player]; ok {
		return r
	}
	r := &domain.PlayerRating{Player: player, Rating: s.initialRating}
	s.ratings[player] = r
	s.order = append(s.order, player)
	return r
}

// Apply updates both players' ratings for one match and returns the
// computed scores and the before/after ratings.
func (s *Store) Apply(playerA, playerB string, outcomeA domain.Outcome, cardsA, cardsB int, kFactor, cardWeight float64) Update {
	a := s.Ensure(playerA)
	b := s.Ensure(playerB)

	expectedA := elo.ExpectedScore(a.Rating, b.Rating)
	expectedB := 1 - expectedA

	actualA := elo.PerformanceScore(outcomeA, cardsA, cardsB, cardWeight)
	actualB := 1 - actualA

	u := Update{
		ExpectedA:     expectedA,
		ActualA:       actualA,
		RatingABefore: a.Rating,
		RatingBBefore: b.Rating,
	}

	a.Rating += kFactor * (actualA - expectedA)
	b.Rating += kFactor * (actualB - expectedB)
	u.RatingAAfter = a.Rating
	u.RatingBAfter = b.Rating

	switch outcomeA {
	case domain.OutcomeWin:
		a.Wins++
		b.Losses++
	case domain.OutcomeLoss:
		a.Losses++
		b.Wins++
	}

	return u
}

// LoadCheckpoint overwrites or creates entries from a previously saved
// snapshot. Entries are validated up front; on any malformed entry the
// store is left untouched and the error is returned so the caller can fall
// back to a fresh store.
func (s *Store) LoadCheckpoint(entries []domain.PlayerRating) error {
	for i, e := range entries {
		if strings.TrimSpace(e.Player) == "" {
			return fmt.Errorf("checkpoint entry %d: empty player name", i)
		}
		if math.IsNaN(e.Rating) || math.IsInf(e.Rating, 0) {
			return fmt.Errorf("checkpoint entry %d (%s): invalid rating %v", i, e.Player, e.Rating)
		}
		if e.Wins < 0 || e.Losses < 0 {
			return fmt.Errorf("checkpoint entry %d (%s): negative win/loss count", i, e.Player)
		}
	}

	for _, e := range entries {
		name := strings.TrimSpace(e.Player)
		r := s.Ensure(name)
		r.Rating = e.Rating
		r.Wins = e.Wins
		r.Losses = e.Losses
	}
	return nil
}

// Snapshot returns every player ordered by rating descending; ties keep
// insertion order.
func (s *Store) Snapshot() []domain.PlayerRating {
	out := make([]domain.PlayerRating, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.ratings[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out
}

// Len reports how many players the store currently tracks.
func (s *Store) Len() int {
	return len(s.ratings)
}
