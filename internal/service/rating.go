package service

import (
	"context"
	"fmt"
	"os"

	"karuta-rating/internal/config"
	"karuta-rating/internal/constants"
	"karuta-rating/internal/domain"
	"karuta-rating/internal/logger"
	"karuta-rating/internal/processor"
	"karuta-rating/internal/rating"
	"karuta-rating/internal/report"
	"karuta-rating/internal/repository"
	"karuta-rating/internal/sheet"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RatingService runs one full rating pass: load inputs, resume from a
// checkpoint, process all matches, then export and persist the results.
type RatingService struct {
	cfg         *config.Config
	proc        *processor.Processor
	ratingsRepo *repository.RatingsRepository
	historyRepo *repository.HistoryRepository
	logger      zerolog.Logger
}

func NewRatingService(cfg *config.Config, proc *processor.Processor, ratingsRepo *repository.RatingsRepository, historyRepo *repository.HistoryRepository, log zerolog.Logger) *RatingService {
	return &RatingService{
		cfg:         cfg,
		proc:        proc,
		ratingsRepo: ratingsRepo,
		historyRepo: historyRepo,
		logger:      log.Level(logger.ParseLevel(cfg.LogLevel)),
	}
}

// Run executes the pipeline. Only a source load failure (or an output write
// failure) is fatal; a broken checkpoint falls back to a fresh store and
// row-level problems are warnings inside the processor.
func (s *RatingService) Run(ctx context.Context) error {
	log := s.logger.With().Str("run_id", uuid.New().String()).Logger()

	ctx, cancel := context.WithTimeout(ctx, constants.RunTimeout)
	defer cancel()

	rows, checkpoint, cpErr, err := s.loadInputs(ctx)
	if err != nil {
		log.Error().Err(err).Str("input", s.cfg.InputFile).Msg("failed to load match data")
		return fmt.Errorf("failed to load match data: %w", err)
	}
	log.Info().Int("rows", len(rows)).Str("input", s.cfg.InputFile).Msg("match data loaded")

	store := rating.NewStore(s.cfg.InitialRating)
	switch {
	case cpErr != nil:
		log.Warn().Err(cpErr).Msg("checkpoint load failed, starting with a fresh store")
	case len(checkpoint) > 0:
		if err := store.LoadCheckpoint(checkpoint); err != nil {
			log.Warn().Err(err).Msg("checkpoint rejected, starting with a fresh store")
		} else {
			log.Info().Int("players", len(checkpoint)).Msg("previous ratings loaded")
		}
	}

	history := rating.NewHistoryLog()
	summary := s.proc.Process(rows, store, history, s.cfg.KFactor, s.cfg.CardWeight)
	log.Info().
		Int("applied", summary.Applied).
		Int("rejected", len(summary.Rejected)).
		Int("discarded", summary.Discarded).
		Msg("processing finished")

	snapshot := store.Snapshot()
	report.Print(os.Stdout, snapshot)

	if err := sheet.WriteResults(s.cfg.OutputFile, snapshot, history.Entries()); err != nil {
		log.Error().Err(err).Str("output", s.cfg.OutputFile).Msg("failed to write results workbook")
		return err
	}
	log.Info().Str("output", s.cfg.OutputFile).Msg("results saved")

	s.persist(ctx, log, snapshot, history.Entries())

	return nil
}

// loadInputs reads the match workbook and the checkpoint source
// concurrently. A match-workbook error fails the load; a checkpoint error
// is returned separately because it is recoverable.
func (s *RatingService) loadInputs(ctx context.Context) (rows []domain.MatchRow, checkpoint []domain.PlayerRating, cpErr error, err error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var loadErr error
		rows, loadErr = sheet.ReadMatches(s.cfg.InputFile, s.cfg.SheetName)
		return loadErr
	})

	g.Go(func() error {
		if s.cfg.CheckpointFile != "" {
			checkpoint, cpErr = sheet.ReadCheckpoint(s.cfg.CheckpointFile)
			return nil
		}
		checkpoint, cpErr = s.ratingsRepo.GetAll(gCtx)
		return nil
	})

	if waitErr := g.Wait(); waitErr != nil {
		return nil, nil, nil, waitErr
	}
	return rows, checkpoint, cpErr, nil
}

// persist mirrors the run results into SQLite so the next run can resume
// without a checkpoint workbook. Persistence problems do not fail the run;
// the results workbook is the authoritative output.
func (s *RatingService) persist(ctx context.Context, log zerolog.Logger, snapshot []domain.PlayerRating, entries []domain.HistoryEntry) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.ratingsRepo.UpsertBatch(dbCtx, snapshot); err != nil {
		log.Warn().Err(err).Msg("failed to persist ratings snapshot")
		return
	}
	if err := s.historyRepo.InsertBatch(dbCtx, entries); err != nil {
		log.Warn().Err(err).Msg("failed to persist rating history")
		return
	}
	log.Info().Int("players", len(snapshot)).Int("history_entries", len(entries)).Msg("snapshot persisted")
}
