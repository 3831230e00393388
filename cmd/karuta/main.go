package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"karuta-rating/internal/config"
	"karuta-rating/internal/constants"
	fxmodules "karuta-rating/internal/fx"
	"karuta-rating/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	fx.New(
		fx.Supply(opts),
		fxmodules.Module,
		fx.Invoke(runPipeline),
	).Run()
}

func parseFlags() (config.Options, error) {
	output := flag.String("o", "rating_results.xlsx", "results workbook path")
	previous := flag.String("p", "", "previous month ratings workbook (checkpoint)")
	sheetName := flag.String("s", "", "match sheet name, defaults to the first sheet")
	kFactor := flag.Float64("k", constants.DefaultKFactor, "K-factor")
	initial := flag.Float64("i", constants.DefaultInitialRating, "initial rating for new players")
	weight := flag.Float64("w", constants.DefaultCardWeight, "card capture weight, 0.0-1.0")
	flag.Parse()

	if flag.NArg() != 1 {
		return config.Options{}, fmt.Errorf("usage: karuta [flags] <matches.xlsx>")
	}

	return config.Options{
		InputFile:      flag.Arg(0),
		OutputFile:     *output,
		CheckpointFile: *previous,
		SheetName:      *sheetName,
		InitialRating:  *initial,
		KFactor:        *kFactor,
		CardWeight:     *weight,
	}, nil
}

// runPipeline starts the one-shot rating run and shuts the app down with
// its exit code once it finishes.
func runPipeline(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	svc *service.RatingService,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if err := svc.Run(context.Background()); err != nil {
					logger.Error().Err(err).Msg("rating run failed")
					code = 1
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Error().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			return nil
		},
	})
}
