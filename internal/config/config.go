package config

import (
	"fmt"
	"os"

	"karuta-rating/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Options carries the per-run parameters parsed from the command line by
// cmd/karuta; environment settings are merged in by Load.
type Options struct {
	InputFile      string  // match workbook, required
	OutputFile     string  // results workbook
	CheckpointFile string  // previous-month ratings workbook, optional
	SheetName      string  // match sheet selector, empty = first sheet
	InitialRating  float64 // rating for first-time players
	KFactor        float64
	CardWeight     float64 // margin-of-victory blend, 0..1
}

type Config struct {
	Options

	DBPath   string
	LogLevel string
}

func Load(opts Options, logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		Options:  opts,
		DBPath:   getEnv("DB_PATH", "karuta.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.InputFile == "" {
		return nil, fmt.Errorf("input workbook path is required")
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = "rating_results.xlsx"
	}
	if cfg.CardWeight < 0 || cfg.CardWeight > 1 {
		return nil, fmt.Errorf("card weight must be in [0,1], got %v", cfg.CardWeight)
	}
	if cfg.KFactor <= 0 {
		cfg.KFactor = constants.DefaultKFactor
	}

	logger.Info().
		Str("input", cfg.InputFile).
		Str("output", cfg.OutputFile).
		Str("checkpoint", cfg.CheckpointFile).
		Str("db_path", cfg.DBPath).
		Float64("k_factor", cfg.KFactor).
		Float64("initial_rating", cfg.InitialRating).
		Float64("card_weight", cfg.CardWeight).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
