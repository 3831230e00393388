package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{
		InputFile:     "matches.xlsx",
		InitialRating: 1500,
		KFactor:       32,
		CardWeight:    0.3,
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "rating_results.xlsx", cfg.OutputFile)
	assert.Equal(t, "karuta.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRequiresInput(t *testing.T) {
	_, err := Load(Options{}, zerolog.Nop())
	assert.ErrorContains(t, err, "input workbook path is required")
}

func TestLoadRejectsBadCardWeight(t *testing.T) {
	for _, w := range []float64{-0.1, 1.5} {
		_, err := Load(Options{InputFile: "matches.xlsx", CardWeight: w}, zerolog.Nop())
		assert.ErrorContains(t, err, "card weight")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(Options{InputFile: "matches.xlsx", CardWeight: 0.3}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}
