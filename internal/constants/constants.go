package constants

import "time"

// Rating model defaults, overridable per run via flags.
const (
	DefaultInitialRating = 1500.0
	DefaultKFactor       = 32.0
	DefaultCardWeight    = 0.3
)

// A standard match is played to 17 cards; tied sub-matches re-deal to 20.
const MaxCardsPerMatch = 20

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	DatabaseTimeout = 5 * time.Second
	RunTimeout      = 2 * time.Minute
)
