package fx

import (
	"karuta-rating/internal/config"
	"karuta-rating/internal/database"
	"karuta-rating/internal/logger"
	"karuta-rating/internal/processor"
	"karuta-rating/internal/repository"
	"karuta-rating/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewRatingsRepository),
	fx.Provide(repository.NewHistoryRepository),
	// core
	fx.Provide(processor.New),
	// svc
	fx.Provide(service.NewRatingService),
)
