package fx

import (
	"context"

	"Finboard/config"
	"Finboard/internal/amqp"
	"Finboard/internal/domain/report"
	"Finboard/internal/infrastructure"
	"Finboard/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		infrastructure.NewTxManager,
		infrastructure.NewUserRepository,
		infrastructure.NewGoalRepository,
		infrastructure.NewExpenseRepository,
		infrastructure.NewSalaryRepository,
		infrastructure.NewShareReportRepository,
		newReportPublisher,
	),
)

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

// newReportPublisher returns a nil publisher when AMQP_URL is unset.
func newReportPublisher(lc fx.Lifecycle, cfg *config.Config) (report.Publisher, error) {
	if cfg.AMQP.URL == "" {
		logger.Info().Msg("amqp_disabled")
		return nil, nil
	}

	client, err := amqp.NewClient(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}
