package infrastructure

import (
	"fmt"

	"Finboard/config"
	"Finboard/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Str("host", cfg.Database.Host).
			Int("port", cfg.Database.Port).
			Str("database", cfg.Database.DBName).
			Msg("database_connect_failed")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("database_handle_failed")
		return nil, err
	}

	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite allows a single writer; one connection keeps row-lock semantics honest.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("database_connected")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("migrations_started")

	entities := []interface{}{
		&userDB{},
		&goalDB{},
		&expenseDB{},
		&salaryDB{},
		&shareReportDB{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("migration_failed")
			return err
		}
	}

	logger.Info().Msg("migrations_finished")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *userDB:
		return "User"
	case *goalDB:
		return "Goal"
	case *expenseDB:
		return "Expense"
	case *salaryDB:
		return "Salary"
	case *shareReportDB:
		return "ShareReport"
	default:
		return "Unknown"
	}
}
