package database

import (
	"fmt"
	"time"

	"github.com/kruetzmann2110/demandas/internal/config"
	"github.com/kruetzmann2110/demandas/internal/infrastructure/database/migrations"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase abre o pool compartilhado por todos os handlers e aplica as migrações.
func SetupDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// Prepare statements for better performance
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Error),
		NowFunc: func() time.Time {
			return time.Now().In(location(cfg.Timezone))
		},
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite, "sqlite3":
		zap.L().Info("🗄️ Utilizando conexão com o SQLite", zap.String("path", cfg.SQLitePath))
		dialector = sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		zap.L().Info("🗄️ Utilizando conexão com o PostgreSQL")
		dialector = postgres.Open(withTimezone(cfg.URL, cfg.Timezone))
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Pool limitado com expulsão de conexões ociosas
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := migrations.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := migrations.AddIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to add indexes: %w", err)
	}

	if err := migrations.OptimizePerformanceIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to add performance indexes: %w", err)
	}

	return db, nil
}

// Close devolve as conexões do pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func location(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}
