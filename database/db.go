package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campuseats/internal/config"
	"campuseats/internal/httpapi/models"
)

// Connect opens a GORM connection based on the DATABASE_URL prefix and
// applies schema migrations. Postgres is the production target; the pure-Go
// sqlite driver covers local development and tests.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"):
		dialector = postgres.Open(cfg.DatabaseURL)
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(cfg.DatabaseURL, "sqlite://"))
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: must start with postgres:// or sqlite://", cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

// Migrate applies the full schema. The interaction and activity tables are
// optional at runtime (read paths degrade when they are absent) but a fresh
// deployment gets all of them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Canteen{},
		&models.Review{},
		&models.Comment{},
		&models.Upvote{},
		&models.Favorite{},
		&models.UserActivity{},
	)
}
