// Package database opens and prepares the GORM connections behind the
// weather history store.
package database

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/OCAP2/weather/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SchemaVersion is written to weather_info on first setup.
const SchemaVersion = "1"

// ErrNoDumpPath is returned by DumpToDisk without a target file.
var ErrNoDumpPath = errors.New("sqlite dump path not set")

// OpenPostgres connects to Postgres and validates the connection.
func OpenPostgres(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	log.Info().Msg("Connected to Postgres")
	return db, nil
}

// OpenSQLite opens a SQLite database at path. An empty path opens a private
// in-memory database pinned to a single connection.
func OpenSQLite(path string, log zerolog.Logger) (*gorm.DB, error) {
	dsn := path
	if path == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if path == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql interface: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		log.Info().Msg("Using in-memory SQLite DB")
	} else {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Setup migrates the schema and writes the weather_info row once.
func Setup(db *gorm.DB, extensionVersion string, log zerolog.Logger) error {
	if err := db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	var count int64
	if err := db.Model(&model.WeatherInfo{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to read weather_info: %w", err)
	}
	if count == 0 {
		info := model.WeatherInfo{SchemaVersion: SchemaVersion, ExtensionVersion: extensionVersion}
		if err := db.Create(&info).Error; err != nil {
			return fmt.Errorf("failed to create weather_info entry: %w", err)
		}
	}

	log.Info().Str("dialect", db.Dialector.Name()).Msg("Database setup complete")
	return nil
}

// DumpToDisk snapshots a SQLite database into path, replacing any existing file.
func DumpToDisk(db *gorm.DB, path string, log zerolog.Logger) error {
	if path == "" {
		return ErrNoDumpPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error removing existing DB file: %w", err)
		}
	}

	start := time.Now()
	if err := db.Exec("VACUUM INTO '" + strings.ReplaceAll(path, "'", "''") + "';").Error; err != nil {
		return fmt.Errorf("error dumping DB to disk: %w", err)
	}

	log.Debug().Dur("duration", time.Since(start)).Str("path", path).Msg("Dumped DB to disk")
	return nil
}
