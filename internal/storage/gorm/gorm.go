// Package gorm implements the storage.Backend interface on top of a GORM
// connection. The sqlite and postgres packages only differ in how they open it.
package gorm

import (
	"fmt"

	"github.com/OCAP2/weather/internal/database"
	"github.com/OCAP2/weather/internal/model"
	"github.com/OCAP2/weather/internal/model/convert"
	"github.com/OCAP2/weather/pkg/core"
	"github.com/rs/zerolog"

	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB               *gorm.DB
	ExtensionVersion string
	Logger           zerolog.Logger
}

// Backend implements storage.Backend using GORM.
type Backend struct {
	deps    Dependencies
	dbReady bool
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init runs schema migration.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database connection")
	}
	if err := database.Setup(b.deps.DB, b.deps.ExtensionVersion, b.deps.Logger); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}
	b.dbReady = true
	return nil
}

// Close closes the underlying connection.
func (b *Backend) Close() error {
	if b.deps.DB == nil {
		return nil
	}
	sqlDB, err := b.deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}

func (b *Backend) RecordWeather(r *core.WeatherRecord) error {
	if !b.dbReady {
		return fmt.Errorf("database not initialized")
	}

	row := convert.CoreToWeatherRecord(*r)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert weather record: %w", err)
	}
	r.ID = row.ID

	b.deps.Logger.Debug().
		Uint("id", row.ID).
		Str("mission", row.MissionName).
		Str("tier", row.Tier).
		Msg("Weather record stored")
	return nil
}

func (b *Backend) Recent(limit int) ([]core.WeatherRecord, error) {
	if !b.dbReady {
		return nil, fmt.Errorf("database not initialized")
	}

	q := b.deps.DB.Order("started_at desc").Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.WeatherRecord
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read weather records: %w", err)
	}

	out := make([]core.WeatherRecord, len(rows))
	for i, row := range rows {
		out[i] = convert.WeatherRecordToCore(row)
	}
	return out, nil
}
