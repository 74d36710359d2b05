// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/OCAP2/weather/internal/config"
	"github.com/OCAP2/weather/internal/storage/influx"
	"github.com/OCAP2/weather/internal/storage/memory"
	"github.com/OCAP2/weather/internal/storage/postgres"
	"github.com/OCAP2/weather/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration.
// The returned backend still needs Init.
func NewBackend(cfg config.StorageConfig, version string, log zerolog.Logger) (Backend, error) {
	log = log.With().Str("component", "storage").Str("type", cfg.Type).Logger()

	switch cfg.Type {
	case "postgres":
		b, err := postgres.New(cfg.DB.DSN(), version, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "sqlite":
		b, err := sqlite.New(cfg.SQLite.Path, version, log)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "influx":
		return influx.New(influx.Dependencies{Config: cfg.Influx, Logger: log}), nil
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
