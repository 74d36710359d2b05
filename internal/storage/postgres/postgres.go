// Package postgres implements the storage.Backend interface on PostgreSQL.
// It wraps the GORM backend via composition.
package postgres

import (
	"github.com/OCAP2/weather/internal/database"
	gormstorage "github.com/OCAP2/weather/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for a Postgres connection.
type Backend struct {
	*gormstorage.Backend
}

// New connects to Postgres with dsn.
func New(dsn, version string, log zerolog.Logger) (*Backend, error) {
	db, err := database.OpenPostgres(dsn, log)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:               db,
			ExtensionVersion: version,
			Logger:           log,
		}),
	}, nil
}
