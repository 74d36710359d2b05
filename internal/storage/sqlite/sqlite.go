// Package sqlite implements the storage.Backend interface on a SQLite file,
// or an in-memory database when no path is configured.
// It wraps the GORM backend via composition.
package sqlite

import (
	"fmt"

	"github.com/OCAP2/weather/internal/database"
	gormstorage "github.com/OCAP2/weather/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	log zerolog.Logger
}

// New opens the SQLite database.
func New(path, version string, log zerolog.Logger) (*Backend, error) {
	db, err := database.OpenSQLite(path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite DB: %w", err)
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:               db,
			ExtensionVersion: version,
			Logger:           log,
		}),
		log: log,
	}, nil
}

// Dump snapshots the database to path. Used to keep an in-memory history.
func (b *Backend) Dump(path string) error {
	return database.DumpToDisk(b.DB(), path, b.log)
}
