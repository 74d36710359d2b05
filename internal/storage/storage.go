// internal/storage/storage.go
package storage

import "github.com/OCAP2/weather/pkg/core"

// Backend is the interface all weather history stores must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// RecordWeather stores one mission's weather and assigns r.ID.
	RecordWeather(r *core.WeatherRecord) error
}

// History is an optional interface for backends that can read records back.
type History interface {
	// Recent returns up to limit records, newest first.
	Recent(limit int) ([]core.WeatherRecord, error)
}
