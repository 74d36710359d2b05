// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/OCAP2/weather/pkg/core"
)

// Backend keeps weather records for the lifetime of the process
type Backend struct {
	mu        sync.RWMutex
	records   []core.WeatherRecord
	idCounter uint
}

// New creates a new memory backend
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init() error {
	return nil
}

func (b *Backend) Close() error {
	return nil
}

func (b *Backend) RecordWeather(r *core.WeatherRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter

	stored := *r
	stored.Sounds = append([]string(nil), r.Sounds...)
	b.records = append(b.records, stored)
	return nil
}

// Records returns all records in insertion order.
func (b *Backend) Records() []core.WeatherRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.WeatherRecord, len(b.records))
	copy(out, b.records)
	return out
}

func (b *Backend) Recent(limit int) ([]core.WeatherRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]core.WeatherRecord, 0, n)
	for i := len(b.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, b.records[i])
	}
	return out, nil
}
