package storage

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCAP2/weather/internal/config"
	"github.com/OCAP2/weather/internal/storage/influx"
	"github.com/OCAP2/weather/internal/storage/memory"
	"github.com/OCAP2/weather/internal/storage/sqlite"
	"github.com/OCAP2/weather/pkg/core"
)

var (
	_ Backend = (*memory.Backend)(nil)
	_ History = (*memory.Backend)(nil)
	_ Backend = (*sqlite.Backend)(nil)
	_ History = (*sqlite.Backend)(nil)
	_ Backend = (*influx.Backend)(nil)
)

func TestNewBackend_Memory(t *testing.T) {
	for _, typ := range []string{"memory", ""} {
		b, err := NewBackend(config.StorageConfig{Type: typ}, "dev", zerolog.Nop())
		require.NoError(t, err)
		assert.IsType(t, &memory.Backend{}, b)
	}
}

func TestNewBackend_SQLite(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{Type: "sqlite"}, "dev", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })

	r := &core.WeatherRecord{MissionName: "Siege", Sounds: []string{"rain_light"}}
	require.NoError(t, b.RecordWeather(r))
	assert.NotZero(t, r.ID)

	h, ok := b.(History)
	require.True(t, ok)
	recent, err := h.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, []string{"rain_light"}, recent[0].Sounds)
}

func TestNewBackend_Influx(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{Type: "influx"}, "dev", zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &influx.Backend{}, b)

	_, ok := b.(History)
	assert.False(t, ok, "influx is write-only")
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "cassandra"}, "dev", zerolog.Nop())
	assert.EqualError(t, err, "unknown storage type: cassandra")
}
