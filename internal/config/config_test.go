package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCAP2/weather/pkg/core"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"weather": { "overrideRainDensity": true, "rainDensity": 0.9, "arenaFog": false },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))

	s := GetSettings()
	assert.True(t, s.OverrideRainDensity)
	assert.Equal(t, 0.9, s.RainDensity)
	assert.False(t, s.ArenaFog)
	assert.True(t, s.ArenaRain, "unset keys keep defaults")
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./weatherlogs", viper.GetString("logsDir"))
	assert.Equal(t, core.Settings{
		FogDensity: 1,
		ArenaRain:  true,
		ArenaFog:   true,
		ArenaDust:  true,
	}, GetSettings())
	assert.Equal(t, 25.0, GetMarkerRadius())
	assert.Equal(t, false, GetGraylogConfig().Enabled)
	assert.Equal(t, "localhost:12201", GetGraylogConfig().Address)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	// defaults still apply
	assert.True(t, GetSettings().ArenaDust)
	assert.Equal(t, "memory", GetStorageConfig().Type)
}

func TestReload(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{"weather": {"overrideFogDensity": false}}`)
	require.NoError(t, Load(dir))
	assert.False(t, GetSettings().OverrideFogDensity)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName),
		[]byte(`{"weather": {"overrideFogDensity": true, "fogDensity": 8}}`), 0644))
	require.NoError(t, Reload())

	s := GetSettings()
	assert.True(t, s.OverrideFogDensity)
	assert.Equal(t, 8.0, s.FogDensity)
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetStorageConfig()
	assert.Equal(t, "memory", cfg.Type)
	assert.Equal(t, "", cfg.SQLite.Path)
	assert.Equal(t, "", cfg.SQLite.DumpPath)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "weather", cfg.DB.Database)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=weather sslmode=disable", cfg.DB.DSN())
	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL())
	assert.Equal(t, "weather_history", cfg.Influx.Bucket)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"storage": { "type": "sqlite", "sqlite": { "path": "/tmp/weather.db", "dumpPath": "/tmp/weather.bak.db" } }
	}`)))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/weather.db", sc.SQLite.Path)
	assert.Equal(t, "/tmp/weather.bak.db", sc.SQLite.DumpPath)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetOTelConfig()
	assert.Equal(t, false, cfg.Enabled)
	assert.Equal(t, "weather-extension", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, true, cfg.Insecure)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{
		"otel": {
			"enabled": true,
			"serviceName": "my-service",
			"batchTimeout": "30s",
			"endpoint": "localhost:4317",
			"insecure": false
		}
	}`)))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "my-service", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4317", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testBool", true)

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, true, GetBool("testBool"))
}
