package config

import (
	"fmt"
	"time"

	"github.com/OCAP2/weather/pkg/core"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "weather_extension.cfg.json"

// StorageConfig holds weather history backend settings
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	DB     DBConfig     `json:"db" mapstructure:"db"`
	Influx InfluxConfig `json:"influx" mapstructure:"influx"`
}

// SQLiteConfig holds SQLite backend settings. An empty path keeps the database in memory.
type SQLiteConfig struct {
	Path     string `json:"path" mapstructure:"path"`
	DumpPath string `json:"dumpPath" mapstructure:"dumpPath"` // snapshot target on shutdown, optional
}

// DBConfig holds Postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// DSN returns the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// InfluxConfig holds InfluxDB settings. Points go to BackupPath as gzipped
// line protocol while the server is unreachable.
type InfluxConfig struct {
	Protocol   string `json:"protocol" mapstructure:"protocol"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Token      string `json:"token" mapstructure:"token"`
	Org        string `json:"org" mapstructure:"org"`
	Bucket     string `json:"bucket" mapstructure:"bucket"`
	BackupPath string `json:"backupPath" mapstructure:"backupPath"`
}

// URL returns the InfluxDB server address.
func (c InfluxConfig) URL() string {
	return fmt.Sprintf("%s://%s:%s", c.Protocol, c.Host, c.Port)
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// GraylogConfig holds GELF log shipping settings
type GraylogConfig struct {
	Enabled bool
	Address string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
// Defaults stay in effect when the file cannot be read.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Reload re-reads the config file found by the last Load.
func Reload() error {
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reloading config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./weatherlogs")

	viper.SetDefault("weather.overrideRainDensity", false)
	viper.SetDefault("weather.rainDensity", 0.0)
	viper.SetDefault("weather.overrideFogDensity", false)
	viper.SetDefault("weather.fogDensity", 1.0)
	viper.SetDefault("weather.arenaRain", true)
	viper.SetDefault("weather.arenaFog", true)
	viper.SetDefault("weather.arenaDust", true)
	viper.SetDefault("weather.markerRadius", 25.0)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpPath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "weather")

	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "weather")
	viper.SetDefault("influx.bucket", "weather_history")
	viper.SetDefault("influx.backupPath", "./weatherlogs/influx_backup.lp.gz")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "weather-extension")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")
}

// GetSettings returns the weather settings snapshot read at mission start.
func GetSettings() core.Settings {
	return core.Settings{
		OverrideRainDensity: viper.GetBool("weather.overrideRainDensity"),
		RainDensity:         viper.GetFloat64("weather.rainDensity"),
		OverrideFogDensity:  viper.GetBool("weather.overrideFogDensity"),
		FogDensity:          viper.GetFloat64("weather.fogDensity"),
		ArenaRain:           viper.GetBool("weather.arenaRain"),
		ArenaFog:            viper.GetBool("weather.arenaFog"),
		ArenaDust:           viper.GetBool("weather.arenaDust"),
	}
}

// GetMarkerRadius returns the weather marker search radius.
func GetMarkerRadius() float64 {
	return viper.GetFloat64("weather.markerRadius")
}

// GetStorageConfig returns the weather history backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		SQLite: SQLiteConfig{
			Path:     viper.GetString("storage.sqlite.path"),
			DumpPath: viper.GetString("storage.sqlite.dumpPath"),
		},
		DB: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
		Influx: InfluxConfig{
			Protocol:   viper.GetString("influx.protocol"),
			Host:       viper.GetString("influx.host"),
			Port:       viper.GetString("influx.port"),
			Token:      viper.GetString("influx.token"),
			Org:        viper.GetString("influx.org"),
			Bucket:     viper.GetString("influx.bucket"),
			BackupPath: viper.GetString("influx.backupPath"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetGraylogConfig returns the GELF settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
