// Command weather_extension runs the weather controller as a line-protocol
// process: the simulation writes commands to stdin and reads replies and
// callbacks from stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/OCAP2/weather/internal/config"
	"github.com/OCAP2/weather/internal/dispatcher"
	"github.com/OCAP2/weather/internal/handlers"
	"github.com/OCAP2/weather/internal/logging"
	intOtel "github.com/OCAP2/weather/internal/otel"
	"github.com/OCAP2/weather/internal/presentation"
	"github.com/OCAP2/weather/internal/storage"
	"github.com/OCAP2/weather/internal/storage/memory"
	"github.com/OCAP2/weather/internal/storage/sqlite"
	"github.com/OCAP2/weather/pkg/extension"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// BuildDate can be set at build time via ldflags
var BuildDate = "unknown"

const shutdownTimeout = 5 * time.Second

func main() {
	configDir := flag.String("config", defaultConfigDir(), "directory containing "+config.FileName)
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "weather_extension: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func run(configDir string) error {
	sessionStart := time.Now()

	slogManager := logging.NewSlogManager()
	slogManager.Setup(nil, "info", nil)
	logger := slogManager.Logger()

	if err := config.Load(configDir); err != nil {
		logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		logger.Info("Loaded config", "dir", configDir)
	}
	level := viper.GetString("logLevel")

	// logWriter stays a nil interface when the file cannot be opened,
	// so both pipelines fall back to stderr.
	var logWriter io.Writer
	logFile, logPath, err := openLogFile(viper.GetString("logsDir"), sessionStart)
	if err != nil {
		logger.Error("Failed to create/open log file!", "error", err, "path", logPath)
	} else {
		logWriter = logFile
		defer logFile.Close()
	}

	otelProvider := setupOTel(logWriter, logger)

	var opts []logging.Option
	if gc := config.GetGraylogConfig(); gc.Enabled {
		gw, err := gelf.NewWriter(gc.Address)
		if err != nil {
			logger.Error("Failed to connect to Graylog", "error", err, "address", gc.Address)
		} else {
			defer gw.Close()
			opts = append(opts, logging.WithGELF(gw))
		}
	}

	var otelLogProvider *sdklog.LoggerProvider
	if otelProvider != nil {
		otelLogProvider = otelProvider.LoggerProvider()
	}
	slogManager.Setup(logWriter, level, otelLogProvider, opts...)
	logger = slogManager.Logger()
	logger.Info("Weather extension starting",
		"version", handlers.Version,
		"buildDate", BuildDate,
		"log", logPath,
	)

	zlog := slogManager.NewZerolog(logWriter, level)

	storageCfg := config.GetStorageConfig()
	backend := openStorage(storageCfg, zlog, logger)

	instruments, err := presentation.NewInstruments()
	if err != nil {
		logger.Warn("Weather metrics disabled", "error", err)
	}

	d, err := dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}

	server := extension.New(d, os.Stdin, os.Stdout, logger, extension.WithVersion(handlers.Version))

	svc := handlers.NewService(handlers.Dependencies{
		Emit:         server.Emit,
		Backend:      backend,
		Metrics:      instruments,
		Logger:       logger,
		Settings:     config.GetSettings,
		Reload:       config.Reload,
		MarkerRadius: config.GetMarkerRadius(),
		OnMissionEnd: func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := slogManager.Flush(ctx); err != nil {
				logger.Warn("Failed to flush logs", "error", err)
			}
		},
	})
	svc.RegisterHandlers(d)

	slogManager.GetMissionName = svc.MissionName
	slogManager.GetPhase = func() string {
		if p := svc.Phase(); p != presentation.PhaseIdle {
			return p.String()
		}
		return ""
	}

	logger.Info("Dispatcher ready", "commands", len(d.Commands()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := server.Serve(ctx)
	if errors.Is(serveErr, context.Canceled) {
		logger.Info("Shutdown requested")
		serveErr = nil
	}

	if svc.MissionName() != "" {
		if _, err := d.Dispatch(dispatcher.Event{Command: handlers.CmdMissionEnd, Timestamp: time.Now()}); err != nil {
			logger.Error("Failed to end mission on shutdown", "error", err)
		}
	}

	closeStorage(backend, storageCfg, logger)
	shutdownOTel(otelProvider, logger)

	logger.Info("Weather extension stopped")
	return serveErr
}

// openLogFile creates <logsDir>/weather_extension.<session>.log, moving an
// existing file of the same name to .old.
func openLogFile(logsDir string, sessionStart time.Time) (*os.File, string, error) {
	path := logging.LogFilePath(logsDir, logging.ExtensionName, sessionStart)

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, path, fmt.Errorf("creating logs dir: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}

func setupOTel(logWriter io.Writer, logger *slog.Logger) *intOtel.Provider {
	otelCfg := config.GetOTelConfig()
	if !otelCfg.Enabled {
		return nil
	}

	provider, err := intOtel.New(intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    logWriter,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
	if err != nil {
		logger.Error("Failed to initialize OTel provider", "error", err)
		return nil
	}

	if otelCfg.Endpoint != "" {
		logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
	} else {
		logger.Info("OTel provider initialized")
	}
	return provider
}

func shutdownOTel(p *intOtel.Provider, logger *slog.Logger) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down OTel provider", "error", err)
	}
}

// openStorage returns an initialized history backend, falling back to
// memory when the configured one cannot be reached.
func openStorage(cfg config.StorageConfig, zlog zerolog.Logger, logger *slog.Logger) storage.Backend {
	backend, err := storage.NewBackend(cfg, handlers.Version, zlog)
	if err == nil {
		err = backend.Init()
	}
	if err != nil {
		logger.Error("Failed to initialize storage backend, using memory", "error", err, "type", cfg.Type)
		backend = memory.New()
		_ = backend.Init()
		return backend
	}

	logger.Info("Storage backend initialized", "type", cfg.Type)
	return backend
}

func closeStorage(backend storage.Backend, cfg config.StorageConfig, logger *slog.Logger) {
	if sb, ok := backend.(*sqlite.Backend); ok && cfg.SQLite.DumpPath != "" {
		if err := sb.Dump(cfg.SQLite.DumpPath); err != nil {
			logger.Error("Error dumping weather history to disk", "error", err, "path", cfg.SQLite.DumpPath)
		} else {
			logger.Info("Dumped weather history to disk", "path", cfg.SQLite.DumpPath)
		}
	}
	if err := backend.Close(); err != nil {
		logger.Error("Failed to close storage backend", "error", err)
	}
}
