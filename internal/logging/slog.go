package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// SlogManager manages slog-based logging with optional OTel and GELF output.
// Stdout carries the extension protocol, so console output goes to stderr.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider

	// GetMissionName reports the running mission for every record. Optional.
	GetMissionName func() string
	// GetPhase reports the presentation phase for every record. Optional.
	GetPhase func() string

	console io.Writer
}

// Option configures Setup.
type Option func(*setupConfig)

type setupConfig struct {
	gelf io.Writer
}

// WithGELF adds a JSON handler writing to a GELF writer.
func WithGELF(w io.Writer) Option {
	return func(c *setupConfig) {
		c.gelf = w
	}
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{console: os.Stderr}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system with file and optional OTel output.
// If file is nil, records go to the console (stderr) instead.
// If provider is nil, OTel logging is disabled.
func (m *SlogManager) Setup(file io.Writer, level string, provider *sdklog.LoggerProvider, opts ...Option) {
	cfg := &setupConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	lvl := parseLevel(level)
	m.logProvider = provider

	// Common handler options with RFC3339 time formatting
	handlerOpts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler

	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(m.console, handlerOpts))
	}

	if cfg.gelf != nil {
		handlers = append(handlers, slog.NewJSONHandler(cfg.gelf, handlerOpts))
	}

	if provider != nil {
		handlers = append(handlers, otelslog.NewHandler("weather-extension", otelslog.WithLoggerProvider(provider)))
	}

	var handler slog.Handler = NewMultiHandler(handlers...)
	handler = NewContextHandler(handler, m.contextAttrs)

	m.logger = slog.New(handler)
	m.logger.Info("Logging initialized", "level", level)
}

func (m *SlogManager) contextAttrs() []slog.Attr {
	var attrs []slog.Attr
	if m.GetMissionName != nil {
		if name := m.GetMissionName(); name != "" {
			attrs = append(attrs, slog.String("mission", name))
		}
	}
	if m.GetPhase != nil {
		if phase := m.GetPhase(); phase != "" {
			attrs = append(attrs, slog.String("phase", phase))
		}
	}
	return attrs
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}
