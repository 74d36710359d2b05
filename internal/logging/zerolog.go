package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewZerolog builds the logger used by the dispatcher and storage layers.
// Records are written in console format without colors and carry the same
// mission and phase fields as the slog pipeline.
func (m *SlogManager) NewZerolog(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = m.console
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}

	return zerolog.New(out).
		Level(zerologLevel(level)).
		With().Timestamp().Logger().
		Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
			for _, a := range m.contextAttrs() {
				e.Str(a.Key, a.Value.String())
			}
		}))
}

func zerologLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
