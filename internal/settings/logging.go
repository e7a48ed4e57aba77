package settings

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Log level names accepted in LOG_LEVEL.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LoggingConfig configures the daemon's zerolog output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// Format is "json", "console", or "" (auto-detect from the terminal).
	Format string
}

// ParseLevel converts Level to a zerolog.Level, defaulting to info for an
// unrecognized value.
func (l LoggingConfig) ParseLevel() zerolog.Level {
	switch strings.ToLower(l.Level) {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger builds a zerolog.Logger from cfg, writing to stdout. Output is
// pretty-printed when stdout is a terminal and LOG_FORMAT didn't force
// "json", matching the teacher's isatty-based auto-detection.
func NewLogger(cfg LoggingConfig) zerolog.Logger {
	var output io.Writer = os.Stdout

	if shouldUsePretty(cfg) {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	return zerolog.New(output).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()
}

func shouldUsePretty(cfg LoggingConfig) bool {
	switch cfg.Format {
	case "json":
		return false
	case "console", "pretty":
		return true
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
