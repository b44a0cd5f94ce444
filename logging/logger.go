package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Environment overrides applied by New.
const (
	EnvLogLevel   = "DDCCI_LOG_LEVEL"
	EnvLogNoColor = "DDCCI_LOG_NOCOLOR"
)

// Config selects the logger output.
type Config struct {
	// App is attached to every entry as the "app" field
	App string

	// Level is one of trace, debug, info, warn, error, off
	Level string

	// JSON writes one JSON object per line instead of console output
	JSON bool

	// NoColor disables ANSI colors in console output
	NoColor bool

	// Out defaults to os.Stderr
	Out io.Writer
}

// New builds a zerolog logger from cfg. EnvLogLevel and EnvLogNoColor
// override the configured values when set.
func New(cfg Config) (zerolog.Logger, error) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		cfg.Level = raw
	}
	if raw := os.Getenv(EnvLogNoColor); raw != "" {
		cfg.NoColor = raw != "0" && !strings.EqualFold(raw, "false")
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	return ctx.Logger(), nil
}

// ParseLevel maps a level name to a zerolog level. The empty string is info.
func ParseLevel(raw string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled", "none":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", raw)
	}
}
