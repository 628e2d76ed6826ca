package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrUnknownLevel is returned by ParseLevel for unrecognised level names.
var ErrUnknownLevel = errors.New("unknown log level")

const defaultServiceName = "depotstat"

// Config controls logger and provider construction.
type Config struct {
	// ServiceName is the OTel resource service name and the logger's service attribute.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Command names the subcommand being run; attached to every log line.
	Command string

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON selects the JSON handler instead of the text handler.
	LogJSON bool
}

// DefaultConfig returns info-level text logging for the depotstat service.
func DefaultConfig() Config {
	return Config{
		ServiceName: defaultServiceName,
		LogLevel:    slog.LevelInfo,
	}
}

// ParseLevel maps debug, info, warn/warning and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
