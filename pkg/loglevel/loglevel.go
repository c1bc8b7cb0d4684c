package loglevel

import (
	"fmt"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog's debug level.
const LevelTrace = slog.LevelDebug - 4

// Parse parses a log level name into a slog level. Empty input means info.
func Parse(levelKey string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelKey)) {
	case "":
		return slog.LevelInfo, nil
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR", "FATAL":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level %q has unknown value", levelKey)
	}
}
