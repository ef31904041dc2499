// Package xlog provides the CLI's structured logging setup. The mvreg
// engine itself never reads environment variables; only the demo command
// does, configuring slog's global default the way a typical CLI wraps
// structured logging around a pure library.
package xlog

import (
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// InitDefault installs a JSON-handler slog logger as the global default,
// tagged with nodeId. Its level is read from MVREG_LOG_LEVEL, defaulting
// to info when unset or unrecognized.
func InitDefault(nodeId string) {
	level := strings.ToLower(os.Getenv("MVREG_LOG_LEVEL"))

	logLevel, ok := levels[level]
	if !ok {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With("node_id", nodeId)
	slog.SetDefault(logger)
}
