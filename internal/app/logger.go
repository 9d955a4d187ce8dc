package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Log shippers want LOG_FORMAT=json;
// the default text handler is for humans reading a terminal.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
