package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %q", s)
	}
}

// NewLogger builds a text logger. When the config names a log file, logs are
// appended there and fallback is ignored; otherwise they go to fallback
// (nil discards). The returned close func is never nil.
func NewLogger(cfg *Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	var path string
	if cfg != nil {
		lv, err := ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		level = lv
		path = strings.TrimSpace(cfg.LogFile)
	}

	w := fallback
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log file %s", path)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
