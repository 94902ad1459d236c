package logger

import (
	"fmt"
	"io"
	"log/slog"
)

var globalLogger *slog.Logger

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Init sends the process-wide logger to w as text. The CLI passes its own
// output so diagnostics and results end up in the same stream.
func Init(w io.Writer, level string) error {
	l, ok := levels[level]
	if !ok {
		return fmt.Errorf("invalid log level %q, want debug, info, warn or error", level)
	}

	globalLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(globalLogger)
	return nil
}

func Get() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
