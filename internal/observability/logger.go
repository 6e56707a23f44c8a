package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a leveled key/value logger. Output goes to stdout and,
// when a log path is configured, to a size-rotated file.
type Logger struct {
	sl *slog.Logger
}

func NewLogger(logPath, logLevel string) *Logger {
	var w io.Writer = os.Stdout
	if logPath != "" {
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})

	return &Logger{sl: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...any) {
	l.sl.Debug(msg, fields...)
}

func (l *Logger) Info(msg string, fields ...any) {
	l.sl.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...any) {
	l.sl.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...any) {
	l.sl.Error(msg, fields...)
}
