package logger

import (
	"log/slog"
	"os"
)

// Init configures the default slog logger. Development gets human-readable
// text, everything else JSON.
func Init(environment string) {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(handler))
}

func Info(msg string, args ...any) {
	slog.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	slog.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass a bare error (or any single value) without
// a key.
func normalize(args []any) []any {
	if len(args) == 1 {
		return []any{slog.Any("error", args[0])}
	}
	return args
}
