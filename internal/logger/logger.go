package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger and implements the telegram-bot-api BotLogger interface.
type Logger struct {
	*slog.Logger
}

func New(level string, w io.Writer) *Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if w == nil {
		w = os.Stdout
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return New("error", io.Discard)
}

// tgbotapi.BotLogger interface methods

func (l *Logger) Println(v ...any) {
	l.Debug(fmt.Sprint(v...))
}

func (l *Logger) Printf(format string, v ...any) {
	l.Debug(fmt.Sprintf(format, v...))
}
