package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger emits structured JSON log entries tagged with the service
// name and hostname. Log output goes to stderr so it never mixes
// with the interactive display stream on stdout.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

// New creates a logger for the given service name.
func New(service string) *Logger {
	return NewWithWriter(service, os.Stderr)
}

// NewWithWriter creates a logger writing to the given stream.
func NewWithWriter(service string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Info logs an action at INFO level with optional detail fields.
func (l *Logger) Info(action string, fields map[string]any) {
	l.log(slog.LevelInfo, action, fields, nil)
}

// Debug logs an action at DEBUG level with optional detail fields.
func (l *Logger) Debug(action string, fields map[string]any) {
	l.log(slog.LevelDebug, action, fields, nil)
}

// Error logs a failed action together with the causing error.
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(slog.LevelError, action, fields, err)
}

func (l *Logger) log(level slog.Level, action string, fields map[string]any, err error) {
	attrs := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if err != nil {
		attrs = append(attrs, slog.Group("error", slog.String("msg", err.Error())))
	}
	l.handler.LogAttrs(context.Background(), level, action, attrs...)
}
