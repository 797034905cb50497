package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"OrgSettings/internal/models"

	"github.com/rs/zerolog"
)

// ConsoleLogger implements the Service interface by writing JSON lines with zerolog
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewConsoleLogger creates a logger writing to stdout at the given level.
// Unknown levels fall back to info.
func NewConsoleLogger(level string) Service {
	return newConsoleLogger(os.Stdout, level)
}

func newConsoleLogger(w io.Writer, level string) *ConsoleLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return &ConsoleLogger{
		log: zerolog.New(w).With().Timestamp().Logger().Level(lvl),
	}
}

// LogInfo logs an informational message
func (l *ConsoleLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.event(ctx, l.log.Info(), operation, "", metadata).Msg(message)
}

// LogSuccess logs a successful operation
func (l *ConsoleLogger) LogSuccess(ctx context.Context, operation, cacheKey, message string, metadata map[string]interface{}) {
	l.event(ctx, l.log.Info(), operation, cacheKey, metadata).Bool("success", true).Msg(message)
}

// LogError logs an error; high severity maps to zerolog's error level, the rest to warn
func (l *ConsoleLogger) LogError(ctx context.Context, operation, cacheKey, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	ev := l.log.Warn()
	if severity == models.LogSeverityHigh {
		ev = l.log.Error()
	}
	l.event(ctx, ev, operation, cacheKey, metadata).
		Err(err).
		Str("severity", string(severity)).
		Msg(message)
}

func (l *ConsoleLogger) event(ctx context.Context, ev *zerolog.Event, operation, cacheKey string, metadata map[string]interface{}) *zerolog.Event {
	logEvent := GetLogEvent(ctx)

	ev = ev.
		Str("operation", operation).
		Str("process_id", logEvent.ProcessID).
		Str("process_type", string(logEvent.ProcessType))
	if cacheKey != "" {
		ev = ev.Str("cache_key", cacheKey)
	}
	if len(metadata) > 0 {
		ev = ev.Fields(metadata)
	}
	return ev
}

// Close is a no-op; stdout is not owned by the logger
func (l *ConsoleLogger) Close() error {
	return nil
}
