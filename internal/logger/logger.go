package logger

import (
	"context"
	"os"
	"sync"
	"time"

	"OrgSettings/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DatabaseLogger implements the Service interface using a database backend
type DatabaseLogger struct {
	db       DatabaseConnection
	fallback zerolog.Logger
	pending  sync.WaitGroup
}

// NewDatabaseLogger creates a new database logger.
// Entries that fail to insert are written to stderr instead.
func NewDatabaseLogger(db DatabaseConnection) Service {
	return newDatabaseLogger(db, zerolog.New(os.Stderr).With().Timestamp().Logger())
}

func newDatabaseLogger(db DatabaseConnection, fallback zerolog.Logger) *DatabaseLogger {
	return &DatabaseLogger{
		db:       db,
		fallback: fallback,
	}
}

// LogInfo logs an informational message (no severity)
func (l *DatabaseLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.logEntry(ctx, "", operation, "", message, nil, metadata)
}

// LogSuccess logs a successful operation (no severity)
func (l *DatabaseLogger) LogSuccess(ctx context.Context, operation, cacheKey, message string, metadata map[string]interface{}) {
	l.logEntry(ctx, "", operation, cacheKey, message, nil, metadata)
}

// LogError logs an error with required severity
func (l *DatabaseLogger) LogError(ctx context.Context, operation, cacheKey, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	l.logEntry(ctx, severity, operation, cacheKey, message, err, metadata)
}

// logEntry is the internal method that creates and stores log entries
func (l *DatabaseLogger) logEntry(ctx context.Context, severity models.LogSeverity, operation, cacheKey, message string, err error, metadata map[string]interface{}) {
	logEvent := GetLogEvent(ctx)

	entry := &models.LogEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Severity:    severity,
		Message:     message,
		Operation:   operation,
		CacheKey:    cacheKey,
		ProcessID:   logEvent.ProcessID,
		ProcessType: logEvent.ProcessType,
		Metadata:    metadata,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	// Insert asynchronously so callers never wait on the database
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()

		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.db.InsertLog(logCtx, entry); err != nil {
			l.fallback.Error().
				Err(err).
				Str("operation", entry.Operation).
				Str("message", entry.Message).
				Msg("failed to insert log entry")
		}
	}()
}

// Close waits for in-flight inserts, then closes the database connection
func (l *DatabaseLogger) Close() error {
	l.pending.Wait()
	return l.db.Close()
}

// LogOperations defines constants for common operations
const (
	OpServiceStart    = "service_start"
	OpServiceShutdown = "service_shutdown"
	OpCacheInit       = "cache_init"
	OpCacheSweep      = "cache_sweep"
	OpCacheClear      = "cache_clear"
)
