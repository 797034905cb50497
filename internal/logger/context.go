package logger

import (
	"context"
	"time"

	"OrgSettings/internal/models"

	"github.com/google/uuid"
)

// contextKey is used for context values to avoid collisions
type contextKey string

const logEventKey contextKey = "log_event"

// NewLogEvent creates a new log event for process tracking
func NewLogEvent(processType models.ProcessType) *models.LogEvent {
	return &models.LogEvent{
		ProcessID:   uuid.New().String(),
		ProcessType: processType,
		StartTime:   time.Now().UTC(),
	}
}

// WithLogEvent adds a log event to the context
func WithLogEvent(ctx context.Context, logEvent *models.LogEvent) context.Context {
	return context.WithValue(ctx, logEventKey, logEvent)
}

// GetLogEvent retrieves the log event from context
func GetLogEvent(ctx context.Context) *models.LogEvent {
	if logEvent, ok := ctx.Value(logEventKey).(*models.LogEvent); ok && logEvent != nil {
		return logEvent
	}
	return NewInternalLogEvent()
}

// NewInternalLogEvent creates a log event for one-off internal processes (startup, shutdown)
func NewInternalLogEvent() *models.LogEvent {
	return NewLogEvent(models.ProcessTypeInternal)
}

// NewScheduledLogEvent creates a log event for a periodic job run
func NewScheduledLogEvent() *models.LogEvent {
	return NewLogEvent(models.ProcessTypeScheduled)
}
