// Package logging carries request-scoped identifiers (trace ID, user ID,
// role) through context and exposes a context-aware logger.
package logging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecoplay/game-service/pkg/logger"
)

type contextKey string

const (
	// TraceIDKey holds the request trace ID in context.
	TraceIDKey contextKey = "trace_id"
	// UserIDKey holds the authenticated user ID in context.
	UserIDKey contextKey = "user_id"
	// RoleKey holds the authenticated user's role in context.
	RoleKey contextKey = "role"
)

// Logger decorates pkg/logger with context field extraction.
type Logger struct {
	*logger.Logger
}

// NewLogger wraps a base logger. A nil base gets a default.
func NewLogger(base *logger.Logger) *Logger {
	if base == nil {
		base = logger.NewDefault("http")
	}
	return &Logger{Logger: base}
}

// WithContext returns a logger annotated with the IDs present in ctx.
func (l *Logger) WithContext(ctx context.Context) *logger.Logger {
	out := l.Logger
	if traceID := GetTraceID(ctx); traceID != "" {
		out = out.WithField("trace_id", traceID)
	}
	if userID := GetUserID(ctx); userID != "" {
		out = out.WithField("user_id", userID)
	}
	return out
}

// LogRequest emits one access-log line for a completed request.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	l.WithContext(ctx).WithFields(map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	}).Info("request completed")
}

// LogSecurityEvent emits a warning-level security event line.
func (l *Logger) LogSecurityEvent(ctx context.Context, event string, fields map[string]interface{}) {
	l.WithContext(ctx).WithField("event", event).WithFields(fields).Warn("security event")
}

// NewTraceID generates a fresh trace identifier.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID stores a trace ID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID extracts the trace ID from ctx, or "".
func GetTraceID(ctx context.Context) string {
	v, _ := ctx.Value(TraceIDKey).(string)
	return v
}

// GetUserID extracts the authenticated user ID from ctx, or "".
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(UserIDKey).(string)
	return v
}

// GetRole extracts the authenticated role from ctx, or "".
func GetRole(ctx context.Context) string {
	v, _ := ctx.Value(RoleKey).(string)
	return v
}
