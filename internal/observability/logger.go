package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldSessionID is the field name for session ID.
	LogFieldSessionID = "session_id"
	// LogFieldActivity is the field name for the activity being performed.
	LogFieldActivity = "activity"
	// LogFieldNoteID is the field name for note ID.
	LogFieldNoteID = "note_id"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldErrorCode is the field name for error code.
	LogFieldErrorCode = "error_code"
	// LogFieldFallback is the field name marking a non-AI fallback path.
	LogFieldFallback = "fallback"
)

// SessionContext carries structured logging state for one study session.
type SessionContext struct {
	SessionID string
	Activity  string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewSessionContext creates a new session context with a generated session ID.
func NewSessionContext(logger *slog.Logger, activity string) *SessionContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionContext{
		SessionID: uuid.New().String(),
		Activity:  activity,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// Info logs an info message.
func (s *SessionContext) Info(msg string, attrs ...slog.Attr) {
	s.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, s.withBase(attrs)...)
}

// Debug logs a debug message.
func (s *SessionContext) Debug(msg string, attrs ...slog.Attr) {
	s.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, s.withBase(attrs)...)
}

// Warn logs a warning message.
func (s *SessionContext) Warn(msg string, attrs ...slog.Attr) {
	s.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, s.withBase(attrs)...)
}

// Error logs an error message with the error.
func (s *SessionContext) Error(msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	s.Logger.LogAttrs(context.Background(), slog.LevelError, msg, s.withBase(attrs)...)
}

// DurationMs returns the elapsed time in milliseconds since the session started.
func (s *SessionContext) DurationMs() int64 {
	return time.Since(s.StartTime).Milliseconds()
}

func (s *SessionContext) withBase(attrs []slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldSessionID, s.SessionID),
		slog.String(LogFieldActivity, s.Activity),
	}
	return append(base, attrs...)
}

type ctxKey struct{}

// WithSessionContext adds the session context to the context.
func WithSessionContext(ctx context.Context, sc *SessionContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext extracts the session context from the context.
func FromContext(ctx context.Context) (*SessionContext, bool) {
	sc, ok := ctx.Value(ctxKey{}).(*SessionContext)
	return sc, ok
}
