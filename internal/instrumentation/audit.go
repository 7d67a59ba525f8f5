package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// CalendarWrite captures one attempt to create a calendar event for audit logging.
//
// # Privacy Considerations
//
// Attendees contains PII. LogAttrs only exposes attendee domains; full
// addresses appear only through LogAuditAttrs.
type CalendarWrite struct {
	CalendarID string
	EventID    string
	Attendees  []string
	Recurring  bool

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// NewCalendarWrite creates a new CalendarWrite with timing started.
// Call Complete() when the write finishes.
func NewCalendarWrite(calendarID string) *CalendarWrite {
	return &CalendarWrite{
		CalendarID: calendarID,
		StartTime:  time.Now(),
	}
}

// WithAttendees sets the invited addresses.
func (cw *CalendarWrite) WithAttendees(emails []string, recurring bool) *CalendarWrite {
	cw.Attendees = emails
	cw.Recurring = recurring
	return cw
}

// WithSpanContext extracts trace context from the current span.
func (cw *CalendarWrite) WithSpanContext(ctx context.Context) *CalendarWrite {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		cw.TraceID = span.SpanContext().TraceID().String()
		cw.SpanID = span.SpanContext().SpanID().String()
	}
	return cw
}

// Complete marks the write as finished and calculates duration.
func (cw *CalendarWrite) Complete(eventID string, err error) *CalendarWrite {
	cw.Duration = time.Since(cw.StartTime)
	cw.EventID = eventID
	cw.Success = err == nil
	if err != nil {
		cw.Error = err.Error()
	}
	return cw
}

// Status returns "success" or "error" based on the Success field.
func (cw *CalendarWrite) Status() string {
	if cw.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes with attendee domains only.
func (cw *CalendarWrite) LogAttrs() []slog.Attr {
	attrs := cw.commonAttrs()
	if len(cw.Attendees) > 0 {
		attrs = append(attrs, slog.Any("attendee_domains", UniqueDomains(cw.Attendees)))
	}
	return attrs
}

// LogAuditAttrs returns slog attributes including full attendee addresses.
//
// # Security Warning
//
// This method includes PII. Route audit logs to storage with appropriate
// access controls.
func (cw *CalendarWrite) LogAuditAttrs() []slog.Attr {
	attrs := cw.commonAttrs()
	if len(cw.Attendees) > 0 {
		attrs = append(attrs, slog.Any("attendees", cw.Attendees))
	}
	if cw.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", cw.SpanID))
	}
	return attrs
}

func (cw *CalendarWrite) commonAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("calendar_id", cw.CalendarID),
		slog.Int("attendee_count", len(cw.Attendees)),
		slog.Bool("recurring", cw.Recurring),
		slog.Duration("duration", cw.Duration),
		slog.Bool("success", cw.Success),
	}
	if cw.EventID != "" {
		attrs = append(attrs, slog.String("event_id", cw.EventID))
	}
	if cw.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", cw.TraceID))
	}
	if cw.Error != "" {
		attrs = append(attrs, slog.String("error", cw.Error))
	}
	return attrs
}

// AuditLogger provides structured audit logging for calendar writes.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given configuration.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogCalendarWrite logs a calendar write. Full attendee addresses are
// included only when the logger was configured with IncludePII.
func (al *AuditLogger) LogCalendarWrite(cw *CalendarWrite) {
	if al == nil || !al.enabled {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = cw.LogAuditAttrs()
	} else {
		attrs = cw.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if cw.Success {
		al.logger.Info("calendar_event_created", args...)
	} else {
		al.logger.Warn("calendar_event_failed", args...)
	}
}
