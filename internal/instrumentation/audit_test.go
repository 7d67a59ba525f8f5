package instrumentation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return out
}

func TestCalendarWrite_Complete(t *testing.T) {
	cw := NewCalendarWrite("primary").
		WithAttendees([]string{"a@x.com"}, true).
		WithSpanContext(context.Background()).
		Complete("evt-1", nil)

	if !cw.Success || cw.Status() != StatusSuccess {
		t.Errorf("expected success, got %+v", cw)
	}
	if cw.EventID != "evt-1" {
		t.Errorf("expected event id evt-1, got %q", cw.EventID)
	}
	if cw.TraceID != "" {
		t.Errorf("expected no trace id without span, got %q", cw.TraceID)
	}

	failed := NewCalendarWrite("primary").Complete("", errors.New("forbidden"))
	if failed.Success || failed.Status() != StatusError || failed.Error != "forbidden" {
		t.Errorf("expected failure, got %+v", failed)
	}
}

func TestAuditLogger_AnonymizesByDefault(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(newJSONLogger(&buf), AuditLoggingConfig{Enabled: true})

	al.LogCalendarWrite(NewCalendarWrite("primary").
		WithAttendees([]string{"alice@example.com", "bob@example.com"}, false).
		Complete("evt-1", nil))

	line := decodeLine(t, &buf)
	if line["msg"] != "calendar_event_created" {
		t.Errorf("unexpected message %v", line["msg"])
	}
	if strings.Contains(buf.String(), "alice@") {
		t.Error("full attendee address leaked into log")
	}
	domains, ok := line["attendee_domains"].([]any)
	if !ok || len(domains) != 1 || domains[0] != "example.com" {
		t.Errorf("unexpected attendee_domains %v", line["attendee_domains"])
	}
	if line["attendee_count"] != float64(2) {
		t.Errorf("unexpected attendee_count %v", line["attendee_count"])
	}
}

func TestAuditLogger_IncludePII(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(newJSONLogger(&buf), AuditLoggingConfig{Enabled: true, IncludePII: true})

	al.LogCalendarWrite(NewCalendarWrite("primary").
		WithAttendees([]string{"alice@example.com"}, false).
		Complete("", errors.New("forbidden")))

	line := decodeLine(t, &buf)
	if line["msg"] != "calendar_event_failed" || line["level"] != "WARN" {
		t.Errorf("unexpected record %v", line)
	}
	if !strings.Contains(buf.String(), "alice@example.com") {
		t.Error("expected full attendee address with IncludePII")
	}
	if line["error"] != "forbidden" {
		t.Errorf("unexpected error field %v", line["error"])
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	al := NewAuditLogger(newJSONLogger(&buf), AuditLoggingConfig{Enabled: false})
	al.LogCalendarWrite(NewCalendarWrite("primary").Complete("evt", nil))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	var nilLogger *AuditLogger
	nilLogger.LogCalendarWrite(NewCalendarWrite("primary"))
}
