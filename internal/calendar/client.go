package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/instrumentation"
)

// OperationRecorder receives the outcome of each API call.
// *instrumentation.Metrics satisfies it.
type OperationRecorder interface {
	RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration)
}

// Client wraps the Google Calendar service
type Client struct {
	svc      *calendar.Service
	recorder OperationRecorder
	now      func() time.Time
	apiOpts  []option.ClientOption
}

// Option configures a Client.
type Option func(*Client)

// WithRecorder records every API call on r.
func WithRecorder(r OperationRecorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithClock replaces time.Now, used as the lower bound for upcoming events.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithAPIOptions passes extra options such as option.WithEndpoint to the
// underlying service.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(c *Client) { c.apiOpts = append(c.apiOpts, opts...) }
}

// NewClient creates a Calendar client that issues requests through
// httpClient, typically the authenticated client from the google package.
func NewClient(ctx context.Context, httpClient *http.Client, opts ...Option) (*Client, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	c := &Client{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}

	apiOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.apiOpts...)
	svc, err := calendar.NewService(ctx, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// CreateEvent inserts ev into the calendar and returns the stored event,
// including its web link.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, ev *event.NormalizedEvent) (*EventSummary, error) {
	if ev == nil {
		return nil, fmt.Errorf("event cannot be nil")
	}

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, instrumentation.OperationCreate)
	defer span.End()

	start := time.Now()
	created, err := c.svc.Events.Insert(calendarID, toAPIEvent(ev)).Context(ctx).Do()
	c.record(ctx, instrumentation.OperationCreate, err, time.Since(start))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	summary := toEventSummary(created)
	return &summary, nil
}

// ListUpcoming returns up to maxResults events starting from now,
// expanded into single instances and ordered by start time.
func (c *Client) ListUpcoming(ctx context.Context, calendarID string, maxResults int) ([]EventSummary, error) {
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceCalendar, instrumentation.OperationList)
	defer span.End()

	call := c.svc.Events.List(calendarID).
		TimeMin(c.now().UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	if maxResults > 0 {
		call = call.MaxResults(int64(maxResults))
	}

	start := time.Now()
	events, err := call.Context(ctx).Do()
	c.record(ctx, instrumentation.OperationList, err, time.Since(start))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	var summaries []EventSummary
	for _, item := range events.Items {
		summaries = append(summaries, toEventSummary(item))
	}

	return summaries, nil
}

func (c *Client) record(ctx context.Context, operation string, err error, d time.Duration) {
	if c.recorder == nil {
		return
	}
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.recorder.RecordGoogleAPIOperation(ctx, instrumentation.ServiceCalendar, operation, status, d)
}
