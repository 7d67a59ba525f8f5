package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/teemow/voicecal/internal/calendar"
	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/instrumentation"
	"github.com/teemow/voicecal/internal/logging"
	"github.com/teemow/voicecal/internal/task"
)

// Defaults for a run.
const (
	DefaultCalendarID   = "primary"
	DefaultMaxResults   = 10
	DefaultPreviewCount = 3
)

// Transcriber turns an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Extractor finds a candidate request in a transcript.
type Extractor interface {
	Extract(transcript string) task.Details
}

// Completer fills the fields extraction left empty.
type Completer interface {
	Complete(ctx context.Context, details task.Details) (task.Details, error)
}

// Builder turns completed details into an event.
type Builder interface {
	Build(details task.Details) (*event.NormalizedEvent, error)
}

// CalendarWriter stores an event.
type CalendarWriter interface {
	CreateEvent(ctx context.Context, calendarID string, ev *event.NormalizedEvent) (*calendar.EventSummary, error)
}

// CalendarReader lists upcoming events.
type CalendarReader interface {
	ListUpcoming(ctx context.Context, calendarID string, maxResults int) ([]calendar.EventSummary, error)
}

// Exporter writes the built event somewhere besides the calendar and
// returns where it went.
type Exporter interface {
	Export(ev *event.NormalizedEvent) (string, error)
}

// StageRecorder receives stage timings. *instrumentation.Metrics satisfies it.
type StageRecorder interface {
	RecordStage(ctx context.Context, stage, status string, duration time.Duration)
}

// Deps are the collaborators of a Driver. Writer and Reader may be nil
// in dry-run mode.
type Deps struct {
	Transcriber Transcriber
	Extractor   Extractor
	Completer   Completer
	Builder     Builder
	Writer      CalendarWriter
	Reader      CalendarReader
}

// Result is everything a run produced, up to the state it stopped in.
type Result struct {
	States     []State
	Transcript string
	Extracted  task.Details
	Final      task.Details
	Event      *event.NormalizedEvent
	Created    *calendar.EventSummary
	Upcoming   []calendar.EventSummary
	ExportedTo string
}

// State returns the state the run stopped in.
func (r *Result) State() State {
	if len(r.States) == 0 {
		return ""
	}
	return r.States[len(r.States)-1]
}

// Driver runs the pipeline.
type Driver struct {
	deps         Deps
	calendarID   string
	maxResults   int
	previewCount int
	dryRun       bool
	exporter     Exporter
	recorder     StageRecorder
	audit        *instrumentation.AuditLogger
	logger       logging.Logger
	report       *Reporter
}

// Option configures a Driver.
type Option func(*Driver)

// WithCalendarID selects the target calendar.
func WithCalendarID(id string) Option {
	return func(d *Driver) {
		if id != "" {
			d.calendarID = id
		}
	}
}

// WithMaxResults sets how many upcoming events are listed.
func WithMaxResults(n int) Option {
	return func(d *Driver) {
		if n > 0 {
			d.maxResults = n
		}
	}
}

// WithPreviewCount sets how many occurrences of a recurring event are shown.
// Zero disables the preview.
func WithPreviewCount(n int) Option {
	return func(d *Driver) { d.previewCount = n }
}

// WithDryRun stops the run after the event is built.
func WithDryRun(dryRun bool) Option {
	return func(d *Driver) { d.dryRun = dryRun }
}

// WithExporter exports every built event.
func WithExporter(e Exporter) Option {
	return func(d *Driver) { d.exporter = e }
}

// WithRecorder records stage timings.
func WithRecorder(r StageRecorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// WithAuditLogger logs every calendar write.
func WithAuditLogger(a *instrumentation.AuditLogger) Option {
	return func(d *Driver) { d.audit = a }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithReporter sets where user-facing output goes.
func WithReporter(r *Reporter) Option {
	return func(d *Driver) {
		if r != nil {
			d.report = r
		}
	}
}

// New creates a Driver.
func New(deps Deps, opts ...Option) *Driver {
	d := &Driver{
		deps:         deps,
		calendarID:   DefaultCalendarID,
		maxResults:   DefaultMaxResults,
		previewCount: DefaultPreviewCount,
		logger:       logging.DefaultLogger(),
		report:       NewReporter(io.Discard, false),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes the audio file at audioPath. The returned Result is never
// nil; on error its last state is StateFailed.
func (d *Driver) Run(ctx context.Context, audioPath string) (*Result, error) {
	res := &Result{}

	ctx, span := instrumentation.StartSpan(ctx, "voicecal.run",
		instrumentation.NewSpanAttributeBuilder().
			WithCalendar(d.calendarID).
			WithDryRun(d.dryRun).
			Build()...)
	defer span.End()

	err := d.run(ctx, audioPath, res)
	if err != nil {
		d.logger.Error("run failed", logging.Err(err), logging.KeyStage, string(res.State()))
		res.States = append(res.States, StateFailed)
		instrumentation.SetSpanError(span, err)
		return res, err
	}

	res.States = append(res.States, StateDone)
	instrumentation.SetSpanSuccess(span)
	return res, nil
}

func (d *Driver) run(ctx context.Context, audioPath string, res *Result) error {
	d.report.Info("Transcribing audio...")
	err := d.stage(ctx, res, StateTranscribing, func(ctx context.Context) error {
		text, err := d.deps.Transcriber.Transcribe(ctx, audioPath)
		if err != nil {
			return &TranscriptionError{Err: err}
		}
		res.Transcript = text
		return nil
	})
	if err != nil {
		d.report.Failure("Failed to transcribe audio: %v", errors.Unwrap(err))
		return err
	}
	d.report.Transcript(res.Transcript)

	err = d.stage(ctx, res, StateExtracting, func(context.Context) error {
		res.Extracted = d.deps.Extractor.Extract(res.Transcript)
		if res.Extracted.IsEmpty() {
			return ErrNothingExtracted
		}
		return nil
	})
	if err != nil {
		d.report.Failure("Failed to extract task details.")
		return err
	}
	if err := d.report.Details("Extracted Task Details", res.Extracted); err != nil {
		return err
	}

	err = d.stage(ctx, res, StateCompleting, func(ctx context.Context) error {
		final, err := d.deps.Completer.Complete(ctx, res.Extracted.Clone())
		if err != nil {
			return err
		}
		res.Final = final
		return nil
	})
	if err != nil {
		d.report.Failure("Failed to complete task details: %v", err)
		return err
	}
	if err := d.report.Details("Final Task Details", res.Final); err != nil {
		return err
	}

	err = d.stage(ctx, res, StateBuilding, func(context.Context) error {
		ev, err := d.deps.Builder.Build(res.Final)
		if err != nil {
			return err
		}
		res.Event = ev
		return nil
	})
	if err != nil {
		d.report.Failure("Error building calendar event: %v", err)
		return err
	}
	d.preview(res.Event)
	d.export(res)

	if d.dryRun {
		d.report.Warning("\nDry run: event not submitted.")
		return nil
	}

	err = d.stage(ctx, res, StateSubmitting, func(ctx context.Context) error {
		return d.submit(ctx, res)
	})
	if err != nil {
		d.report.Failure("Error adding event to calendar: %v", errors.Unwrap(err))
		return err
	}
	d.report.Success("\nEvent created successfully: %s", res.Created.HTMLLink)

	err = d.stage(ctx, res, StateListing, func(ctx context.Context) error {
		events, err := d.deps.Reader.ListUpcoming(ctx, d.calendarID, d.maxResults)
		if err != nil {
			return &CalendarReadError{Err: err}
		}
		res.Upcoming = events
		return nil
	})
	if err != nil {
		d.report.Failure("Error fetching upcoming events: %v", errors.Unwrap(err))
		return err
	}
	d.report.Upcoming(res.Upcoming)
	return nil
}

func (d *Driver) submit(ctx context.Context, res *Result) error {
	if d.deps.Writer == nil {
		return &CalendarWriteError{Err: errors.New("no calendar configured")}
	}

	write := instrumentation.NewCalendarWrite(d.calendarID).
		WithAttendees(attendeeEmails(res.Event), res.Event.Recurring()).
		WithSpanContext(ctx)

	created, err := d.deps.Writer.CreateEvent(ctx, d.calendarID, res.Event)
	if err != nil {
		d.audit.LogCalendarWrite(write.Complete("", err))
		return &CalendarWriteError{Err: err}
	}
	d.audit.LogCalendarWrite(write.Complete(created.ID, nil))
	res.Created = created
	return nil
}

func (d *Driver) preview(ev *event.NormalizedEvent) {
	if d.previewCount <= 0 || !ev.Recurring() {
		return
	}
	occurrences, err := event.RecurrencePreview(ev, d.previewCount)
	if err != nil {
		d.logger.Warn("failed to expand recurrence", logging.Err(err))
		return
	}
	d.report.Occurrences(occurrences)
}

// export failures are reported but never end the run.
func (d *Driver) export(res *Result) {
	if d.exporter == nil {
		return
	}
	dest, err := d.exporter.Export(res.Event)
	if err != nil {
		d.report.Warning("Failed to export event: %v", err)
		d.logger.Warn("event export failed", logging.Err(err))
		return
	}
	res.ExportedTo = dest
	d.report.Info("\nEvent exported to %s", dest)
}

// stage runs fn as state s: it records the transition, wraps fn in a
// span and reports its duration.
func (d *Driver) stage(ctx context.Context, res *Result, s State, fn func(context.Context) error) error {
	res.States = append(res.States, s)

	var attrs []attribute.KeyValue
	if s == StateSubmitting && res.Event != nil {
		attrs = instrumentation.NewSpanAttributeBuilder().
			WithCalendar(d.calendarID).
			WithAttendees(attendeeEmails(res.Event)).
			WithRecurring(res.Event.Recurring()).
			Build()
	}
	ctx, span := instrumentation.StartStageSpan(ctx, string(s), attrs...)
	defer span.End()

	d.logger.Debug("stage started", logging.KeyStage, string(s))
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	if d.recorder != nil {
		d.recorder.RecordStage(ctx, string(s), status, elapsed)
	}
	d.logger.Info("stage finished",
		logging.KeyStage, string(s),
		logging.KeyStatus, status,
		logging.KeyDuration, elapsed)
	return err
}

func attendeeEmails(ev *event.NormalizedEvent) []string {
	emails := make([]string, 0, len(ev.Attendees))
	for _, a := range ev.Attendees {
		emails = append(emails, a.Email)
	}
	return emails
}
