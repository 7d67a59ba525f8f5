package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/teemow/voicecal/internal/calendar"
	"github.com/teemow/voicecal/internal/config"
	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/extract"
	"github.com/teemow/voicecal/internal/form"
	"github.com/teemow/voicecal/internal/ics"
	"github.com/teemow/voicecal/internal/logging"
	"github.com/teemow/voicecal/internal/pipeline"
	"github.com/teemow/voicecal/internal/timeparse"
	"github.com/teemow/voicecal/internal/transcribe"
)

const defaultAudioFile = "audio.wav"

type runOptions struct {
	calendarID  string
	timezone    string
	maxAttempts int
	maxResults  int
	dryRun      bool
	exportICS   string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [audio-file]",
		Short: "Create a calendar event from a voice memo",
		Long: `Transcribe the audio file (audio.wav by default), extract the meeting
it describes and prompt for any missing details. The event is added to
Google Calendar and your upcoming events are listed afterwards.

With --dry-run the event is built and shown but never submitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio := defaultAudioFile
			if len(args) == 1 {
				audio = args[0]
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return silenceReported(cmd, runPipeline(ctx, cmd.OutOrStdout(), audio, opts))
		},
	}

	cmd.Flags().StringVar(&opts.calendarID, "calendar", "", "calendar ID to add the event to (default: VOICECAL_CALENDAR_ID or primary)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "time zone for times without one (default: VOICECAL_TIMEZONE or UTC)")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 0, "maximum prompts for a mandatory field, 0 for unlimited")
	cmd.Flags().IntVar(&opts.maxResults, "max-results", pipeline.DefaultMaxResults, "number of upcoming events to list")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "build the event without submitting it")
	cmd.Flags().StringVar(&opts.exportICS, "export-ics", "", "also write the event to this iCalendar file")
	return cmd
}

func runPipeline(ctx context.Context, out io.Writer, audio string, opts runOptions) error {
	mode := config.ModeRun
	if opts.dryRun {
		mode = config.ModeDryRun
	}

	s, err := newSession(ctx, mode)
	if err != nil {
		return err
	}
	defer s.Close(context.WithoutCancel(ctx))

	logger := logging.NewSlogAdapter(logging.WithOperation(s.logger, "run"))

	timezone := s.cfg.Timezone
	if opts.timezone != "" {
		timezone = opts.timezone
	}
	loc, err := timeparse.LoadLocation(timezone)
	if err != nil {
		return err
	}
	normalizer := timeparse.New(loc)

	transcriber, err := transcribe.NewAssemblyAI(transcribe.Config{
		APIKey:       s.cfg.AssemblyAIAPIKey,
		LanguageCode: s.cfg.LanguageCode,
	}, transcribe.WithLogger(logger), transcribe.WithRecorder(s.provider.Metrics()))
	if err != nil {
		return err
	}

	reader, closeReader, err := lineReader(out)
	if err != nil {
		return err
	}
	defer closeReader()

	deps := pipeline.Deps{
		Transcriber: transcriber,
		Extractor:   extract.New(normalizer, extract.WithLogger(logger)),
		Completer: form.NewCompleter(reader, out,
			form.WithMaxAttempts(opts.maxAttempts),
			form.WithLogger(logger)),
		Builder: event.NewBuilder(normalizer),
	}

	calendarID := s.cfg.CalendarID
	if opts.calendarID != "" {
		calendarID = opts.calendarID
	}

	if !opts.dryRun {
		cal := newLazyCalendar(func(ctx context.Context) (*calendar.Client, error) {
			return s.calendarClient(ctx, out)
		})
		deps.Writer = cal
		deps.Reader = cal
	}

	driverOpts := []pipeline.Option{
		pipeline.WithCalendarID(calendarID),
		pipeline.WithMaxResults(opts.maxResults),
		pipeline.WithDryRun(opts.dryRun),
		pipeline.WithRecorder(s.provider.Metrics()),
		pipeline.WithAuditLogger(s.audit),
		pipeline.WithLogger(logger),
		pipeline.WithReporter(pipeline.NewReporter(out, isTerminal(out))),
	}
	if opts.exportICS != "" {
		driverOpts = append(driverOpts, pipeline.WithExporter(icsExporter{path: opts.exportICS}))
	}

	if _, err := pipeline.New(deps, driverOpts...).Run(ctx, audio); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// reportedError is a failure the pipeline has already shown to the user.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// silenceReported stops cobra from printing err a second time when the
// pipeline already reported it. Setup errors are still printed.
func silenceReported(cmd *cobra.Command, err error) error {
	var reported *reportedError
	if errors.As(err, &reported) {
		cmd.SilenceErrors = true
	}
	return err
}

// lineReader uses readline on an interactive terminal and a plain
// scanner otherwise, so answers can be piped in.
func lineReader(out io.Writer) (form.LineReader, func(), error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		r, err := form.NewTerminalReader()
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	}
	return form.NewScannerReader(os.Stdin, out), func() {}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// icsExporter writes each built event to a fixed .ics path.
type icsExporter struct {
	path string
}

func (e icsExporter) Export(ev *event.NormalizedEvent) (string, error) {
	if err := ics.WriteFile(e.path, ev, ics.Options{}); err != nil {
		return "", err
	}
	return e.path, nil
}
