package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/oauth2"

	"github.com/teemow/voicecal/internal/calendar"
	"github.com/teemow/voicecal/internal/config"
	"github.com/teemow/voicecal/internal/event"
	"github.com/teemow/voicecal/internal/google"
	"github.com/teemow/voicecal/internal/instrumentation"
	"github.com/teemow/voicecal/internal/logging"
)

// session holds what every subcommand needs: configuration, the logger
// and the instrumentation provider.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider *instrumentation.Provider
	audit    *instrumentation.AuditLogger
}

func newSession(ctx context.Context, mode config.Mode) (*session, error) {
	logger, err := logging.Setup(os.Stderr, logLevel, logFormat)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	return &session{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		audit:    instrumentation.NewAuditLogger(logger, instrConfig.AuditLogging),
	}, nil
}

// Close flushes telemetry.
func (s *session) Close(ctx context.Context) {
	if err := s.provider.Shutdown(ctx); err != nil {
		s.logger.Warn("Error during instrumentation shutdown", logging.Err(err))
	}
}

func (s *session) authorizer(out io.Writer) google.Authorizer {
	return &recordingAuthorizer{
		next: &google.LoopbackAuthorizer{
			Addr:   s.cfg.OAuthAddr(),
			Out:    out,
			Logger: logging.NewSlogAdapter(s.logger),
		},
		metrics: s.provider.Metrics(),
	}
}

// calendarClient returns an authenticated calendar client. Without a
// stored token the authorization flow runs first.
func (s *session) calendarClient(ctx context.Context, out io.Writer) (*calendar.Client, error) {
	conf, err := google.LoadOAuthConfig(s.cfg.ClientSecretFile)
	if err != nil {
		return nil, err
	}

	store := google.NewFileTokenStore(s.cfg.TokenFile)
	ts, err := google.TokenSource(ctx, conf, store, s.authorizer(out))
	if err != nil {
		return nil, err
	}

	return calendar.NewClient(ctx, google.HTTPClient(ctx, ts),
		calendar.WithRecorder(s.provider.Metrics()))
}

// lazyCalendar connects on first use, so the authorization flow only
// starts once an event is ready to submit.
type lazyCalendar struct {
	connect func(ctx context.Context) (*calendar.Client, error)

	once   sync.Once
	client *calendar.Client
	err    error
}

func newLazyCalendar(connect func(ctx context.Context) (*calendar.Client, error)) *lazyCalendar {
	return &lazyCalendar{connect: connect}
}

func (l *lazyCalendar) get(ctx context.Context) (*calendar.Client, error) {
	l.once.Do(func() {
		l.client, l.err = l.connect(ctx)
		if l.err != nil {
			l.err = fmt.Errorf("failed to connect to Google Calendar: %w", l.err)
		}
	})
	return l.client, l.err
}

func (l *lazyCalendar) CreateEvent(ctx context.Context, calendarID string, ev *event.NormalizedEvent) (*calendar.EventSummary, error) {
	client, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return client.CreateEvent(ctx, calendarID, ev)
}

func (l *lazyCalendar) ListUpcoming(ctx context.Context, calendarID string, maxResults int) ([]calendar.EventSummary, error) {
	client, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return client.ListUpcoming(ctx, calendarID, maxResults)
}

// recordingAuthorizer counts authorization attempts.
type recordingAuthorizer struct {
	next    google.Authorizer
	metrics *instrumentation.Metrics
}

func (a *recordingAuthorizer) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	token, err := a.next.Authorize(ctx, conf)
	if err != nil {
		a.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return nil, err
	}
	a.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
	return token, nil
}
