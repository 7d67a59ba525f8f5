package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/teemow/voicecal/internal/logging"
	"github.com/teemow/voicecal/internal/task"
	"github.com/teemow/voicecal/internal/timeparse"
)

// TimeNormalizer resolves free-text times. *timeparse.Normalizer satisfies it.
type TimeNormalizer interface {
	Parse(text string) (time.Time, error)
}

// Rule maps one sentence pattern to task fields.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Apply receives the full submatch slice of Pattern.
	Apply func(match []string, n TimeNormalizer) (task.Details, error)
}

// MeetingPattern matches "(schedule|book|arrange) a meeting with <who> at <when>".
var MeetingPattern = regexp.MustCompile(`(?i)(?:schedule|book|arrange) a meeting with (.+?) at (.+?)(?:\.|$)`)

// MeetingRule is the built-in meeting request rule.
func MeetingRule() Rule {
	return Rule{
		Name:    "meeting",
		Pattern: MeetingPattern,
		Apply:   applyMeeting,
	}
}

func applyMeeting(match []string, n TimeNormalizer) (task.Details, error) {
	if len(match) < 3 {
		return nil, errors.New("meeting rule: unexpected submatch count")
	}
	withWhom := strings.TrimSpace(match[1])
	timeText := strings.TrimSpace(match[2])

	start, err := n.Parse(timeText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse time %q: %w", timeText, err)
	}

	return task.Details{
		task.FieldTask:     "Meeting with " + withWhom,
		task.FieldWithWhom: withWhom,
		task.FieldDateTime: timeparse.FormatISO(start),
	}, nil
}

// DefaultRules returns the rules used when none are configured.
func DefaultRules() []Rule {
	return []Rule{MeetingRule()}
}

// Extractor applies rules to transcript text.
type Extractor struct {
	rules      []Rule
	normalizer TimeNormalizer
	logger     logging.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the rule list. Rules are tried in order.
func WithRules(rules ...Rule) Option {
	return func(e *Extractor) {
		e.rules = rules
	}
}

// WithLogger sets the logger used to report misses.
func WithLogger(logger logging.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New returns an Extractor using n to resolve captured times.
func New(n TimeNormalizer, opts ...Option) *Extractor {
	e := &Extractor{
		rules:      DefaultRules(),
		normalizer: n,
		logger:     logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the fields recognized in transcript. The result is empty
// when no rule matches or when the matching rule fails; failures are
// logged, never returned.
func (e *Extractor) Extract(transcript string) task.Details {
	for _, rule := range e.rules {
		match := rule.Pattern.FindStringSubmatch(transcript)
		if match == nil {
			continue
		}

		details, err := rule.Apply(match, e.normalizer)
		if err != nil {
			e.logger.Warn("extraction rule matched but failed",
				logging.KeyRule, rule.Name,
				logging.KeyError, err.Error())
			return task.Details{}
		}

		e.logger.Debug("extraction rule matched",
			logging.KeyRule, rule.Name,
			"fields", len(details))
		return details
	}

	e.logger.Info("no extraction rule matched transcript")
	return task.Details{}
}
