package instrumentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config controls telemetry export. Everything is off unless Enabled.
type Config struct {
	ServiceName       string
	ServiceVersion    string
	ServiceInstanceID string // hostname when empty

	Enabled bool

	// MetricsExporter is one of prometheus, otlp or stdout.
	MetricsExporter string
	// TracingExporter is one of otlp, stdout or none.
	TracingExporter string

	// OTLPEndpoint is host:port without a scheme, e.g. "localhost:4318".
	OTLPEndpoint string
	OTLPInsecure bool

	TraceSamplingRate float64

	// PushgatewayURL receives the prometheus registry when the process
	// shuts down. Required with the prometheus exporter.
	PushgatewayURL string
	PushJob        string

	AuditLogging AuditLoggingConfig
}

// AuditLoggingConfig controls the audit trail of calendar writes.
type AuditLoggingConfig struct {
	Enabled bool
	// IncludePII logs full attendee addresses instead of their domains.
	IncludePII bool
}

// Environment variables read by DefaultConfig.
const (
	EnvServiceName       = "OTEL_SERVICE_NAME"
	EnvServiceInstanceID = "OTEL_SERVICE_INSTANCE_ID"
	EnvEnabled           = "INSTRUMENTATION_ENABLED"
	EnvMetricsExporter   = "METRICS_EXPORTER"
	EnvTracingExporter   = "TRACING_EXPORTER"
	EnvOTLPEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTLPInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	EnvSamplingRate      = "OTEL_TRACES_SAMPLER_ARG"
	EnvPushgatewayURL    = "PROMETHEUS_PUSHGATEWAY_URL"
	EnvPushJob           = "PROMETHEUS_PUSH_JOB"
	EnvAuditEnabled      = "AUDIT_LOGGING_ENABLED"
	EnvAuditIncludePII   = "AUDIT_LOGGING_INCLUDE_PII"
)

// DefaultConfig reads the configuration from the environment. Values
// that do not parse fall back to their defaults.
func DefaultConfig() Config {
	e := env{v: viper.New()}
	e.v.AutomaticEnv()

	return Config{
		ServiceName:       e.str(EnvServiceName, "voicecal"),
		ServiceVersion:    "unknown",
		ServiceInstanceID: e.str(EnvServiceInstanceID, ""),
		Enabled:           e.boolean(EnvEnabled, false),
		MetricsExporter:   e.str(EnvMetricsExporter, ExporterStdout),
		TracingExporter:   e.str(EnvTracingExporter, ExporterNone),
		OTLPEndpoint:      e.str(EnvOTLPEndpoint, ""),
		OTLPInsecure:      e.boolean(EnvOTLPInsecure, false),
		TraceSamplingRate: e.float(EnvSamplingRate, 1.0),
		PushgatewayURL:    e.str(EnvPushgatewayURL, ""),
		PushJob:           e.str(EnvPushJob, "voicecal"),
		AuditLogging: AuditLoggingConfig{
			Enabled:    e.boolean(EnvAuditEnabled, true),
			IncludePII: e.boolean(EnvAuditIncludePII, false),
		},
	}
}

type env struct {
	v *viper.Viper
}

func (e env) str(key, def string) string {
	if s := strings.TrimSpace(e.v.GetString(key)); s != "" {
		return s
	}
	return def
}

func (e env) boolean(key string, def bool) bool {
	b, err := strconv.ParseBool(e.str(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return b
}

func (e env) float(key string, def float64) float64 {
	f, err := strconv.ParseFloat(e.str(key, ""), 64)
	if err != nil {
		return def
	}
	return f
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.TraceSamplingRate < 0 || c.TraceSamplingRate > 1 {
		return fmt.Errorf("trace sampling rate must be between 0.0 and 1.0, got %f", c.TraceSamplingRate)
	}

	validMetricsExporters := map[string]bool{ExporterPrometheus: true, ExporterOTLP: true, ExporterStdout: true}
	if c.MetricsExporter != "" && !validMetricsExporters[c.MetricsExporter] {
		return fmt.Errorf("invalid metrics exporter %q, must be one of: prometheus, otlp, stdout", c.MetricsExporter)
	}

	validTracingExporters := map[string]bool{ExporterOTLP: true, ExporterStdout: true, ExporterNone: true}
	if c.TracingExporter != "" && !validTracingExporters[c.TracingExporter] {
		return fmt.Errorf("invalid tracing exporter %q, must be one of: otlp, stdout, none", c.TracingExporter)
	}

	if c.TracingExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP tracing exporter")
	}
	if c.MetricsExporter == ExporterOTLP && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required when using OTLP metrics exporter")
	}
	if c.MetricsExporter == ExporterPrometheus && c.PushgatewayURL == "" {
		return fmt.Errorf("pushgateway URL is required when using prometheus metrics exporter")
	}

	return nil
}

// Constants for metric label values.
const (
	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// OAuth result values
	OAuthResultSuccess = "success"
	OAuthResultFailure = "failure"

	// Google service names
	ServiceCalendar = "calendar"

	// Exporter types
	ExporterPrometheus = "prometheus"
	ExporterOTLP       = "otlp"
	ExporterStdout     = "stdout"
	ExporterNone       = "none"
)
