// Package instrumentation provides OpenTelemetry instrumentation for voicecal.
//
// A voicecal run is short-lived, so everything is off by default and the
// exporters are chosen for one-shot processes:
//   - stdout for local debugging
//   - OTLP for pushing to a collector
//   - Prometheus, gathered into a private registry and pushed to a
//     Pushgateway when the provider shuts down
//
// # Metrics
//
// Pipeline Metrics:
//   - voicecal_stage_duration_seconds: Histogram of stage durations by stage and status
//   - voicecal_stage_total: Counter of stage executions by stage and status
//   - transcription_duration_seconds: Histogram of transcription wall time by status
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Metrics:
//   - oauth_auth_total: Counter of interactive authorizations by result
//
// # Tracing
//
// Spans are created for every pipeline stage (stage.<name>) and every
// Google API call (google.<service>.<operation>).
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: prometheus, otlp or stdout (default: stdout)
//   - TRACING_EXPORTER: otlp, stdout or none (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - PROMETHEUS_PUSHGATEWAY_URL: Pushgateway receiving the prometheus exporter's metrics
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	provider.Metrics().RecordStage(ctx, "transcribing", instrumentation.StatusSuccess, time.Since(start))
package instrumentation
