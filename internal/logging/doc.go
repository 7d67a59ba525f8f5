// Package logging provides structured logging utilities for voicecal.
//
// All diagnostic output goes through log/slog. User-facing messages (the
// transcript, prompts, the created event link) are written by the
// pipeline directly and are not part of the structured log stream.
//
// # Usage Patterns
//
// Install the process-wide handler once at startup:
//
//	logging.Setup(os.Stderr, "info", "text")
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "pipeline.extract")
//	logger.Info("extraction finished", logging.Status(logging.StatusSuccess))
//
// # Security Considerations
//
// Attendee emails are hashed before logging and OAuth tokens are never
// logged; use UserHash and SanitizeToken.
package logging
