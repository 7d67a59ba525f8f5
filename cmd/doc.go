// Package cmd implements the command-line interface for voicecal.
//
// This package provides the following commands:
//   - run: Transcribe a voice memo and add the event it describes to Google Calendar
//   - auth: Run the Google authorization flow and store the token
//   - upcoming: List upcoming calendar events
//   - version: Display version information
//
// The run command is the default command when no subcommand is specified.
package cmd
