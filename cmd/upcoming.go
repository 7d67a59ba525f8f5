package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/voicecal/internal/config"
	"github.com/teemow/voicecal/internal/pipeline"
)

func newUpcomingCmd() *cobra.Command {
	var (
		calendarID string
		maxResults int
	)

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming calendar events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := newSession(ctx, config.ModeCalendar)
			if err != nil {
				return err
			}
			defer s.Close(ctx)

			if calendarID == "" {
				calendarID = s.cfg.CalendarID
			}

			client, err := s.calendarClient(ctx, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to connect to Google Calendar: %w", err)
			}

			events, err := client.ListUpcoming(ctx, calendarID, maxResults)
			if err != nil {
				return &pipeline.CalendarReadError{Err: err}
			}

			out := cmd.OutOrStdout()
			pipeline.NewReporter(out, isTerminal(out)).Upcoming(events)
			return nil
		},
	}

	cmd.Flags().StringVar(&calendarID, "calendar", "", "calendar ID to list (default: VOICECAL_CALENDAR_ID or primary)")
	cmd.Flags().IntVar(&maxResults, "max-results", pipeline.DefaultMaxResults, "number of upcoming events to list")
	return cmd
}
