package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/teemow/voicecal/internal/config"
	"github.com/teemow/voicecal/internal/google"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize voicecal to access Google Calendar",
		Long: `Run the Google OAuth flow and store the resulting token.

A consent URL is printed; after you approve access the browser is
redirected to a local listener and the token is written to
GOOGLE_TOKEN_FILE. An existing token is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			s, err := newSession(ctx, config.ModeCalendar)
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			conf, err := google.LoadOAuthConfig(s.cfg.ClientSecretFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			store := google.NewFileTokenStore(s.cfg.TokenFile)
			noteExistingToken(out, store)

			token, err := s.authorizer(out).Authorize(ctx, conf)
			if err != nil {
				return fmt.Errorf("failed to authorize with Google: %w", err)
			}

			if err := store.Save(token); err != nil {
				return err
			}

			color.New(color.FgGreen).Fprintf(out, "Token saved to %s\n", store.Path())
			return nil
		},
	}
}

// noteExistingToken warns that authorizing again replaces the stored token.
func noteExistingToken(out io.Writer, store *google.FileTokenStore) {
	if store.HasToken() {
		color.New(color.FgYellow).Fprintf(out, "Replacing the token stored at %s\n", store.Path())
	}
}
