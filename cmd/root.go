package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the voicecal application
var rootCmd = &cobra.Command{
	Use:   "voicecal",
	Short: "Turns a voice memo into a Google Calendar event",
	Long: `voicecal transcribes a recorded voice memo, extracts the meeting it
describes, asks for anything that is missing and adds the event to your
Google Calendar.

Running voicecal without a subcommand is the same as "voicecal run".`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// global flags shared by every subcommand
var (
	envFile   string
	logLevel  string
	logFormat string
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "voicecal version %s\n" .Version}}`)

	os.Args = append(os.Args[:1], withDefaultCommand(rootCmd, os.Args[1:])...)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// withDefaultCommand prepends "run" unless args already name a subcommand
// or ask for help or the version.
func withDefaultCommand(root *cobra.Command, args []string) []string {
	if len(args) == 0 {
		return []string{"run"}
	}
	switch args[0] {
	case "-h", "--help", "-v", "--version", "help", "completion", "__complete":
		return args
	}
	for _, c := range root.Commands() {
		if c.Name() == args[0] || c.HasAlias(args[0]) {
			return args
		}
	}
	return append([]string{"run"}, args...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to read settings from (default: .env if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newUpcomingCmd())
	rootCmd.AddCommand(newVersionCmd())
}
