// Package cmd provides the CLI commands for the Mind It application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/mindit-cli/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	logFile    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mindit",
	Short: "Mind It - time your breaks and talk things through",
	Long: `Mind It is a small wellness companion for the terminal. Pick a relaxation
activity, time it, review where your break time goes and chat with the
Mind It Bot assistant.

Run "mindit" with no arguments to open the full-screen app.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(setupSignalHandler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.mindit/mindit.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to the log file (default: ~/.mindit/mindit.log)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Mind It CLI\nVersion: {{.Version}}\n")
}

// runApp opens the full-screen app.
func runApp(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.Options{
		Recorder:  app.sessions,
		Chat:      app.chat,
		Theme:     &app.config.Theme,
		ExportDir: app.config.Storage.DataDir,
	})
}
