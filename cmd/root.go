package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagConfig       string
	flagDatabase     string
	flagDryRun       bool
	flagOutput       string
	flagShowVariable string
	flagShowConfig   bool
	flagExplain      bool
	flagVerbosity    string
	flagLogFormat    string
	flagWaitAttempts int
	flagWaitDelay    time.Duration
)

// rootCmd is the top-level command for magpatch.
var rootCmd = &cobra.Command{
	Use:   "magpatch",
	Short: "Patch magazine reload behaviour in a game server item database",
	Long: `magpatch loads config/config.jsonc, corrects any invalid settings in place,
then rewrites the reload properties of every magazine in the item database.`,
	SilenceUsage: true,
	// Default action is apply.
	RunE: applyRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", config.DefaultPath, "path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&flagDatabase, "database", "d", "database", "directory holding items.json and globals.json")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "do not write the corrected configuration or the patched database")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for key=value")
	rootCmd.PersistentFlags().StringVar(&flagShowVariable, "show-variable", "", "output a single variable (e.g. SpeedOverrides)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the effective configuration and exit")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "show what was corrected and patched")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "", "log verbosity: quiet, info, debug (default: follow the debug setting)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().IntVar(&flagWaitAttempts, "wait-attempts", catalog.DefaultWaitAttempts, "times to look for the item database before giving up")
	rootCmd.PersistentFlags().DurationVar(&flagWaitDelay, "wait-delay", catalog.DefaultWaitDelay, "delay between item database lookups")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
