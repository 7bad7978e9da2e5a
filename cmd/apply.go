package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-magpatch/internal/catalog"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/config"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/database"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/logging"
	"github.com/MyCarrier-DevOps/go-magpatch/internal/output"
	"github.com/MyCarrier-DevOps/go-magpatch/pkg/magpatch"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Validate the configuration and patch the item database (default)",
	Args:  cobra.NoArgs,
	RunE:  applyRunE,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func applyRunE(cmd *cobra.Command, _ []string) error {
	log := newLogger(cmd.ErrOrStderr())

	// Show config mode: validate without writing, print and exit.
	if flagShowConfig {
		result, err := magpatch.Validate(runOptions(log, nil, true))
		if err != nil {
			return err
		}
		return showConfig(cmd.OutOrStdout(), result.Config)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir := database.Open(flagDatabase)
	result, err := magpatch.Run(ctx, runOptions(log, dir, flagDryRun))
	if err != nil {
		return err
	}

	if flagDryRun {
		log.Info().Str("database", flagDatabase).Msg("dry run, item database not saved")
	} else if err := dir.Save(result.Tables); err != nil {
		return fmt.Errorf("saving item database: %w", err)
	}

	if flagExplain {
		if _, err := io.WriteString(cmd.ErrOrStderr(), result.Explanation); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	return writeOutput(cmd.OutOrStdout(), result)
}

// newLogger builds the CLI logger from the verbosity and format flags.
func newLogger(w io.Writer) *logging.Logger {
	return logging.New(logging.Config{
		Output:    w,
		Format:    flagLogFormat,
		Verbosity: flagVerbosity,
		Component: "magpatch",
	})
}

// runOptions maps the command-line flags onto magpatch options.
func runOptions(log *logging.Logger, provider catalog.TablesProvider, dryRun bool) magpatch.Options {
	return magpatch.Options{
		ConfigPath:     flagConfig,
		Provider:       provider,
		Logger:         log,
		Retry:          catalog.RetryPolicy{Attempts: flagWaitAttempts, Delay: flagWaitDelay},
		DryRun:         dryRun,
		FixedVerbosity: flagVerbosity != "",
		Explain:        flagExplain,
	}
}

// showConfig prints the effective configuration as JSON.
func showConfig(w io.Writer, cfg config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutput writes the run result in the requested format.
func writeOutput(w io.Writer, result *magpatch.Result) error {
	if flagShowVariable != "" {
		return output.WriteVariable(w, result.Variables, flagShowVariable)
	}

	switch flagOutput {
	case "json":
		return output.WriteSummaryJSON(w, result.Summary())
	case "":
		return output.WriteAll(w, result.Variables)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
