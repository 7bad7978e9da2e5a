package cmd

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-magpatch/pkg/magpatch"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check and correct the configuration without touching the item database",
	Long: `Load the configuration, report every invalid setting and the value it was
reset to, and save the corrected file unless --dry-run is given.

A missing configuration file is created with defaults. The command only
fails when an existing file is empty or cannot be parsed.`,
	Args: cobra.NoArgs,
	RunE: validateRunE,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRunE(cmd *cobra.Command, _ []string) error {
	log := newLogger(cmd.ErrOrStderr())

	result, err := magpatch.Validate(runOptions(log, nil, flagDryRun))
	if err != nil {
		return err
	}

	if flagExplain {
		if _, err := io.WriteString(cmd.ErrOrStderr(), result.Explanation); err != nil {
			return fmt.Errorf("writing explanation: %w", err)
		}
	}

	if flagShowConfig {
		return showConfig(cmd.OutOrStdout(), result.Config)
	}
	return writeCorrections(cmd.OutOrStdout(), result)
}

// writeCorrections prints one line per correction, or a short confirmation
// when the configuration was already valid.
func writeCorrections(w io.Writer, result *magpatch.Result) error {
	if flagOutput == "json" {
		return writeOutput(w, result)
	}
	if len(result.Corrections) == 0 {
		_, err := fmt.Fprintf(w, "%s: ok\n", result.ConfigPath)
		return err
	}
	for _, c := range result.Corrections {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}
