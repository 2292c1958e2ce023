package cli

import (
	"assay/internal/config"

	"github.com/spf13/cobra"
)

// CommandFlags holds the common flag values used across CLI commands that
// work against the registry. This struct consolidates the repetitive flag
// pattern used by commands like list, describe, search, probe, and results.
type CommandFlags struct {
	// OutputFormat specifies the desired output format (table, json, yaml)
	OutputFormat string
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables verbose logging
	Debug bool
	// ConfigPath specifies a custom configuration directory path
	ConfigPath string
	// Workspace overrides the configured workspace directory
	Workspace string
}

// RegisterCommonFlags registers the common flags used by most CLI commands.
// This reduces duplication across command files and ensures consistent flag
// naming and descriptions.
//
// The registered flags are:
//   - --output/-o: Output format (table, wide, json, yaml), default: "table"
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
//   - --config-path: Configuration directory
//   - --workspace: Workspace directory override
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVarP(&flags.OutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml)")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config-path", config.GetDefaultConfigPathOrPanic(), "Configuration directory")
	cmd.PersistentFlags().StringVar(&flags.Workspace, "workspace", "", "Workspace directory for snapshots and change observation")
}

// ToRunnerOptions converts CommandFlags to RunnerOptions for use with
// NewToolRunner. This provides a convenient bridge between the flag
// registration and runner creation.
func (f *CommandFlags) ToRunnerOptions() (RunnerOptions, error) {
	if err := ValidateOutputFormat(f.OutputFormat); err != nil {
		return RunnerOptions{}, err
	}

	return RunnerOptions{
		Format:     OutputFormat(f.OutputFormat),
		NoHeaders:  f.NoHeaders,
		Quiet:      f.Quiet,
		Debug:      f.Debug,
		ConfigPath: f.ConfigPath,
		Workspace:  f.Workspace,
	}, nil
}
