package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"assay/internal/api"
	"assay/internal/cli"
	"assay/internal/config"

	"github.com/spf13/cobra"
)

var (
	probeFlags    cli.CommandFlags
	probeArgPairs []string
	probeArgsJSON string
	probeTimeout  time.Duration
	probeSnapshot bool
	probeYes      bool
	probeNotes    string
)

// probeCmd represents the probe command
var probeCmd = &cobra.Command{
	Use:   "probe <operation-id>",
	Short: "Execute an operation through the safe probing engine",
	Long: `Execute one operation against the connected host and record the outcome.

Arguments are validated against the merged signature first; a probe with
invalid arguments never reaches the host and exits with code 2. Destructive
operations are refused unless --yes acknowledges them (exit code 3).

The engine can snapshot the workspace before the call and restores it when
the probe fails or times out, so a failing probe leaves no residue. Every
completed probe is recorded and shows up in 'assay results'.

Arguments can be given as repeated --arg key=value pairs (values that parse
as JSON keep their type) or as one --args-json document.

Examples:
  assay probe fs.read --arg path=/etc/hosts
  assay probe net.fetch --arg url=https://example.com --timeout 10s
  assay probe fs.write --arg path=/tmp/out --arg content=hello --snapshot
  assay probe fs.remove --arg path=/tmp/scratch --yes
  assay probe proc.spawn --args-json '{"command": "ls", "args": ["-l"]}'`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	cli.RegisterCommonFlags(probeCmd, &probeFlags)
	probeCmd.Flags().StringArrayVar(&probeArgPairs, "arg", nil, "Operation argument as key=value, repeatable")
	probeCmd.Flags().StringVar(&probeArgsJSON, "args-json", "", "Operation arguments as one JSON object")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 0, "Probe timeout (overrides the configured default)")
	probeCmd.Flags().BoolVar(&probeSnapshot, "snapshot", false, "Snapshot the workspace before the call")
	probeCmd.Flags().BoolVar(&probeYes, "yes", false, "Confirm execution of a destructive operation")
	probeCmd.Flags().StringVar(&probeNotes, "notes", "", "Notes to attach to the recorded result")
	probeCmd.MarkFlagsMutuallyExclusive("arg", "args-json")
}

func runProbe(cmd *cobra.Command, args []string) error {
	operationID := args[0]

	probeArgs, err := parseProbeArguments(probeArgPairs, probeArgsJSON)
	if err != nil {
		return err
	}

	application, runner, err := bootstrapApp(&probeFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := commandContext(cmd)

	// Bad arguments never reach the host.
	verdict, err := api.GetValidation().ValidateArgs(ctx, operationID, probeArgs)
	if err != nil {
		return err
	}
	if !verdict.Valid {
		if renderErr := runner.RenderResult(verdict); renderErr != nil {
			return renderErr
		}
		return &cli.ValidationFailedError{OperationID: operationID, Result: verdict}
	}

	settings := probeSettings{
		Timeout:    probeTimeout,
		TimeoutSet: cmd.Flags().Changed("timeout"),
		Snapshot:   probeSnapshot,
		Confirmed:  probeYes,
		Notes:      probeNotes,
	}
	opts := buildProbeOptions(application.Config().Execution, settings)

	var outcome *api.ExecutionOutcome
	err = runner.WithProgress("Probing operation...", func() error {
		if connectErr := application.ConnectHost(ctx); connectErr != nil {
			return connectErr
		}
		var execErr error
		outcome, execErr = api.GetExecution().Execute(ctx, operationID, probeArgs, opts)
		return execErr
	})
	if err != nil {
		if api.IsConfirmationRequired(err) {
			return fmt.Errorf("%w. Re-run with --yes to proceed", err)
		}
		return err
	}

	if renderErr := runner.RenderResult(outcome); renderErr != nil {
		return renderErr
	}

	// A completed probe with a failing outcome still recorded a result, but
	// scripts need the failure signal.
	if !outcome.Success {
		if outcome.Error != nil {
			return fmt.Errorf("probe of %s failed: [%s] %s", operationID, outcome.Error.Kind, outcome.Error.Message)
		}
		return fmt.Errorf("probe of %s failed", operationID)
	}
	return nil
}

// probeSettings carries the flag values for one probe invocation.
type probeSettings struct {
	Timeout    time.Duration
	TimeoutSet bool
	Snapshot   bool
	Confirmed  bool
	Notes      string
}

// parseProbeArguments builds the probe argument map from either repeated
// --arg pairs or one --args-json document.
func parseProbeArguments(pairs []string, argsJSON string) (map[string]interface{}, error) {
	if argsJSON != "" {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return nil, fmt.Errorf("invalid --args-json document: %w", err)
		}
		return args, nil
	}
	return cli.ParseKeyValueArgs(pairs)
}

// buildProbeOptions merges the configured execution defaults with the probe
// flags. An explicit --timeout wins over the configured default, and a
// snapshot happens when either side asks for one.
func buildProbeOptions(defaults config.ExecutionDefaults, settings probeSettings) api.ExecuteOptions {
	opts := api.ExecuteOptions{
		CreateSnapshot:      defaults.CreateSnapshot || settings.Snapshot,
		RequireConfirmation: defaults.RequireConfirmation,
		Confirmed:           settings.Confirmed,
		Notes:               settings.Notes,
	}
	if settings.TimeoutSet {
		opts.Timeout = settings.Timeout
	} else if defaults.TimeoutMs > 0 {
		opts.Timeout = time.Duration(defaults.TimeoutMs) * time.Millisecond
	}
	return opts
}
