package cmd

import (
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var resultsFlags cli.CommandFlags

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results [operation-id]",
	Short: "Show recorded probe results",
	Long: `Show the results recorded by previous probes, in the order they were
recorded. With an operation id, only that operation's results are shown.

Each result carries the arguments used, the outcome (success, duration,
error, observed side effects), and any notes attached at probe time.

Examples:
  assay results
  assay results fs.read
  assay results fs.read --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	cli.RegisterCommonFlags(resultsCmd, &resultsFlags)
}

func runResults(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&resultsFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	var toolArgs map[string]interface{}
	if len(args) > 0 {
		toolArgs = map[string]interface{}{"operationId": args[0]}
	}

	return runner.Run(commandContext(cmd), "assay_result_list", toolArgs)
}
