package cmd

import (
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var describeFlags cli.CommandFlags

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <operation-id>",
	Short: "Show the full record of one operation",
	Long: `Show everything known about one operation: identity, grouping, risk
level, preconditions, and the researched signature with per-parameter types,
sources, and validation rules. Manual research notes are merged into the
signature before display, so what you see is what validation and probing
will use.

Examples:
  assay describe fs.read
  assay describe net.fetch --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	cli.RegisterCommonFlags(describeCmd, &describeFlags)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&describeFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	return runner.Run(commandContext(cmd), "assay_operation_describe", map[string]interface{}{
		"operationId": args[0],
	})
}
