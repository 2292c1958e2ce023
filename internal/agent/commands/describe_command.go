package commands

import (
	"context"
	"fmt"

	"assay/internal/api"
)

// DescribeCommand shows detailed information about a catalog operation
type DescribeCommand struct {
	*BaseCommand
}

// NewDescribeCommand creates a new describe command
func NewDescribeCommand(session SessionInterface, output OutputLogger) *DescribeCommand {
	return &DescribeCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute describes an operation, with manual research notes merged into
// the signature when a research store is wired.
func (d *DescribeCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := d.parseArgs(args, 1, d.Usage())
	if err != nil {
		return err
	}
	operationID := parsed[0]

	result, err := d.session.CallTool(ctx, "assay_operation_describe", map[string]interface{}{
		"operationId": operationID,
	})
	if err != nil {
		return fmt.Errorf("failed to describe operation: %w", err)
	}
	if result.IsError {
		d.output.Error("%s", firstContentText(result))
		return nil
	}

	var op api.Operation
	if err := decodeFirstContent(result, &op); err != nil {
		return fmt.Errorf("failed to decode operation: %w", err)
	}

	d.output.OutputLine(d.getFormatters().FormatOperationDetail(op))
	return nil
}

// Usage returns the usage string
func (d *DescribeCommand) Usage() string {
	return "describe <operation-id>"
}

// Description returns the command description
func (d *DescribeCommand) Description() string {
	return "Show an operation with its merged signature and research notes"
}

// Completions returns possible completions
func (d *DescribeCommand) Completions(input string) []string {
	return d.getOperationCompletions()
}

// Aliases returns command aliases
func (d *DescribeCommand) Aliases() []string {
	return []string{"desc", "info"}
}
