package commands

import (
	"context"
	"fmt"

	"assay/internal/api"
)

// ResultsCommand displays recorded probe results
type ResultsCommand struct {
	*BaseCommand
}

// NewResultsCommand creates a new results command
func NewResultsCommand(session SessionInterface, output OutputLogger) *ResultsCommand {
	return &ResultsCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute lists recorded results, filtered to one operation when an
// operation ID is given.
func (r *ResultsCommand) Execute(ctx context.Context, args []string) error {
	toolArgs := map[string]interface{}{}
	if len(args) > 0 {
		toolArgs["operationId"] = args[0]
	}

	result, err := r.session.CallTool(ctx, "assay_result_list", toolArgs)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	if result.IsError {
		r.output.Error("%s", firstContentText(result))
		return nil
	}

	var payload struct {
		Results []api.TestResult `json:"results"`
	}
	if err := decodeFirstContent(result, &payload); err != nil {
		return fmt.Errorf("failed to decode result list: %w", err)
	}

	// A single filtered hit gets the full record, a list gets the summary
	if len(args) > 0 && len(payload.Results) == 1 {
		r.output.OutputLine(r.getFormatters().FormatResultDetail(payload.Results[0]))
		return nil
	}

	r.output.OutputLine(r.getFormatters().FormatResultsList(payload.Results))
	return nil
}

// Usage returns the usage string
func (r *ResultsCommand) Usage() string {
	return "results [operation-id]"
}

// Description returns the command description
func (r *ResultsCommand) Description() string {
	return "List recorded probe results, optionally for one operation"
}

// Completions returns possible completions
func (r *ResultsCommand) Completions(input string) []string {
	return r.getOperationCompletions()
}

// Aliases returns command aliases
func (r *ResultsCommand) Aliases() []string {
	return []string{}
}
