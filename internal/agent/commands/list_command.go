package commands

import (
	"context"
	"fmt"
	"strings"

	"assay/internal/api"
)

// ListCommand lists catalog operations or recorded probe results
type ListCommand struct {
	*BaseCommand
}

// NewListCommand creates a new list command
func NewListCommand(session SessionInterface, output OutputLogger) *ListCommand {
	return &ListCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute lists operations or results. With no target it defaults to operations.
func (l *ListCommand) Execute(ctx context.Context, args []string) error {
	target := "operations"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}

	switch target {
	case "operations":
		return l.listOperations(ctx)
	case "results":
		return l.listResults(ctx)
	default:
		return l.validateTarget(target, []string{"operations", "results"})
	}
}

// listOperations refreshes the cache and lists all catalog operations
func (l *ListCommand) listOperations(ctx context.Context) error {
	if err := l.session.RefreshOperations(ctx); err != nil {
		l.output.Error("Failed to refresh operation cache: %v", err)
		// Continue with the cached operations if refresh fails
	}

	operations := l.session.Operations()
	l.output.OutputLine(l.getFormatters().FormatOperationsList(operations))
	return nil
}

// listResults lists all recorded probe results
func (l *ListCommand) listResults(ctx context.Context) error {
	result, err := l.session.CallTool(ctx, "assay_result_list", map[string]interface{}{})
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	if result.IsError {
		l.output.Error("Error listing results: %s", firstContentText(result))
		return nil
	}

	var payload struct {
		Results []api.TestResult `json:"results"`
	}
	if err := decodeFirstContent(result, &payload); err != nil {
		return fmt.Errorf("failed to decode result list: %w", err)
	}

	l.output.OutputLine(l.getFormatters().FormatResultsList(payload.Results))
	return nil
}

// Usage returns the usage string
func (l *ListCommand) Usage() string {
	return "list [operations|results]"
}

// Description returns the command description
func (l *ListCommand) Description() string {
	return "List catalog operations or recorded probe results"
}

// Completions returns possible completions
func (l *ListCommand) Completions(input string) []string {
	return l.getCompletionsForTargets([]string{"operations", "results"})
}

// Aliases returns command aliases
func (l *ListCommand) Aliases() []string {
	return []string{"ls"}
}
