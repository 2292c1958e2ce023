package commands

import (
	"context"
	"fmt"
	"strings"

	"assay/internal/api"
)

// ValidateCommand checks proposed arguments against an operation's signature
// without executing anything
type ValidateCommand struct {
	*BaseCommand
}

// NewValidateCommand creates a new validate command
func NewValidateCommand(session SessionInterface, output OutputLogger) *ValidateCommand {
	return &ValidateCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute validates key=value arguments against the operation's merged
// signature and reports every failed check.
func (v *ValidateCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := v.parseArgs(args, 1, v.Usage())
	if err != nil {
		return err
	}
	operationID := parsed[0]
	proposed := parseKeyValueArgsToInterfaceMap(parsed[1:], v.output)

	result, err := v.session.CallTool(ctx, "assay_operation_validate", map[string]interface{}{
		"operationId": operationID,
		"args":        proposed,
	})
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if result.IsError {
		v.output.Error("%s", firstContentText(result))
		return nil
	}

	var verdict api.ValidationResult
	if err := decodeFirstContent(result, &verdict); err != nil {
		return fmt.Errorf("failed to decode validation result: %w", err)
	}

	if verdict.Valid {
		v.output.Success("Arguments are valid for %s", operationID)
		return nil
	}

	v.output.OutputLine("Arguments are invalid for %s:", operationID)
	for _, check := range verdict.Errors {
		v.output.OutputLine("  - %s: %s", check.Parameter, check.Message)
	}
	return nil
}

// Usage returns the usage string
func (v *ValidateCommand) Usage() string {
	return "validate <operation-id> [param=value ...]"
}

// Description returns the command description
func (v *ValidateCommand) Description() string {
	return "Check arguments against an operation's signature without executing"
}

// Completions returns possible completions
func (v *ValidateCommand) Completions(input string) []string {
	parts := strings.Fields(input)
	if len(parts) <= 1 {
		return v.getOperationCompletions()
	}

	// Complete parameters for the named operation
	var completions []string
	for _, name := range getParameterNames(v.findOperation(parts[1])) {
		completions = append(completions, name+"=")
	}
	return completions
}

// Aliases returns command aliases
func (v *ValidateCommand) Aliases() []string {
	return []string{}
}
