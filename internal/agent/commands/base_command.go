package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"assay/internal/api"
)

// SessionInterface defines the interface that commands need from the session.
// This interface abstracts the session functionality required by commands,
// enabling them to access cached operations and call provider tools without
// depending directly on the concrete session implementation.
type SessionInterface interface {
	// Operations returns the currently cached catalog operations
	Operations() []api.Operation

	// RefreshOperations reloads the operation cache from the catalog
	RefreshOperations(ctx context.Context) error

	// CallTool executes a provider tool by name
	CallTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error)

	// GetFormatters returns the formatter that will be cast by commands
	GetFormatters() interface{}
}

// FormatterInterface defines the interface for formatting catalog data.
// This provides a clean abstraction for commands to render operations,
// probe results, and manual entries consistently.
type FormatterInterface interface {
	// List formatting methods for displaying collections
	FormatOperationsList(operations []api.Operation) string
	FormatResultsList(results []api.TestResult) string
	FormatEntriesList(entries []api.ManualEntry) string

	// Detail formatting methods for individual items
	FormatOperationDetail(operation api.Operation) string
	FormatResultDetail(result api.TestResult) string

	// Search utility for finding operations by identifier
	FindOperation(operations []api.Operation, id string) *api.Operation
}

// BaseCommand provides common functionality for all REPL commands.
// It encapsulates shared dependencies and utility methods that most
// commands need, reducing code duplication and ensuring consistent
// behavior across the command system.
type BaseCommand struct {
	session SessionInterface // Session for provider tool calls
	output  OutputLogger     // Logger for user-facing output
}

// NewBaseCommand creates a new base command with the specified dependencies.
//
// Args:
//   - session: session interface for operations and tool calls
//   - output: Logger interface for user-facing output
func NewBaseCommand(session SessionInterface, output OutputLogger) *BaseCommand {
	return &BaseCommand{
		session: session,
		output:  output,
	}
}

// parseArgs parses and validates command arguments against minimum requirements.
//
// Args:
//   - args: Command arguments to validate
//   - minArgs: Minimum number of arguments required
//   - usage: Usage string to display on validation failure
func (b *BaseCommand) parseArgs(args []string, minArgs int, usage string) ([]string, error) {
	if len(args) < minArgs {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	return args, nil
}

// joinArgsFrom joins arguments starting from a specific index into a single string.
// This is useful for commands that accept free-form text, such as search queries.
func (b *BaseCommand) joinArgsFrom(args []string, index int) string {
	if index >= len(args) {
		return ""
	}
	return strings.Join(args[index:], " ")
}

// validateTarget validates that a target type is one of the allowed values.
func (b *BaseCommand) validateTarget(target string, validTargets []string) error {
	for _, valid := range validTargets {
		if strings.EqualFold(target, valid) {
			return nil
		}
	}
	return fmt.Errorf("unknown target: %s. Valid targets: %s", target, strings.Join(validTargets, ", "))
}

// getCompletionsForTargets returns completion suggestions for valid targets.
func (b *BaseCommand) getCompletionsForTargets(targets []string) []string {
	var completions []string
	for _, target := range targets {
		completions = append(completions, target)
	}
	return completions
}

// getOperationCompletions returns operation ID completions from the session cache.
func (b *BaseCommand) getOperationCompletions() []string {
	operations := b.session.Operations()
	var completions []string
	for _, op := range operations {
		completions = append(completions, op.ID)
	}
	return completions
}

// getFormatters returns the formatters interface cast to the concrete type.
func (b *BaseCommand) getFormatters() FormatterInterface {
	return b.session.GetFormatters().(FormatterInterface)
}

// findOperation looks up an operation in the session cache by ID.
// Uses index-based iteration for safe pointer handling across Go versions.
func (b *BaseCommand) findOperation(id string) *api.Operation {
	operations := b.session.Operations()
	for i := range operations {
		if operations[i].ID == id {
			return &operations[i]
		}
	}
	return nil
}

// getParameterNames returns an operation's signature parameter names, sorted
// alphabetically. Returns nil when the operation has no researched signature.
func getParameterNames(op *api.Operation) []string {
	if op == nil || op.Signature == nil || len(op.Signature.Parameters) == 0 {
		return nil
	}

	var names []string
	for _, param := range op.Signature.Parameters {
		names = append(names, param.Name)
	}
	sort.Strings(names)
	return names
}

// stripQuotes removes surrounding single or double quotes from a string.
// This handles the common shell habit of quoting values.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// parseKeyValueArgsToStringMap parses arguments in key=value format into a string map.
// This is the core parsing logic shared by commands that accept key=value arguments.
// Arguments without '=' are logged as debug messages and skipped.
func parseKeyValueArgsToStringMap(args []string, output OutputLogger) map[string]string {
	params := make(map[string]string)

	for _, arg := range args {
		if !strings.Contains(arg, "=") {
			if output != nil {
				output.Debug("Ignoring argument without '=': %s", arg)
			}
			continue
		}

		parts := strings.SplitN(arg, "=", 2)
		if len(parts) == 2 {
			key := parts[0]
			value := stripQuotes(parts[1])
			params[key] = value
		}
	}

	return params
}

// parseKeyValueArgsToInterfaceMap parses arguments in key=value format into an interface map.
// This extends parseKeyValueArgsToStringMap by attempting to parse values as JSON
// for proper type coercion (arrays, objects, numbers, booleans).
func parseKeyValueArgsToInterfaceMap(args []string, output OutputLogger) map[string]interface{} {
	stringMap := parseKeyValueArgsToStringMap(args, output)
	params := make(map[string]interface{})

	for key, value := range stringMap {
		// Try to parse as JSON for complex types (arrays, objects, numbers, booleans)
		var jsonValue interface{}
		if err := json.Unmarshal([]byte(value), &jsonValue); err == nil {
			params[key] = jsonValue
		} else {
			// Use as string if not valid JSON
			params[key] = value
		}
	}

	return params
}

// decodeFirstContent re-marshals the first content entry of a tool result
// into the given target. Handlers return typed structs or generic maps; the
// JSON round trip normalizes both into the caller's type.
func decodeFirstContent(result *api.CallToolResult, target interface{}) error {
	if result == nil || len(result.Content) == 0 {
		return fmt.Errorf("empty tool result")
	}
	raw, err := json.Marshal(result.Content[0])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// firstContentText renders the first content entry as a string. Error
// results carry plain message strings; anything else falls back to %v.
func firstContentText(result *api.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if s, ok := result.Content[0].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", result.Content[0])
}
