package formatting

import (
	"encoding/json"
	"fmt"
	"strings"

	"assay/internal/api"
)

// PrettyJSON formats any value as indented JSON for human-readable display.
// It handles marshaling errors gracefully by falling back to fmt.Sprintf.
//
// Parameters:
//   - v: The value to format as JSON (any type)
//
// Returns:
//   - string: Formatted JSON with 2-space indentation, or string representation on error
func PrettyJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// findOperationByID looks up an operation by id.
// Uses index-based iteration for safe pointer handling.
func findOperationByID(ops []api.Operation, id string) *api.Operation {
	for i := range ops {
		if ops[i].ID == id {
			return &ops[i]
		}
	}
	return nil
}

// categoryPath joins category and subcategory for display.
func categoryPath(op api.Operation) string {
	if op.Subcategory != "" {
		return op.Category + "/" + op.Subcategory
	}
	return op.Category
}

// formatParameterLine renders one signature parameter as a single line.
// Example: "path (string, required): target path [manual]"
func formatParameterLine(param api.Parameter) string {
	attrs := string(param.Type)
	if param.Required {
		attrs += ", required"
	}
	line := fmt.Sprintf("%s (%s)", param.Name, attrs)
	if param.Description != "" {
		line += ": " + param.Description
	}
	if param.Default != nil {
		line += fmt.Sprintf(" (default: %v)", param.Default)
	}
	return fmt.Sprintf("%s [%s]", line, param.Source)
}

// outcomeWord reduces an execution outcome to a single status word.
func outcomeWord(outcome api.ExecutionOutcome) string {
	if outcome.Success {
		return "success"
	}
	if outcome.Error != nil {
		return strings.ToLower(string(outcome.Error.Kind))
	}
	return "failure"
}

// shortID truncates a uuid to its first segment for compact listings.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// indentBlock indents every line of a multi-line string by two spaces.
func indentBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
