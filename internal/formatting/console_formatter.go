package formatting

import (
	"fmt"
	"strings"

	"assay/internal/api"
)

// ConsoleFormatter provides simple console output formatting
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatOperationsList formats an operation list for console output
func (f *ConsoleFormatter) FormatOperationsList(ops []api.Operation) string {
	if len(ops) == 0 {
		return "No operations in the catalog."
	}

	var output []string
	output = append(output, fmt.Sprintf("Catalog operations (%d):", len(ops)))
	for i, op := range ops {
		desc := op.Description
		if desc == "" {
			desc = op.Label
		}
		output = append(output, fmt.Sprintf("  %d. %-28s [%s] %s", i+1, op.ID, op.RiskLevel, desc))
	}
	return strings.Join(output, "\n")
}

// FormatOperationDetail formats detailed operation information
func (f *ConsoleFormatter) FormatOperationDetail(op api.Operation) string {
	var output []string
	output = append(output, fmt.Sprintf("Operation: %s", op.ID))
	output = append(output, fmt.Sprintf("Label: %s", op.Label))
	output = append(output, fmt.Sprintf("Category: %s", categoryPath(op)))
	output = append(output, fmt.Sprintf("Risk: %s", op.RiskLevel))
	if op.Description != "" {
		output = append(output, fmt.Sprintf("Description: %s", op.Description))
	}
	if len(op.Preconditions) > 0 {
		output = append(output, "Preconditions:")
		for _, pre := range op.Preconditions {
			output = append(output, fmt.Sprintf("  - %s", pre))
		}
	}
	if op.Signature != nil {
		output = append(output, fmt.Sprintf("Signature (confidence: %s):", op.Signature.Confidence))
		for _, param := range op.Signature.Parameters {
			output = append(output, fmt.Sprintf("  - %s", formatParameterLine(param)))
		}
		if op.Signature.ReturnType != "" {
			output = append(output, fmt.Sprintf("Returns: %s", op.Signature.ReturnType))
		}
		if op.Signature.Async {
			output = append(output, "Async: yes")
		}
	}
	return strings.Join(output, "\n")
}

// FormatResultsList formats recorded probe results for console output
func (f *ConsoleFormatter) FormatResultsList(results []api.TestResult) string {
	if len(results) == 0 {
		return "No probe results recorded."
	}

	var output []string
	output = append(output, fmt.Sprintf("Recorded probes (%d):", len(results)))
	for i, result := range results {
		output = append(output, fmt.Sprintf("  %d. %-12s %-26s %-9s %s",
			i+1, shortID(result.ID), result.OperationID,
			outcomeWord(result.Outcome), result.Timestamp.Format("2006-01-02 15:04:05")))
	}
	return strings.Join(output, "\n")
}

// FormatResultDetail formats a single probe record
func (f *ConsoleFormatter) FormatResultDetail(result api.TestResult) string {
	var output []string
	output = append(output, fmt.Sprintf("Probe: %s", result.ID))
	output = append(output, fmt.Sprintf("Operation: %s", result.OperationID))
	output = append(output, fmt.Sprintf("Outcome: %s (%dms)", outcomeWord(result.Outcome), result.Outcome.DurationMs))
	if result.Outcome.Error != nil {
		output = append(output, fmt.Sprintf("Error: [%s] %s", result.Outcome.Error.Kind, result.Outcome.Error.Message))
	}
	if len(result.Args) > 0 {
		output = append(output, "Args:")
		output = append(output, indentBlock(f.prettyJSON(result.Args)))
	}
	if result.Outcome.Result != nil {
		output = append(output, "Result:")
		output = append(output, indentBlock(f.prettyJSON(result.Outcome.Result)))
	}
	if len(result.Outcome.SideEffects) > 0 {
		output = append(output, "Side effects:")
		for _, effect := range result.Outcome.SideEffects {
			line := fmt.Sprintf("  - %s: %s", effect.Type, effect.Description)
			if effect.Resource != "" {
				line += fmt.Sprintf(" (%s)", effect.Resource)
			}
			output = append(output, line)
		}
	}
	if len(result.Outcome.Warnings) > 0 {
		output = append(output, "Warnings:")
		for _, warning := range result.Outcome.Warnings {
			output = append(output, fmt.Sprintf("  - %s", warning))
		}
	}
	if result.Notes != "" {
		output = append(output, fmt.Sprintf("Notes: %s", result.Notes))
	}
	return strings.Join(output, "\n")
}

// FormatEntriesList formats manual signature entries for console output
func (f *ConsoleFormatter) FormatEntriesList(entries []api.ManualEntry) string {
	if len(entries) == 0 {
		return "No manual entries."
	}

	var output []string
	output = append(output, fmt.Sprintf("Manual entries (%d):", len(entries)))
	for i, entry := range entries {
		required := ""
		if entry.Required {
			required = " required"
		}
		output = append(output, fmt.Sprintf("  %d. %-34s %s%s",
			i+1, entry.OperationID+"/"+entry.Parameter, entry.Type, required))
	}
	return strings.Join(output, "\n")
}

// FormatData formats generic data (fallback to simple text representation)
func (f *ConsoleFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		fmt.Println(f.prettyJSON(d))
	case []interface{}:
		fmt.Println(f.prettyJSON(d))
	case string:
		fmt.Println(d)
	default:
		fmt.Printf("%v\n", d)
	}
	return nil
}

// FindOperation finds an operation by id in the cache
func (f *ConsoleFormatter) FindOperation(ops []api.Operation, id string) *api.Operation {
	return findOperationByID(ops, id)
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}

// prettyJSON formats JSON data with indentation
func (f *ConsoleFormatter) prettyJSON(v interface{}) string {
	return PrettyJSON(v)
}
