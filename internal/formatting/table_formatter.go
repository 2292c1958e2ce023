package formatting

import (
	"fmt"
	"os"

	"assay/internal/api"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatOperationsList formats an operation list as a table
func (f *TableFormatter) FormatOperationsList(ops []api.Operation) string {
	if len(ops) == 0 {
		return f.formatEmptyMessage("No operations in the catalog")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"ID", "CATEGORY", "RISK", "CONFIDENCE", "DESCRIPTION"})
	for _, op := range ops {
		confidence := "-"
		if op.Signature != nil {
			confidence = string(op.Signature.Confidence)
		}
		desc := op.Description
		if desc == "" {
			desc = op.Label
		}
		t.AppendRow(table.Row{op.ID, categoryPath(op), f.riskCell(op.RiskLevel), confidence, truncateCell(desc)})
	}
	return t.Render()
}

// FormatOperationDetail formats detailed operation information as tables
func (f *TableFormatter) FormatOperationDetail(op api.Operation) string {
	t := f.createTable()
	t.AppendHeader(table.Row{"PROPERTY", "VALUE"})
	t.AppendRow(table.Row{"id", op.ID})
	t.AppendRow(table.Row{"label", op.Label})
	t.AppendRow(table.Row{"category", categoryPath(op)})
	t.AppendRow(table.Row{"risk", f.riskCell(op.RiskLevel)})
	if op.Description != "" {
		t.AppendRow(table.Row{"description", op.Description})
	}
	out := t.Render()

	if op.Signature == nil {
		return out
	}

	params := f.createTable()
	params.AppendHeader(table.Row{"PARAMETER", "TYPE", "REQUIRED", "SOURCE", "DESCRIPTION"})
	for _, param := range op.Signature.Parameters {
		required := ""
		if param.Required {
			required = "yes"
		}
		params.AppendRow(table.Row{param.Name, param.Type, required, param.Source, truncateCell(param.Description)})
	}
	return out + fmt.Sprintf("\nSignature (confidence: %s):\n", op.Signature.Confidence) + params.Render()
}

// FormatResultsList formats recorded probe results as a table
func (f *TableFormatter) FormatResultsList(results []api.TestResult) string {
	if len(results) == 0 {
		return f.formatEmptyMessage("No probe results recorded")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"ID", "OPERATION", "OUTCOME", "DURATION", "TIMESTAMP"})
	for _, result := range results {
		t.AppendRow(table.Row{
			shortID(result.ID),
			result.OperationID,
			outcomeWord(result.Outcome),
			fmt.Sprintf("%dms", result.Outcome.DurationMs),
			result.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	return t.Render()
}

// FormatResultDetail formats a single probe record as a key-value table
func (f *TableFormatter) FormatResultDetail(result api.TestResult) string {
	t := f.createTable()
	t.AppendHeader(table.Row{"PROPERTY", "VALUE"})
	t.AppendRow(table.Row{"id", result.ID})
	t.AppendRow(table.Row{"operation", result.OperationID})
	t.AppendRow(table.Row{"outcome", outcomeWord(result.Outcome)})
	t.AppendRow(table.Row{"duration", fmt.Sprintf("%dms", result.Outcome.DurationMs)})
	if result.Outcome.Error != nil {
		t.AppendRow(table.Row{"error", fmt.Sprintf("[%s] %s", result.Outcome.Error.Kind, result.Outcome.Error.Message)})
	}
	if result.Notes != "" {
		t.AppendRow(table.Row{"notes", result.Notes})
	}
	t.AppendRow(table.Row{"timestamp", result.Timestamp.Format("2006-01-02 15:04:05")})
	return t.Render()
}

// FormatEntriesList formats manual signature entries as a table
func (f *TableFormatter) FormatEntriesList(entries []api.ManualEntry) string {
	if len(entries) == 0 {
		return f.formatEmptyMessage("No manual entries")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"OPERATION", "PARAMETER", "TYPE", "REQUIRED", "DESCRIPTION"})
	for _, entry := range entries {
		required := ""
		if entry.Required {
			required = "yes"
		}
		t.AppendRow(table.Row{entry.OperationID, entry.Parameter, entry.Type, required, truncateCell(entry.Description)})
	}
	return t.Render()
}

// FormatData formats generic data using table logic
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatObjectData(d)
	case []interface{}:
		return f.formatArrayData(d)
	case string:
		fmt.Println(d)
	default:
		fmt.Printf("%v\n", d)
	}
	return nil
}

// FindOperation finds an operation by id in the cache
func (f *TableFormatter) FindOperation(ops []api.Operation, id string) *api.Operation {
	return findOperationByID(ops, id)
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

// riskCell renders a risk level, colored when color output is enabled
func (f *TableFormatter) riskCell(risk api.RiskLevel) string {
	if !f.options.Color {
		return string(risk)
	}
	switch risk {
	case api.RiskDestructive:
		return text.FgRed.Sprint(risk)
	case api.RiskModerate:
		return text.FgYellow.Sprint(risk)
	default:
		return text.FgGreen.Sprint(risk)
	}
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(message string) string {
	if f.options.Color {
		return text.FgYellow.Sprint(message)
	}
	return message
}

// truncateCell shortens long cell values to keep tables readable
func truncateCell(s string) string {
	if len(s) > 100 {
		return s[:97] + "..."
	}
	return s
}

// formatObjectData formats object data as key-value pairs
func (f *TableFormatter) formatObjectData(data map[string]interface{}) error {
	t := f.createTable()
	t.SetOutputMirror(os.Stdout)

	t.AppendHeader(table.Row{"KEY", "VALUE"})
	for key, value := range data {
		t.AppendRow(table.Row{key, truncateCell(fmt.Sprintf("%v", value))})
	}

	t.Render()
	return nil
}

// formatArrayData formats array data as a simple numbered list
func (f *TableFormatter) formatArrayData(data []interface{}) error {
	if len(data) == 0 {
		fmt.Println(f.formatEmptyMessage("No items found"))
		return nil
	}

	for i, item := range data {
		fmt.Printf("  %d. %v\n", i+1, item)
	}
	fmt.Printf("\nTotal: %d items\n", len(data))
	return nil
}
