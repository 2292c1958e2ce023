package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
)

// unwantedColumnsByResourceType defines columns that should be excluded from
// table display in non-wide mode for each resource type. This keeps list
// views clean and focused on the most useful information.
//
// Exclusion rationale for operations:
//   - preconditions, subcategory, discoveredAt: Detail fields, use `assay describe <id>` for full info
//   - source: Provenance detail, visible in wide mode
//
// Exclusion rationale for results:
//   - args, notes: Can be long, use `assay results <id>` for the full record
var unwantedColumnsByResourceType = map[string][]string{
	"operations": {
		"preconditions", "subcategory", "discoveredAt", "source",
	},
	"results": {
		"args", "notes",
	},
	"entries": {
		"examples", "rules", "notes", "default", "createdAt",
	},
}

// filterUnwantedColumns filters out columns that should not be displayed in table view.
// The comparison is case-insensitive to handle JSON field name variations.
func filterUnwantedColumns(columns []string, unwanted []string) []string {
	filtered := make([]string, 0, len(columns))
	for _, col := range columns {
		isUnwanted := false
		for _, u := range unwanted {
			if strings.EqualFold(col, u) {
				isUnwanted = true
				break
			}
		}
		if !isUnwanted {
			filtered = append(filtered, col)
		}
	}
	return filtered
}

// TableFormatter handles table creation and optimization for CLI output.
// It provides intelligent formatting for the data structures that come out
// of the registry, automatically optimizing column layouts and adapting the
// display to the detected resource type. The formatter handles both simple
// arrays and the detail payloads for single operations, probe outcomes, and
// validation verdicts.
type TableFormatter struct {
	// options contains formatting preferences and execution settings
	options RunnerOptions
	// builder provides cell-level formatting utilities
	builder *TableBuilder
	// out receives rendered tables
	out io.Writer
}

// NewTableFormatter creates a new table formatter writing to stdout.
func NewTableFormatter(options RunnerOptions) *TableFormatter {
	return NewTableFormatterWithWriter(options, os.Stdout)
}

// NewTableFormatterWithWriter creates a new table formatter with the
// specified options, writing to the given writer.
func NewTableFormatterWithWriter(options RunnerOptions, out io.Writer) *TableFormatter {
	return &TableFormatter{
		options: options,
		builder: NewTableBuilder(),
		out:     out,
	}
}

// FormatData formats data according to its type and structure.
// It intelligently handles different data types including objects, arrays,
// and simple values, applying the most appropriate formatting strategy
// for optimal readability and information density.
func (f *TableFormatter) FormatData(data interface{}) error {
	switch d := data.(type) {
	case map[string]interface{}:
		return f.formatTableFromObject(d)
	case []interface{}:
		return f.formatTableFromArray(d)
	default:
		// Simple value, just print it
		fmt.Fprintf(f.out, "%v\n", data)
		return nil
	}
}

// formatTableFromObject handles object data that might contain arrays.
// Detail payloads get their specialized layouts first, before any embedded
// top-level array pulls the formatting toward a plain list. Wrapper objects
// like {"operations": [...], "total": N} render the array as a table, and
// everything else falls back to key-value pairs.
func (f *TableFormatter) formatTableFromObject(data map[string]interface{}) error {
	if f.isValidationData(data) {
		return f.formatValidationDetails(data)
	}
	if f.isProbeRecordData(data) {
		return f.formatProbeRecordDetails(data)
	}
	if f.isOutcomeData(data) {
		return f.formatOutcomeDetails(data)
	}
	if f.isDocsReportData(data) {
		return f.formatDocsReportDetails(data)
	}
	if f.isOperationData(data) {
		return f.formatOperationDetails(data)
	}

	arrayKey := f.findArrayKey(data)
	if arrayKey != "" {
		value := data[arrayKey]
		// Handle nil as empty array
		if value == nil {
			return f.formatEmptyList(arrayKey)
		}
		if arr, ok := value.([]interface{}); ok {
			if err := f.formatTableFromArray(arr); err != nil {
				return err
			}
			f.printFooterMessages(data)
			return nil
		}
	}

	// No array found, format as key-value pairs
	return f.formatKeyValueTable(data)
}

// printFooterMessages prints payload warnings after the table so they are
// not lost below a long listing.
func (f *TableFormatter) printFooterMessages(data map[string]interface{}) {
	if f.options.Format == OutputFormatJSON || f.options.Format == OutputFormatYAML {
		return
	}

	warnings, ok := data["warnings"].([]interface{})
	if !ok || len(warnings) == 0 {
		return
	}

	fmt.Fprintln(f.out, "\nWarnings:")
	for _, warning := range warnings {
		fmt.Fprintf(f.out, "  %v\n", warning)
	}
}

// findArrayKey looks for common array keys in wrapped objects.
// Tool responses wrap arrays in objects with predictable key names; this
// function identifies those patterns to extract the relevant data. It also
// handles nil/null values which represent empty arrays.
func (f *TableFormatter) findArrayKey(data map[string]interface{}) string {
	arrayKeys := []string{"operations", "matches", "results", "entries", "artifacts", "sideEffects", "errors", "items"}

	for _, key := range arrayKeys {
		if value, exists := data[key]; exists {
			if _, isArray := value.([]interface{}); isArray {
				return key
			}
			// Treat nil as an empty array
			if value == nil {
				return key
			}
		}
	}
	return ""
}

// formatTableFromArray creates a kubectl-style plain table from an array of objects.
// It automatically optimizes column selection, sorts data for better readability,
// and uses clean columnar output without box-drawing characters.
func (f *TableFormatter) formatTableFromArray(data []interface{}) error {
	if len(data) == 0 {
		fmt.Fprintln(f.out, "No items found")
		return nil
	}

	// Arrays of simple values get a plain list instead of a table
	if _, ok := data[0].(map[string]interface{}); !ok {
		return f.formatSimpleList(data)
	}

	columns := f.optimizeColumns(data)

	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders(columns)
	tw.SetNoHeaders(f.options.NoHeaders)

	// Add rows with formatting, sorted by the identifying field if present
	sortedData := f.builder.SortDataByName(data, columns)
	for _, item := range sortedData {
		if itemMap, ok := item.(map[string]interface{}); ok {
			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = f.builder.FormatCellValuePlain(col, itemMap[col], itemMap)
			}
			tw.AppendRow(row)
		}
	}

	tw.Render()
	return nil
}

// isWideMode returns true if the formatter is configured for wide output.
func (f *TableFormatter) isWideMode() bool {
	return f.options.Format == OutputFormatWide
}

// optimizeColumns determines the best columns to show based on the data type.
// It analyzes the data structure and selects the most relevant columns for
// display, prioritizing key fields and limiting the total number of columns
// to prevent layout issues. Different resource types get specialized column
// selection logic. When wide mode is enabled (-o wide), additional columns
// are included.
func (f *TableFormatter) optimizeColumns(objects []interface{}) []string {
	// Extract all available keys (deduplicated)
	keySet := make(map[string]bool)
	for _, obj := range objects {
		castObj, ok := obj.(map[string]interface{})
		if !ok {
			continue
		}
		for key := range castObj {
			keySet[key] = true
		}
	}
	var allKeys []string
	for key := range keySet {
		allKeys = append(allKeys, key)
	}
	sort.Strings(allKeys)

	sample := objects[0].(map[string]interface{})

	// Always prioritize identifying fields first
	nameFields := []string{"id", "operationId", "name", "label", "parameter"}
	var columns []string

	for _, nameField := range nameFields {
		if f.keyExists(sample, nameField) {
			columns = append(columns, nameField)
			break // Only add one primary identifier
		}
	}

	// Priority columns per resource type (excluding identifiers already added)
	priorityColumns := map[string][]string{
		"operations":       {"category", "riskLevel", "signature", "description"},
		"results":          {"operationId", "outcome", "timestamp"},
		"entries":          {"parameter", "type", "required", "description"},
		"validationErrors": {"message"},
		"sideEffects":      {"type", "resource", "description", "timestamp"},
		"generic":          {"status", "type", "description"},
	}

	// Extended columns for wide mode (-o wide)
	wideColumns := map[string][]string{
		"operations":  {"subcategory", "source", "discoveredAt"},
		"results":     {"args", "notes"},
		"entries":     {"rules", "modifiedAt"},
		"sideEffects": {},
		"generic":     {"metadata"},
	}

	resourceType := f.detectResourceType(sample)
	if priorities, exists := priorityColumns[resourceType]; exists {
		for _, col := range priorities {
			if f.keyExists(sample, col) && !slices.Contains(columns, col) {
				columns = append(columns, col)
			}
		}
	}

	if f.isWideMode() {
		if wideCols, exists := wideColumns[resourceType]; exists {
			for _, col := range wideCols {
				if f.keyExists(sample, col) && !slices.Contains(columns, col) {
					columns = append(columns, col)
				}
			}
		}
	}

	// Limit columns to prevent wrapping (in non-wide mode)
	var maxColumns int
	if f.isWideMode() {
		maxColumns = 10
	} else {
		switch resourceType {
		case "operations":
			maxColumns = 5 // id, category, riskLevel, signature, description
		case "results":
			maxColumns = 4 // id, operationId, outcome, timestamp
		case "entries":
			maxColumns = 5 // operationId, parameter, type, required, description
		default:
			maxColumns = 6
		}
	}

	// Add remaining columns alphabetically if we have space
	if len(columns) < maxColumns {
		remaining := f.getRemainingKeys(allKeys, columns)

		// Filter out unwanted columns based on resource type (in non-wide mode only)
		filteredRemaining := remaining
		if !f.isWideMode() {
			if unwantedColumns, exists := unwantedColumnsByResourceType[resourceType]; exists {
				filteredRemaining = filterUnwantedColumns(remaining, unwantedColumns)
			}
		}

		spaceLeft := maxColumns - len(columns)
		if spaceLeft > 0 && len(filteredRemaining) > 0 {
			addCount := min(spaceLeft, len(filteredRemaining))
			columns = append(columns, filteredRemaining[:addCount]...)
		}
	}

	return columns
}

// detectResourceType analyzes a sample object to determine what type of
// resource it represents. This drives the column selection and formatting
// for the different registry payloads.
func (f *TableFormatter) detectResourceType(sample map[string]interface{}) string {
	// Probe results carry an outcome object per row
	if f.keyExists(sample, "operationId") && f.keyExists(sample, "outcome") {
		return "results"
	}
	// Manual research notes are keyed by operation and parameter
	if f.keyExists(sample, "operationId") && f.keyExists(sample, "parameter") {
		return "entries"
	}
	// Failed validation checks pair a parameter with a message
	if f.keyExists(sample, "parameter") && f.keyExists(sample, "message") {
		return "validationErrors"
	}
	// Catalog operations always carry an id and a risk classification
	if f.keyExists(sample, "id") && f.keyExists(sample, "riskLevel") {
		return "operations"
	}
	// Observed side effects
	if f.keyExists(sample, "type") && f.keyExists(sample, "timestamp") && f.keyExists(sample, "description") {
		return "sideEffects"
	}

	return "generic"
}

// Detail payload detection

// isOperationData checks if the data represents a single catalog operation.
func (f *TableFormatter) isOperationData(data map[string]interface{}) bool {
	return f.keyExists(data, "id") && f.keyExists(data, "riskLevel")
}

// isValidationData checks if the data is a validation verdict.
func (f *TableFormatter) isValidationData(data map[string]interface{}) bool {
	_, hasValid := data["valid"].(bool)
	return hasValid
}

// isOutcomeData checks if the data is a bare probe outcome.
func (f *TableFormatter) isOutcomeData(data map[string]interface{}) bool {
	_, hasSuccess := data["success"].(bool)
	return hasSuccess && f.keyExists(data, "durationMs")
}

// isProbeRecordData checks if the data is a recorded probe result with its
// outcome nested inside.
func (f *TableFormatter) isProbeRecordData(data map[string]interface{}) bool {
	if !f.keyExists(data, "operationId") {
		return false
	}
	_, ok := data["outcome"].(map[string]interface{})
	return ok
}

// isDocsReportData checks if the data is a documentation generation report.
func (f *TableFormatter) isDocsReportData(data map[string]interface{}) bool {
	return f.keyExists(data, "artifacts") && f.keyExists(data, "qualityScore")
}

// formatOperationDetails provides a clean, readable format for one operation.
// It shows the basic fields, then the researched signature parameters in
// their own table.
func (f *TableFormatter) formatOperationDetails(data map[string]interface{}) error {
	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	basicFields := []string{"id", "label", "category", "subcategory", "riskLevel", "description", "source", "discoveredAt"}
	for _, field := range basicFields {
		if value, exists := data[field]; exists && value != nil {
			tw.AppendRow([]string{field, f.builder.FormatCellValuePlain(field, value, data)})
		}
	}

	tw.Render()

	if preconditions, ok := data["preconditions"].([]interface{}); ok && len(preconditions) > 0 {
		fmt.Fprintln(f.out, "\nPreconditions:")
		for _, pre := range preconditions {
			fmt.Fprintf(f.out, "  %v\n", pre)
		}
	}

	f.displaySignature(data)
	return nil
}

// displaySignature shows the researched signature in a readable format,
// one row per parameter with source and requirement status.
func (f *TableFormatter) displaySignature(data map[string]interface{}) {
	signature, ok := data["signature"].(map[string]interface{})
	if !ok {
		return
	}

	confidence := ""
	if c, ok := signature["confidence"].(string); ok && c != "" {
		confidence = fmt.Sprintf(" (confidence: %s)", strings.ToLower(c))
	}
	fmt.Fprintf(f.out, "\nSignature%s:\n", confidence)

	params, ok := signature["parameters"].([]interface{})
	if !ok || len(params) == 0 {
		fmt.Fprintln(f.out, "  No parameters")
		return
	}

	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PARAMETER", "TYPE", "REQUIRED", "SOURCE", "DESCRIPTION"})
	tw.SetNoHeaders(f.options.NoHeaders)

	for _, param := range params {
		paramMap, ok := param.(map[string]interface{})
		if !ok {
			continue
		}

		name := fmt.Sprintf("%v", paramMap["name"])
		paramType := "unknown"
		if typ, exists := paramMap["type"]; exists && typ != nil {
			paramType = fmt.Sprintf("%v", typ)
		}

		required := "No"
		if req, ok := paramMap["required"].(bool); ok && req {
			required = "Yes"
		}

		source := "-"
		if src, exists := paramMap["source"]; exists && src != nil {
			source = fmt.Sprintf("%v", src)
		}

		description := "-"
		if desc, exists := paramMap["description"]; exists && desc != nil {
			description = fmt.Sprintf("%v", desc)
			if len(description) > 40 {
				description = description[:37] + "..."
			}
		}
		// Show default value if available
		if def, exists := paramMap["default"]; exists && def != nil {
			description = description + fmt.Sprintf(" (default: %v)", def)
		}

		tw.AppendRow([]string{name, paramType, required, source, description})
	}

	tw.Render()
}

// formatValidationDetails formats a validation verdict. A clean check is a
// single line; failures list every failed check in a table.
func (f *TableFormatter) formatValidationDetails(data map[string]interface{}) error {
	valid, _ := data["valid"].(bool)
	if valid {
		fmt.Fprintln(f.out, "Arguments valid")
		return nil
	}

	fmt.Fprintln(f.out, "Arguments invalid")

	errors, ok := data["errors"].([]interface{})
	if !ok || len(errors) == 0 {
		return nil
	}
	fmt.Fprintln(f.out)

	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PARAMETER", "MESSAGE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	for _, check := range errors {
		checkMap, ok := check.(map[string]interface{})
		if !ok {
			continue
		}
		tw.AppendRow([]string{
			fmt.Sprintf("%v", checkMap["parameter"]),
			fmt.Sprintf("%v", checkMap["message"]),
		})
	}

	tw.Render()
	return nil
}

// formatOutcomeDetails formats a probe outcome: headline verdict, summary
// table, then observed side effects and warnings.
func (f *TableFormatter) formatOutcomeDetails(data map[string]interface{}) error {
	success, _ := data["success"].(bool)
	if success {
		fmt.Fprintln(f.out, "Probe succeeded")
	} else {
		fmt.Fprintln(f.out, "Probe failed")
	}
	fmt.Fprintln(f.out)

	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	tw.AppendRow([]string{"duration", f.builder.FormatCellValuePlain("durationMs", data["durationMs"], data)})

	if errObj, ok := data["error"].(map[string]interface{}); ok {
		if kind, exists := errObj["kind"]; exists && kind != nil {
			tw.AppendRow([]string{"error kind", fmt.Sprintf("%v", kind)})
		}
		if message, exists := errObj["message"]; exists && message != nil {
			tw.AppendRow([]string{"error", fmt.Sprintf("%v", message)})
		}
	}

	if result, exists := data["result"]; exists && result != nil {
		tw.AppendRow([]string{"result", f.builder.FormatCellValuePlain("result", result, data)})
	}

	tw.Render()

	f.displaySideEffects(data)

	if warnings, ok := data["warnings"].([]interface{}); ok && len(warnings) > 0 {
		fmt.Fprintln(f.out, "\nWarnings:")
		for _, warning := range warnings {
			fmt.Fprintf(f.out, "  %v\n", warning)
		}
	}

	return nil
}

// displaySideEffects shows observed side effects in a table.
func (f *TableFormatter) displaySideEffects(data map[string]interface{}) {
	effects, ok := data["sideEffects"].([]interface{})
	if !ok || len(effects) == 0 {
		return
	}

	fmt.Fprintln(f.out, "\nSide Effects:")

	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"TYPE", "RESOURCE", "DESCRIPTION"})
	tw.SetNoHeaders(f.options.NoHeaders)

	for _, effect := range effects {
		effectMap, ok := effect.(map[string]interface{})
		if !ok {
			continue
		}

		resource := "-"
		if res, exists := effectMap["resource"]; exists && res != nil {
			resource = fmt.Sprintf("%v", res)
		}

		tw.AppendRow([]string{
			fmt.Sprintf("%v", effectMap["type"]),
			resource,
			fmt.Sprintf("%v", effectMap["description"]),
		})
	}

	tw.Render()
}

// formatProbeRecordDetails formats one recorded probe result: the record
// fields first, then the nested outcome with its side effects.
func (f *TableFormatter) formatProbeRecordDetails(data map[string]interface{}) error {
	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	recordFields := []string{"id", "operationId", "timestamp", "args", "notes"}
	for _, field := range recordFields {
		if value, exists := data[field]; exists && value != nil {
			tw.AppendRow([]string{field, f.builder.FormatCellValuePlain(field, value, data)})
		}
	}

	tw.Render()

	if outcome, ok := data["outcome"].(map[string]interface{}); ok {
		fmt.Fprintln(f.out)
		return f.formatOutcomeDetails(outcome)
	}
	return nil
}

// formatDocsReportDetails formats a documentation generation report:
// summary fields, the exported artifacts, then any warnings.
func (f *TableFormatter) formatDocsReportDetails(data map[string]interface{}) error {
	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	summaryFields := []string{"version", "commandCount", "testedCount", "qualityScore"}
	for _, field := range summaryFields {
		if value, exists := data[field]; exists && value != nil {
			tw.AppendRow([]string{field, fmt.Sprintf("%v", value)})
		}
	}

	tw.Render()

	if artifacts, ok := data["artifacts"].([]interface{}); ok && len(artifacts) > 0 {
		fmt.Fprintln(f.out, "\nArtifacts:")
		for _, artifact := range artifacts {
			fmt.Fprintf(f.out, "  %v\n", artifact)
		}
	}

	f.printFooterMessages(data)
	return nil
}

// formatKeyValueTable formats an object as key-value pairs.
// This is used for single objects or data that doesn't fit the known
// resource shapes. It provides a clean property-value layout.
func (f *TableFormatter) formatKeyValueTable(data map[string]interface{}) error {
	tw := NewPlainTableWriter(f.out)
	tw.SetHeaders([]string{"PROPERTY", "VALUE"})
	tw.SetNoHeaders(f.options.NoHeaders)

	// Sort keys for consistent output
	var keys []string
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := f.builder.FormatCellValuePlain(key, data[key], data)
		tw.AppendRow([]string{key, value})
	}

	tw.Render()
	return nil
}

// formatSimpleList formats an array of simple values.
// This handles arrays that contain primitive values rather than objects,
// displaying each value on a separate line.
func (f *TableFormatter) formatSimpleList(data []interface{}) error {
	for _, item := range data {
		fmt.Fprintln(f.out, item)
	}
	return nil
}

// formatEmptyList displays a message for empty resource lists.
// This provides a kubectl-style "No X found" message instead of
// showing a property/value table with metadata.
func (f *TableFormatter) formatEmptyList(resourceKey string) error {
	readable := f.keyToReadableName(resourceKey)
	fmt.Fprintf(f.out, "No %s found\n", readable)
	return nil
}

// keyToReadableName converts a camelCase or singular key to a readable plural name.
func (f *TableFormatter) keyToReadableName(key string) string {
	mappings := map[string]string{
		"operations":  "operations",
		"matches":     "matches",
		"results":     "results",
		"entries":     "notes",
		"artifacts":   "artifacts",
		"sideEffects": "side effects",
		"errors":      "failed checks",
		"items":       "items",
	}

	if readable, exists := mappings[key]; exists {
		return readable
	}
	return key
}

// Helper methods

// keyExists checks if a key exists in a map.
func (f *TableFormatter) keyExists(data map[string]interface{}, key string) bool {
	_, exists := data[key]
	return exists
}

// getRemainingKeys returns keys that haven't been used yet.
// This helps in column optimization by identifying available but unused columns.
func (f *TableFormatter) getRemainingKeys(allKeys, usedKeys []string) []string {
	usedSet := make(map[string]bool)
	for _, key := range usedKeys {
		usedSet[key] = true
	}

	var remaining []string
	for _, key := range allKeys {
		if !usedSet[key] {
			remaining = append(remaining, key)
		}
	}
	return remaining
}
