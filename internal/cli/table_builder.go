package cli

import (
	"fmt"
	"sort"
	"strings"

	pkgstrings "assay/pkg/strings"
)

// TableBuilder handles cell formatting for table display.
// It provides specialized formatting for the data shapes that come out of
// the registry: risk levels, signature confidence grades, probe outcomes,
// timestamps, and argument maps. The builder keeps cells short enough for
// a terminal while leaving identifying columns untouched.
type TableBuilder struct{}

// NewTableBuilder creates a new table builder instance.
// The builder is stateless and can be reused for multiple formatting operations.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{}
}

// FormatCellValuePlain formats individual cell values as plain text without ANSI styling.
// This is used for kubectl-style table output where we don't want color codes.
//
// Args:
//   - column: The column name/type to determine formatting rules
//   - value: The raw value to format
//   - rowContext: The full row data for context-aware formatting (may be nil)
//
// Returns:
//   - string: Formatted value as plain text
func (b *TableBuilder) FormatCellValuePlain(column string, value interface{}, rowContext map[string]interface{}) string {
	if value == nil {
		return "-"
	}

	strValue := fmt.Sprintf("%v", value)
	colLower := strings.ToLower(column)

	switch colLower {
	case "id", "operationid", "name", "label", "parameter", "version":
		return strValue
	case "risklevel", "risk":
		return b.formatRiskPlain(strValue)
	case "confidence":
		return b.formatConfidencePlain(strValue)
	case "outcome":
		return b.formatOutcomePlain(value)
	case "success":
		return b.formatSuccessPlain(value)
	case "valid":
		return b.formatValidPlain(value)
	case "required":
		return b.formatRequiredPlain(value)
	case "discoveredat", "researchedat", "createdat", "modifiedat", "timestamp", "generatedat":
		return b.formatTimestampPlain(strValue)
	case "durationms", "duration_ms":
		return b.formatDurationPlain(value)
	case "timeoutms":
		return b.formatDurationPlain(value)
	case "parameters":
		return b.formatParametersPlain(value)
	case "signature":
		return b.formatSignaturePlain(value)
	case "args":
		return b.formatArgsPlain(value)
	case "sideeffects":
		return b.formatSideEffectsPlain(value)
	case "artifacts", "warnings", "errors", "rules", "examples", "preconditions":
		if arr, ok := value.([]interface{}); ok {
			return b.formatArrayPlain(arr)
		}
		return strValue
	case "description", "notes", "message":
		return b.formatDescriptionPlain(strValue)
	case "category", "subcategory", "type", "source", "kind":
		// Short classification fields, don't truncate
		return strValue
	default:
		if arr, ok := value.([]interface{}); ok {
			return b.formatArrayPlain(arr)
		}
		if obj, ok := value.(map[string]interface{}); ok {
			return b.formatObjectPlain(obj)
		}
		return pkgstrings.TruncateDescription(strValue, pkgstrings.DefaultDescriptionMaxLen)
	}
}

// SortDataByName sorts data by the first column (usually id/name).
// This provides consistent ordering in tables, making it easier for users
// to find specific entries.
//
// Args:
//   - data: Array of data objects to sort
//   - columns: Column names, with the first used for sorting
//
// Returns:
//   - []interface{}: Sorted data array
func (b *TableBuilder) SortDataByName(data []interface{}, columns []string) []interface{} {
	sort.SliceStable(data, func(i, j int) bool {
		iMap, iOk := data[i].(map[string]interface{})
		jMap, jOk := data[j].(map[string]interface{})
		if iOk && jOk {
			// Use the first column (usually id/name) for sorting
			if len(columns) > 0 {
				iVal := fmt.Sprintf("%v", iMap[columns[0]])
				jVal := fmt.Sprintf("%v", jMap[columns[0]])
				return strings.ToLower(iVal) < strings.ToLower(jVal)
			}
		}
		return false
	})
	return data
}

// normalizeTimestamp simplifies ISO 8601 timestamps by removing microseconds
// and timezone information. Converts "2024-01-01T12:34:56.789Z" to "2024-01-01 12:34:56".
func (b *TableBuilder) normalizeTimestamp(timestamp string) string {
	if timestamp == "" || timestamp == "-" {
		return "-"
	}

	if strings.Contains(timestamp, "T") {
		parts := strings.Split(timestamp, "T")
		if len(parts) == 2 {
			timePart := parts[1]
			if dotIndex := strings.Index(timePart, "."); dotIndex != -1 {
				timePart = timePart[:dotIndex]
			}
			timePart = strings.TrimSuffix(timePart, "Z")
			return parts[0] + " " + timePart
		}
	}

	return timestamp
}

// parseDurationMs attempts to parse a duration value to milliseconds.
// Returns the duration in ms, whether parsing succeeded, and the original string if it was a string.
func (b *TableBuilder) parseDurationMs(value interface{}) (float64, bool, string) {
	if value == nil {
		return 0, false, ""
	}

	switch v := value.(type) {
	case int:
		return float64(v), true, ""
	case int64:
		return float64(v), true, ""
	case float64:
		return v, true, ""
	case string:
		var durationMs float64
		if parsed, err := fmt.Sscanf(v, "%f", &durationMs); parsed == 1 && err == nil {
			return durationMs, true, ""
		}
		return 0, false, v
	default:
		return 0, false, fmt.Sprintf("%v", value)
	}
}

// normalizeDuration formats duration in milliseconds to a human-readable string.
func (b *TableBuilder) normalizeDuration(durationMs float64) string {
	if durationMs < 1000 {
		return fmt.Sprintf("%.0fms", durationMs)
	} else if durationMs < 60000 {
		return fmt.Sprintf("%.1fs", durationMs/1000)
	} else if durationMs < 3600000 {
		return fmt.Sprintf("%.1fm", durationMs/60000)
	}
	return fmt.Sprintf("%.1fh", durationMs/3600000)
}

// Plain text formatting methods for kubectl-style output

// formatRiskPlain returns a risk level with display casing.
func (b *TableBuilder) formatRiskPlain(risk string) string {
	switch strings.ToLower(risk) {
	case "safe":
		return "Safe"
	case "moderate":
		return "Moderate"
	case "destructive":
		return "Destructive"
	case "":
		return "-"
	default:
		return risk
	}
}

// formatConfidencePlain returns a signature confidence grade with display casing.
func (b *TableBuilder) formatConfidencePlain(confidence string) string {
	switch strings.ToLower(confidence) {
	case "high":
		return "High"
	case "medium":
		return "Medium"
	case "low":
		return "Low"
	case "":
		return "-"
	default:
		return confidence
	}
}

// formatOutcomePlain summarizes a probe outcome object as one cell.
// Successful probes show their duration; failed ones show the error kind.
func (b *TableBuilder) formatOutcomePlain(value interface{}) string {
	outcome, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	duration := ""
	if ms, ok, _ := b.parseDurationMs(outcome["durationMs"]); ok {
		duration = fmt.Sprintf(" (%s)", b.normalizeDuration(ms))
	}

	if success, _ := outcome["success"].(bool); success {
		return "Success" + duration
	}

	kind := "Failed"
	if errObj, ok := outcome["error"].(map[string]interface{}); ok {
		switch fmt.Sprintf("%v", errObj["kind"]) {
		case "Timeout":
			kind = "Timeout"
		case "Refused":
			kind = "Refused"
		case "Canceled":
			kind = "Canceled"
		}
	}
	return kind + duration
}

// formatSuccessPlain returns a probe verdict as plain text.
func (b *TableBuilder) formatSuccessPlain(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Success"
		}
		return "Failed"
	case string:
		if v == "true" {
			return "Success"
		}
		return "Failed"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatValidPlain returns a validation verdict as plain text.
func (b *TableBuilder) formatValidPlain(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Valid"
		}
		return "Invalid"
	case string:
		if v == "true" {
			return "Valid"
		}
		return "Invalid"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatRequiredPlain returns a required flag as plain text.
func (b *TableBuilder) formatRequiredPlain(value interface{}) string {
	switch v := value.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		if v == "true" {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// formatTimestampPlain formats timestamp as plain text.
func (b *TableBuilder) formatTimestampPlain(timestamp string) string {
	return b.normalizeTimestamp(timestamp)
}

// formatDurationPlain formats duration as plain text.
func (b *TableBuilder) formatDurationPlain(value interface{}) string {
	durationMs, ok, fallback := b.parseDurationMs(value)
	if !ok {
		if fallback == "" {
			return "-"
		}
		return fallback
	}
	return b.normalizeDuration(durationMs)
}

// formatParametersPlain summarizes a parameter list by name.
func (b *TableBuilder) formatParametersPlain(value interface{}) string {
	params, ok := value.([]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if len(params) == 0 {
		return "none"
	}

	var names []string
	for _, param := range params {
		if paramMap, ok := param.(map[string]interface{}); ok {
			if name, ok := paramMap["name"].(string); ok {
				names = append(names, name)
			}
		}
	}

	if len(names) == 0 {
		return fmt.Sprintf("%d params", len(params))
	}
	if len(names) <= 2 {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s, %s (+%d more)", names[0], names[1], len(names)-2)
}

// formatSignaturePlain summarizes a signature as parameter count and confidence.
func (b *TableBuilder) formatSignaturePlain(value interface{}) string {
	sig, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	count := 0
	if params, ok := sig["parameters"].([]interface{}); ok {
		count = len(params)
	}
	label := fmt.Sprintf("%d params", count)
	if count == 1 {
		label = "1 param"
	}

	if confidence, ok := sig["confidence"].(string); ok && confidence != "" {
		return fmt.Sprintf("%s (%s)", label, strings.ToLower(confidence))
	}
	return label
}

// formatArgsPlain renders an argument map as key=value pairs.
func (b *TableBuilder) formatArgsPlain(value interface{}) string {
	args, ok := value.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if len(args) == 0 {
		return "-"
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pairs []string
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, args[k]))
	}

	joined := strings.Join(pairs, ", ")
	if len(joined) > 50 {
		return fmt.Sprintf("{%d args}", len(args))
	}
	return joined
}

// formatSideEffectsPlain summarizes observed side effects as a count.
func (b *TableBuilder) formatSideEffectsPlain(value interface{}) string {
	effects, ok := value.([]interface{})
	if !ok {
		return fmt.Sprintf("%v", value)
	}
	if len(effects) == 0 {
		return "none"
	}
	if len(effects) == 1 {
		return "1 effect"
	}
	return fmt.Sprintf("%d effects", len(effects))
}

// formatDescriptionPlain flattens and truncates free-text cells so
// multi-line notes stay on one table row.
func (b *TableBuilder) formatDescriptionPlain(desc string) string {
	return pkgstrings.TruncateDescription(desc, pkgstrings.DefaultDescriptionMaxLen)
}

// formatArrayPlain formats array as plain text.
func (b *TableBuilder) formatArrayPlain(arr []interface{}) string {
	if len(arr) == 0 {
		return "[]"
	}

	if len(arr) <= 2 {
		var items []string
		for _, item := range arr {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return strings.Join(items, ", ")
	}

	return fmt.Sprintf("[%d items]", len(arr))
}

// formatObjectPlain formats object as plain text.
func (b *TableBuilder) formatObjectPlain(obj map[string]interface{}) string {
	if len(obj) == 0 {
		return "{}"
	}

	displayFields := []string{"id", "name", "type", "message"}
	for _, field := range displayFields {
		if value, exists := obj[field]; exists && value != nil {
			return fmt.Sprintf("%v", value)
		}
	}

	return fmt.Sprintf("{%d fields}", len(obj))
}
