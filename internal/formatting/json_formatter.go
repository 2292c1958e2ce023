package formatting

import (
	"encoding/json"
	"fmt"

	"assay/internal/api"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatOperationsList formats an operation list as JSON
func (f *JSONFormatter) FormatOperationsList(ops []api.Operation) string {
	if ops == nil {
		ops = []api.Operation{}
	}
	return f.marshal(map[string]interface{}{
		"operations": ops,
		"count":      len(ops),
	})
}

// FormatOperationDetail formats detailed operation information as JSON
func (f *JSONFormatter) FormatOperationDetail(op api.Operation) string {
	return f.marshal(op)
}

// FormatResultsList formats recorded probe results as JSON
func (f *JSONFormatter) FormatResultsList(results []api.TestResult) string {
	if results == nil {
		results = []api.TestResult{}
	}
	return f.marshal(map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// FormatResultDetail formats a single probe record as JSON
func (f *JSONFormatter) FormatResultDetail(result api.TestResult) string {
	return f.marshal(result)
}

// FormatEntriesList formats manual signature entries as JSON
func (f *JSONFormatter) FormatEntriesList(entries []api.ManualEntry) string {
	if entries == nil {
		entries = []api.ManualEntry{}
	}
	return f.marshal(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// FormatData formats generic data as JSON
func (f *JSONFormatter) FormatData(data interface{}) error {
	fmt.Println(f.marshal(data))
	return nil
}

// FindOperation finds an operation by id in the cache
func (f *JSONFormatter) FindOperation(ops []api.Operation, id string) *api.Operation {
	return findOperationByID(ops, id)
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}

// marshal converts data to a JSON string with appropriate formatting
func (f *JSONFormatter) marshal(data interface{}) string {
	if f.options.Quiet {
		// Compact JSON for quiet mode
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Sprintf(`{"error": "Failed to format JSON: %v"}`, err)
		}
		return string(jsonBytes)
	}
	return PrettyJSON(data)
}
