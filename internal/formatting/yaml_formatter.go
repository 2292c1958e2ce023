package formatting

import (
	"fmt"

	"assay/internal/api"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatOperationsList formats an operation list as YAML
func (f *YAMLFormatter) FormatOperationsList(ops []api.Operation) string {
	if ops == nil {
		ops = []api.Operation{}
	}
	return f.marshal(map[string]interface{}{
		"operations": ops,
		"count":      len(ops),
	})
}

// FormatOperationDetail formats detailed operation information as YAML
func (f *YAMLFormatter) FormatOperationDetail(op api.Operation) string {
	return f.marshal(op)
}

// FormatResultsList formats recorded probe results as YAML
func (f *YAMLFormatter) FormatResultsList(results []api.TestResult) string {
	if results == nil {
		results = []api.TestResult{}
	}
	return f.marshal(map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// FormatResultDetail formats a single probe record as YAML
func (f *YAMLFormatter) FormatResultDetail(result api.TestResult) string {
	return f.marshal(result)
}

// FormatEntriesList formats manual signature entries as YAML
func (f *YAMLFormatter) FormatEntriesList(entries []api.ManualEntry) string {
	if entries == nil {
		entries = []api.ManualEntry{}
	}
	return f.marshal(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// FormatData formats generic data as YAML
func (f *YAMLFormatter) FormatData(data interface{}) error {
	fmt.Print(f.marshal(data))
	return nil
}

// FindOperation finds an operation by id in the cache
func (f *YAMLFormatter) FindOperation(ops []api.Operation, id string) *api.Operation {
	return findOperationByID(ops, id)
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

// marshal converts data to a YAML string
func (f *YAMLFormatter) marshal(data interface{}) string {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error: \"Failed to format YAML: %v\"\n", err)
	}

	return string(yamlBytes)
}
