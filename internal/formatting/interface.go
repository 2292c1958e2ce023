// Package formatting provides unified output formatting for the REPL and CLI surfaces.
//
// This package consolidates the rendering logic for catalog operations, probe
// results, and manual entries behind a single Formatter interface with console,
// JSON, YAML, and table implementations.
package formatting

import (
	"assay/internal/api"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Quiet  bool // Suppress decorative elements
	Color  bool // Enable colored output
}

// Formatter provides unified formatting for catalog data
type Formatter interface {
	// Operation formatting
	FormatOperationsList(ops []api.Operation) string
	FormatOperationDetail(op api.Operation) string
	FindOperation(ops []api.Operation, id string) *api.Operation

	// Probe result formatting
	FormatResultsList(results []api.TestResult) string
	FormatResultDetail(result api.TestResult) string

	// Manual entry formatting
	FormatEntriesList(entries []api.ManualEntry) string

	// Generic data formatting (for tool results)
	FormatData(data interface{}) error

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatTable:
		return NewTableFormatter(options)
	case FormatConsole:
		fallthrough
	default:
		return NewConsoleFormatter(options)
	}
}
