// Package cli provides the command-line interface utilities for assay.
//
// The package sits between the cobra commands and the API layer. Commands do
// not render domain objects themselves; they run the registry tools through a
// ToolRunner and let it format the payload.
//
// # Core Components
//
// ToolRunner executes registry tools in process and formats their results:
//   - drives any api.ToolProvider, normally the serve surface's provider
//   - output formats: kubectl-style tables, wide tables, JSON, and YAML
//   - progress spinner on stderr for longer operations, suppressed in quiet mode
//
// TableFormatter turns decoded JSON payloads into plain tables:
//   - detects assay resource types (operations, results, notes, artifacts)
//   - picks the columns worth showing, with extra columns in wide mode
//   - prints payload warnings after the table so they are not lost
//
// TableBuilder formats individual cells: risk levels, confidence grades,
// timestamps, durations, argument maps, and probe outcomes.
//
// CommandFlags and RegisterCommonFlags consolidate the flag set shared by the
// read-side commands. ClassifyConnectionError maps host connection failures
// to actionable messages.
package cli
