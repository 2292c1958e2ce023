package formatting

import (
	"encoding/json"
	"testing"
	"time"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOperations() []api.Operation {
	return []api.Operation{
		{
			ID:          "fs.read",
			Category:    "fs",
			Label:       "Read file",
			Description: "Read a file from the workspace",
			RiskLevel:   api.RiskSafe,
			Signature: &api.Signature{
				Parameters: []api.Parameter{
					{Name: "path", Type: api.TypeString, Required: true, Source: api.SourceManual},
				},
				ReturnType: "string",
				Confidence: api.ConfidenceHigh,
			},
		},
		{
			ID:        "fs.remove",
			Category:  "fs",
			Label:     "Remove file",
			RiskLevel: api.RiskDestructive,
		},
	}
}

func TestFactoryCreateFormatter(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		format   OutputFormat
		expected interface{}
	}{
		{FormatConsole, &ConsoleFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{FormatTable, &TableFormatter{}},
		{OutputFormat("bogus"), &ConsoleFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			formatter := factory.CreateFormatter(Options{Format: tt.format})
			assert.IsType(t, tt.expected, formatter)
			assert.Equal(t, tt.format, formatter.GetOptions().Format)
		})
	}
}

func TestConsoleFormatOperationsList(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	out := f.FormatOperationsList(sampleOperations())
	assert.Contains(t, out, "Catalog operations (2):")
	assert.Contains(t, out, "fs.read")
	assert.Contains(t, out, "[safe]")
	assert.Contains(t, out, "Read a file from the workspace")
	// Description falls back to the label
	assert.Contains(t, out, "Remove file")

	assert.Equal(t, "No operations in the catalog.", f.FormatOperationsList(nil))
}

func TestConsoleFormatOperationDetail(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	out := f.FormatOperationDetail(sampleOperations()[0])
	assert.Contains(t, out, "Operation: fs.read")
	assert.Contains(t, out, "Risk: safe")
	assert.Contains(t, out, "Signature (confidence: high):")
	assert.Contains(t, out, "path (string, required) [manual]")
	assert.Contains(t, out, "Returns: string")
}

func TestConsoleFormatResultsList(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	results := []api.TestResult{
		{
			ID:          "9f2c1a4e-8b77-4d21-a0c3-5f6e7d8a9b0c",
			OperationID: "fs.read",
			Outcome:     api.ExecutionOutcome{Success: true, DurationMs: 12},
			Timestamp:   time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		},
	}

	out := f.FormatResultsList(results)
	assert.Contains(t, out, "Recorded probes (1):")
	assert.Contains(t, out, "9f2c1a4e")
	assert.Contains(t, out, "success")
	assert.Contains(t, out, "2026-08-20 10:30:00")

	assert.Equal(t, "No probe results recorded.", f.FormatResultsList(nil))
}

func TestConsoleFormatResultDetail(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	result := api.TestResult{
		ID:          "r-1",
		OperationID: "fs.remove",
		Args:        map[string]interface{}{"path": "/tmp/x"},
		Outcome: api.ExecutionOutcome{
			DurationMs: 340,
			Error:      &api.ExecutionError{Kind: api.ErrorKindFailure, Message: "permission denied"},
			SideEffects: []api.SideEffect{
				{Type: api.EffectFileDeleted, Description: "file removed", Resource: "/tmp/x"},
			},
			Warnings: []string{"snapshot capture failed"},
		},
		Notes: "reproduced twice",
	}

	out := f.FormatResultDetail(result)
	assert.Contains(t, out, "Probe: r-1")
	assert.Contains(t, out, "Outcome: failure (340ms)")
	assert.Contains(t, out, "[Failure] permission denied")
	assert.Contains(t, out, "file removed (/tmp/x)")
	assert.Contains(t, out, "snapshot capture failed")
	assert.Contains(t, out, "Notes: reproduced twice")
}

func TestConsoleFormatEntriesList(t *testing.T) {
	f := NewConsoleFormatter(Options{})

	entries := []api.ManualEntry{
		{OperationID: "fs.read", Parameter: "path", Type: api.TypeString, Required: true},
	}

	out := f.FormatEntriesList(entries)
	assert.Contains(t, out, "Manual entries (1):")
	assert.Contains(t, out, "fs.read/path")
	assert.Contains(t, out, "required")

	assert.Equal(t, "No manual entries.", f.FormatEntriesList(nil))
}

func TestJSONFormatOperationsList(t *testing.T) {
	f := NewJSONFormatter(Options{Format: FormatJSON})

	out := f.FormatOperationsList(sampleOperations())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, float64(2), decoded["count"])

	ops, ok := decoded["operations"].([]interface{})
	require.True(t, ok)
	first, ok := ops[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "fs.read", first["id"])
	assert.Equal(t, "safe", first["riskLevel"])
}

func TestJSONQuietModeIsCompact(t *testing.T) {
	f := NewJSONFormatter(Options{Format: FormatJSON, Quiet: true})

	out := f.FormatOperationDetail(sampleOperations()[1])
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, `"id":"fs.remove"`)
}

func TestYAMLFormatOperationsList(t *testing.T) {
	f := NewYAMLFormatter(Options{Format: FormatYAML})

	out := f.FormatOperationsList(sampleOperations())
	assert.Contains(t, out, "count: 2")
	assert.Contains(t, out, "id: fs.read")
	assert.Contains(t, out, "riskLevel: destructive")
}

func TestTableFormatOperationsList(t *testing.T) {
	f := NewTableFormatter(Options{Format: FormatTable})

	out := f.FormatOperationsList(sampleOperations())
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "RISK")
	assert.Contains(t, out, "fs.read")
	assert.Contains(t, out, "destructive")

	assert.Equal(t, "No operations in the catalog", f.FormatOperationsList(nil))
}

func TestTableFormatOperationDetail(t *testing.T) {
	f := NewTableFormatter(Options{Format: FormatTable})

	out := f.FormatOperationDetail(sampleOperations()[0])
	assert.Contains(t, out, "Signature (confidence: high):")
	assert.Contains(t, out, "PARAMETER")
	assert.Contains(t, out, "path")

	// No signature table when the operation has none
	bare := f.FormatOperationDetail(sampleOperations()[1])
	assert.NotContains(t, bare, "Signature")
}

func TestFindOperation(t *testing.T) {
	f := NewConsoleFormatter(Options{})
	ops := sampleOperations()

	found := f.FindOperation(ops, "fs.remove")
	require.NotNil(t, found)
	assert.Equal(t, "fs.remove", found.ID)

	assert.Nil(t, f.FindOperation(ops, "net.fetch"))
}
