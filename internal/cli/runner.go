package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"assay/internal/api"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// ToolRunner runs registry tools against a tool provider and formats the
// results according to the configured output format. This is the main
// interface for CLI commands that need to query or change assay state.
type ToolRunner struct {
	// provider serves the tool calls, normally the serve surface's provider
	provider api.ToolProvider
	// options contains execution configuration
	options RunnerOptions
	// formatter handles table formatting when output format is table
	formatter *TableFormatter
	// out receives formatted output
	out io.Writer
}

// NewToolRunner creates a tool runner writing to stdout.
func NewToolRunner(provider api.ToolProvider, options RunnerOptions) *ToolRunner {
	return NewToolRunnerWithWriter(provider, options, os.Stdout)
}

// NewToolRunnerWithWriter creates a tool runner writing to the given writer.
func NewToolRunnerWithWriter(provider api.ToolProvider, options RunnerOptions, out io.Writer) *ToolRunner {
	return &ToolRunner{
		provider:  provider,
		options:   options,
		formatter: NewTableFormatterWithWriter(options, out),
		out:       out,
	}
}

// GetOptions returns the runner options.
// This allows callers to check the configured output format and other settings.
func (r *ToolRunner) GetOptions() RunnerOptions {
	return r.options
}

// Run executes a tool and formats the output.
// It handles progress indication, error formatting, and output formatting
// according to the configured options.
func (r *ToolRunner) Run(ctx context.Context, toolName string, args map[string]interface{}) error {
	var s *spinner.Spinner
	if r.decorate() {
		// The spinner writes to stderr so piped stdout stays clean.
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = spinnerLabel(toolName)
		s.Start()
	}

	result, err := r.provider.ExecuteTool(ctx, toolName, args)

	if s != nil {
		s.Stop()
	}

	if err != nil {
		if s != nil {
			fmt.Fprintf(os.Stderr, "%s\n", text.FgRed.Sprint("Command failed"))
		}
		return fmt.Errorf("failed to run tool %s: %w", toolName, err)
	}

	if result.IsError {
		return r.formatError(result)
	}

	return r.formatOutput(result)
}

// RunJSON executes a tool and returns the decoded payload instead of
// printing it. Useful when a command needs to inspect the result.
func (r *ToolRunner) RunJSON(ctx context.Context, toolName string, args map[string]interface{}) (interface{}, error) {
	result, err := r.provider.ExecuteTool(ctx, toolName, args)
	if err != nil {
		return nil, fmt.Errorf("failed to run tool %s: %w", toolName, err)
	}
	if result.IsError {
		return nil, r.formatError(result)
	}
	if len(result.Content) == 0 {
		return nil, nil
	}
	return decodePayload(result.Content[0])
}

// RenderResult decodes a typed payload and renders it in the configured
// output format. Commands that call API handlers directly instead of going
// through a tool use this to share the formatting pipeline.
func (r *ToolRunner) RenderResult(payload interface{}) error {
	data, err := decodePayload(payload)
	if err != nil {
		return err
	}
	return r.RenderData(data)
}

// WithProgress runs fn under a progress spinner when decoration applies.
// The spinner writes to stderr so piped stdout stays clean.
func (r *ToolRunner) WithProgress(label string, fn func() error) error {
	if !r.decorate() {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + label
	s.Start()
	err := fn()
	s.Stop()
	return err
}

// decorate reports whether progress decoration applies. Quiet mode and the
// machine-readable formats bypass it.
func (r *ToolRunner) decorate() bool {
	if r.options.Quiet {
		return false
	}
	return r.options.Format != OutputFormatJSON && r.options.Format != OutputFormatYAML
}

// formatError extracts error messages from a tool result and returns them
// as an error. The error is returned so cobra can handle the exit code,
// not printed directly, to avoid duplicate error messages.
func (r *ToolRunner) formatError(result *api.CallToolResult) error {
	var errorMsgs []string
	for _, content := range result.Content {
		switch v := content.(type) {
		case string:
			errorMsgs = append(errorMsgs, v)
		default:
			errorMsgs = append(errorMsgs, fmt.Sprintf("%v", v))
		}
	}

	return fmt.Errorf("%s", strings.Join(errorMsgs, "\n"))
}

// formatOutput formats the tool payload according to the configured format.
// String payloads are status messages and print as-is; structured payloads
// go through the format-specific renderers.
func (r *ToolRunner) formatOutput(result *api.CallToolResult) error {
	if len(result.Content) == 0 {
		if !r.options.Quiet {
			fmt.Fprintln(r.out, "No results")
		}
		return nil
	}

	content := result.Content[0]
	if msg, ok := content.(string); ok {
		fmt.Fprintln(r.out, msg)
		return nil
	}

	data, err := decodePayload(content)
	if err != nil {
		return err
	}
	return r.RenderData(data)
}

// RenderData renders already-decoded data in the configured output format.
// Commands that bypass the tool surface use this to share the formatting
// pipeline.
func (r *ToolRunner) RenderData(data interface{}) error {
	switch r.options.Format {
	case OutputFormatJSON:
		return r.outputJSON(data)
	case OutputFormatYAML:
		return r.outputYAML(data)
	case OutputFormatTable, OutputFormatWide:
		return r.formatter.FormatData(data)
	default:
		return fmt.Errorf("unsupported output format: %s", r.options.Format)
	}
}

func (r *ToolRunner) outputJSON(data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(r.out, string(encoded))
	return nil
}

func (r *ToolRunner) outputYAML(data interface{}) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Fprint(r.out, string(yamlData))
	return nil
}

// decodePayload round-trips a payload through JSON so typed structs and
// hand-built maps both come out as generic maps with their wire field
// names. The table formatter keys its column logic off those names.
func decodePayload(content interface{}) (interface{}, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	var data interface{}
	if err := json.Unmarshal(encoded, &data); err != nil {
		return nil, fmt.Errorf("failed to decode tool result: %w", err)
	}
	return data, nil
}

// spinnerLabel returns the progress text shown while a tool runs.
func spinnerLabel(toolName string) string {
	switch toolName {
	case "assay_operation_execute":
		return " Probing operation..."
	case "assay_operation_validate":
		return " Validating arguments..."
	case "assay_operation_search":
		return " Searching catalog..."
	case "assay_docs_generate":
		return " Generating documentation..."
	default:
		return " Running command..."
	}
}
