package commands

import (
	"context"
	"fmt"
	"strings"
)

// DocsCommand generates a documentation package from the catalog and
// recorded results
type DocsCommand struct {
	*BaseCommand
}

// NewDocsCommand creates a new docs command
func NewDocsCommand(session SessionInterface, output OutputLogger) *DocsCommand {
	return &DocsCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute generates and exports the documentation package. Settings
// omitted on the command line fall back to configured defaults.
func (d *DocsCommand) Execute(ctx context.Context, args []string) error {
	toolArgs := map[string]interface{}{}
	for key, value := range parseKeyValueArgsToInterfaceMap(args, d.output) {
		switch key {
		case "version", "author", "organization", "out":
			toolArgs[key] = value
		case "formats":
			toolArgs[key] = normalizeFormats(value)
		default:
			d.output.Debug("Ignoring unknown docs setting: %s", key)
		}
	}

	d.output.Info("Generating documentation package...")

	result, err := d.session.CallTool(ctx, "assay_docs_generate", toolArgs)
	if err != nil {
		return fmt.Errorf("failed to generate documentation: %w", err)
	}
	if result.IsError {
		d.output.Error("%s", firstContentText(result))
		return nil
	}

	var report struct {
		Version      string   `json:"version"`
		CommandCount int      `json:"commandCount"`
		TestedCount  int      `json:"testedCount"`
		QualityScore float64  `json:"qualityScore"`
		Artifacts    []string `json:"artifacts"`
		Warnings     []string `json:"warnings"`
	}
	if err := decodeFirstContent(result, &report); err != nil {
		return fmt.Errorf("failed to decode docs report: %w", err)
	}

	d.output.Success("Generated documentation package %s", report.Version)
	d.output.OutputLine("Commands: %d documented, %d tested", report.CommandCount, report.TestedCount)
	d.output.OutputLine("Quality score: %.1f", report.QualityScore)
	if len(report.Artifacts) > 0 {
		d.output.OutputLine("Artifacts:")
		for _, artifact := range report.Artifacts {
			d.output.OutputLine("  - %s", artifact)
		}
	}
	for _, warning := range report.Warnings {
		d.output.OutputLine("Warning: %s", warning)
	}
	return nil
}

// normalizeFormats accepts either a JSON array or a comma-separated string
// and returns the array form the generate tool expects.
func normalizeFormats(value interface{}) interface{} {
	s, ok := value.(string)
	if !ok {
		return value
	}
	var formats []interface{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			formats = append(formats, trimmed)
		}
	}
	return formats
}

// Usage returns the usage string
func (d *DocsCommand) Usage() string {
	return "docs [version=1.2.0] [author=name] [organization=name] [out=dir] [formats=md,json]"
}

// Description returns the command description
func (d *DocsCommand) Description() string {
	return "Generate and export reference documentation from the catalog"
}

// Completions returns possible completions
func (d *DocsCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (d *DocsCommand) Aliases() []string {
	return []string{}
}
