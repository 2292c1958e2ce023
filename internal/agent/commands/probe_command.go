package commands

import (
	"context"
	"fmt"
	"strings"

	"assay/internal/api"
)

// probeSettingKeys are key=value settings consumed by the probe command
// itself rather than passed to the operation. An operation parameter with
// one of these names has to be probed through the CLI instead.
var probeSettingKeys = map[string]bool{
	"timeoutMs":      true,
	"createSnapshot": true,
	"confirmed":      true,
	"notes":          true,
}

// ProbeCommand executes an operation against the host under safety rails
// and records the outcome
type ProbeCommand struct {
	*BaseCommand
}

// NewProbeCommand creates a new probe command
func NewProbeCommand(session SessionInterface, output OutputLogger) *ProbeCommand {
	return &ProbeCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute probes an operation with key=value arguments. The reserved keys
// timeoutMs, createSnapshot, confirmed, and notes configure the probe; all
// other keys become operation arguments. Destructive operations are refused
// until re-run with confirmed=true.
func (p *ProbeCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := p.parseArgs(args, 1, p.Usage())
	if err != nil {
		return err
	}
	operationID := parsed[0]

	if op := p.findOperation(operationID); op != nil && op.RiskLevel == api.RiskDestructive {
		p.output.Info("%s is destructive; it will be refused unless confirmed=true is given", operationID)
	}

	// Split probe settings from operation arguments
	all := parseKeyValueArgsToInterfaceMap(parsed[1:], p.output)
	probeArgs := make(map[string]interface{})
	toolArgs := map[string]interface{}{"operationId": operationID}
	for key, value := range all {
		if probeSettingKeys[key] {
			toolArgs[key] = value
		} else {
			probeArgs[key] = value
		}
	}
	toolArgs["args"] = probeArgs

	p.output.Info("Probing %s...", operationID)

	result, err := p.session.CallTool(ctx, "assay_operation_execute", toolArgs)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	if result.IsError {
		p.output.Error("%s", firstContentText(result))
		return nil
	}

	var outcome api.ExecutionOutcome
	if err := decodeFirstContent(result, &outcome); err != nil {
		return fmt.Errorf("failed to decode probe outcome: %w", err)
	}

	p.printOutcome(operationID, outcome)
	return nil
}

// printOutcome renders the execution outcome with result payload, side
// effects, and degradation warnings.
func (p *ProbeCommand) printOutcome(operationID string, outcome api.ExecutionOutcome) {
	if outcome.Success {
		p.output.Success("Probe of %s succeeded in %dms", operationID, outcome.DurationMs)
	} else if outcome.Error != nil {
		p.output.Error("Probe of %s failed in %dms: [%s] %s", operationID, outcome.DurationMs, outcome.Error.Kind, outcome.Error.Message)
		if outcome.Error.Trace != "" {
			p.output.Debug("Trace: %s", outcome.Error.Trace)
		}
	} else {
		p.output.Error("Probe of %s failed in %dms", operationID, outcome.DurationMs)
	}

	if outcome.Result != nil {
		p.output.OutputLine("Result:")
		p.output.OutputLine("  %v", outcome.Result)
	}

	if len(outcome.SideEffects) > 0 {
		p.output.OutputLine("Side effects:")
		for _, effect := range outcome.SideEffects {
			if effect.Resource != "" {
				p.output.OutputLine("  - %s: %s (%s)", effect.Type, effect.Description, effect.Resource)
			} else {
				p.output.OutputLine("  - %s: %s", effect.Type, effect.Description)
			}
		}
	}

	if len(outcome.Warnings) > 0 {
		p.output.OutputLine("Warnings:")
		for _, warning := range outcome.Warnings {
			p.output.OutputLine("  - %s", warning)
		}
	}
}

// Usage returns the usage string
func (p *ProbeCommand) Usage() string {
	return "probe <operation-id> [param=value ...] [timeoutMs=N] [createSnapshot=true] [confirmed=true] [notes=text]"
}

// Description returns the command description
func (p *ProbeCommand) Description() string {
	return "Execute an operation under safety rails and record the outcome"
}

// Completions returns possible completions
func (p *ProbeCommand) Completions(input string) []string {
	parts := strings.Fields(input)
	if len(parts) <= 1 {
		return p.getOperationCompletions()
	}

	// Complete parameters for the named operation
	var completions []string
	for _, name := range getParameterNames(p.findOperation(parts[1])) {
		completions = append(completions, name+"=")
	}
	return completions
}

// Aliases returns command aliases
func (p *ProbeCommand) Aliases() []string {
	return []string{}
}
