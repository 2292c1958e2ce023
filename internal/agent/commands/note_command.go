package commands

import (
	"context"
	"fmt"
	"strings"
)

// noteFieldKeys are the key=value settings accepted by note save, matching
// the manual entry fields.
var noteFieldKeys = map[string]bool{
	"type":        true,
	"required":    true,
	"description": true,
	"default":     true,
	"notes":       true,
	"rules":       true,
	"examples":    true,
}

// NoteCommand saves and deletes manual research notes for operation parameters
type NoteCommand struct {
	*BaseCommand
}

// NewNoteCommand creates a new note command
func NewNoteCommand(session SessionInterface, output OutputLogger) *NoteCommand {
	return &NoteCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute dispatches to the save or rm subcommand.
func (n *NoteCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := n.parseArgs(args, 3, n.Usage())
	if err != nil {
		return err
	}

	subcommand := strings.ToLower(parsed[0])
	switch subcommand {
	case "save":
		return n.saveNote(ctx, parsed[1], parsed[2], parsed[3:])
	case "rm":
		return n.deleteNote(ctx, parsed[1], parsed[2])
	default:
		return n.validateTarget(subcommand, []string{"save", "rm"})
	}
}

// saveNote saves a manual entry for one parameter of one operation,
// replacing any existing entry for the same parameter.
func (n *NoteCommand) saveNote(ctx context.Context, operationID, parameter string, fieldArgs []string) error {
	toolArgs := map[string]interface{}{
		"operationId": operationID,
		"parameter":   parameter,
	}
	for key, value := range parseKeyValueArgsToInterfaceMap(fieldArgs, n.output) {
		if !noteFieldKeys[key] {
			n.output.Debug("Ignoring unknown note field: %s", key)
			continue
		}
		toolArgs[key] = value
	}

	result, err := n.session.CallTool(ctx, "assay_note_save", toolArgs)
	if err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	if result.IsError {
		n.output.Error("%s", firstContentText(result))
		return nil
	}

	n.output.Success("%s", firstContentText(result))
	return nil
}

// deleteNote removes the manual entry for one parameter of one operation.
func (n *NoteCommand) deleteNote(ctx context.Context, operationID, parameter string) error {
	result, err := n.session.CallTool(ctx, "assay_note_delete", map[string]interface{}{
		"operationId": operationID,
		"parameter":   parameter,
	})
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if result.IsError {
		n.output.Error("%s", firstContentText(result))
		return nil
	}

	n.output.Success("%s", firstContentText(result))
	return nil
}

// Usage returns the usage string
func (n *NoteCommand) Usage() string {
	return "note <save|rm> <operation-id> <parameter> [type=string] [required=true] [description=text] [default=value] [notes=text] [rules=[...]] [examples=[...]]"
}

// Description returns the command description
func (n *NoteCommand) Description() string {
	return "Save or delete a manual research note for an operation parameter"
}

// Completions returns possible completions
func (n *NoteCommand) Completions(input string) []string {
	parts := strings.Fields(input)
	if len(parts) <= 1 {
		return n.getCompletionsForTargets([]string{"save", "rm"})
	}
	return n.getOperationCompletions()
}

// Aliases returns command aliases
func (n *NoteCommand) Aliases() []string {
	return []string{}
}
