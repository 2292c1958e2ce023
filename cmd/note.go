package cmd

import (
	"encoding/json"
	"fmt"

	"assay/internal/api"
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var (
	noteFlags       cli.CommandFlags
	noteType        string
	noteRequired    bool
	noteDescription string
	noteDefault     string
	noteNotes       string
	noteRules       []string
	noteExamples    []string
)

// noteCmd groups the manual research note subcommands
var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage manual research notes",
	Long: `Manage manual research notes for operation parameters.

A note documents one parameter of one operation: its type, whether it is
required, a description, a default, validation rules, and known-good example
values. Notes always win over automatically inferred parameters when an
operation's signature is merged, and an operation with at least one note
reports high signature confidence.

Saving a second note for the same operation and parameter replaces the
first.`,
}

// noteAddCmd represents the note add command
var noteAddCmd = &cobra.Command{
	Use:   "add <operation-id> <parameter>",
	Short: "Save a manual note for an operation parameter",
	Long: `Save a manual note for one parameter of an operation, replacing any
existing note for the same parameter.

Default and example values decode as JSON when possible, so numbers and
booleans keep their type: --default 5000 stores a number, --default '"5000"'
stores a string.

Examples:
  assay note add fs.read path --type string --required --description "File to read"
  assay note add fs.read encoding --type string --default utf-8 --rule "oneOf:utf-8|base64"
  assay note add net.fetch timeoutMs --type number --default 30000 --example 5000`,
	Args: cobra.ExactArgs(2),
	RunE: runNoteAdd,
}

// noteRmCmd represents the note rm command
var noteRmCmd = &cobra.Command{
	Use:   "rm <operation-id> <parameter>",
	Short: "Delete the note for an operation parameter",
	Long: `Delete the stored note for one parameter of an operation. The merged
signature falls back to whatever automatic inference produced for that
parameter.

Examples:
  assay note rm fs.read encoding`,
	Args: cobra.ExactArgs(2),
	RunE: runNoteRm,
}

// noteListCmd represents the note list command
var noteListCmd = &cobra.Command{
	Use:   "list [operation-id]",
	Short: "List stored notes",
	Long: `List stored research notes, either for one operation or for the whole
catalog when no operation id is given.

Examples:
  assay note list
  assay note list fs.read --output yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNoteList,
}

func init() {
	rootCmd.AddCommand(noteCmd)

	// Common flags are persistent on the parent so every subcommand
	// inherits them.
	cli.RegisterCommonFlags(noteCmd, &noteFlags)

	noteAddCmd.Flags().StringVar(&noteType, "type", "string", "Parameter type (string, number, boolean, object, array, function, any, unknown)")
	noteAddCmd.Flags().BoolVar(&noteRequired, "required", false, "Mark the parameter as required")
	noteAddCmd.Flags().StringVar(&noteDescription, "description", "", "Parameter description")
	noteAddCmd.Flags().StringVar(&noteDefault, "default", "", "Default value (JSON values keep their type)")
	noteAddCmd.Flags().StringVar(&noteNotes, "notes", "", "Free-form research notes")
	noteAddCmd.Flags().StringArrayVar(&noteRules, "rule", nil, "Validation rule, repeatable (e.g. nonEmpty, min:1, oneOf:json|yaml)")
	noteAddCmd.Flags().StringArrayVar(&noteExamples, "example", nil, "Known-good value, repeatable (JSON values keep their type)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRmCmd)
	noteCmd.AddCommand(noteListCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	if !api.ParameterType(noteType).IsValid() {
		return fmt.Errorf("invalid parameter type %q (valid: string, number, boolean, object, array, function, any, unknown)", noteType)
	}

	application, runner, err := bootstrapApp(&noteFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	fields := noteFields{
		Type:        noteType,
		Required:    noteRequired,
		Description: noteDescription,
		Notes:       noteNotes,
		Rules:       noteRules,
		Examples:    noteExamples,
	}
	if cmd.Flags().Changed("default") {
		fields.Default = noteDefault
		fields.HasDefault = true
	}

	toolArgs := buildNoteArgs(args[0], args[1], fields)
	return runner.Run(commandContext(cmd), "assay_note_save", toolArgs)
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&noteFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	return runner.Run(commandContext(cmd), "assay_note_delete", map[string]interface{}{
		"operationId": args[0],
		"parameter":   args[1],
	})
}

func runNoteList(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&noteFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	operationID := ""
	if len(args) > 0 {
		operationID = args[0]
	}

	// There is no listing tool on the serve surface, so this reads the
	// research store through the API layer and shares the render pipeline.
	entries, err := api.GetResearch().ListEntries(commandContext(cmd), operationID)
	if err != nil {
		return err
	}

	return runner.RenderResult(map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// noteFields carries the flag values for one note add invocation.
type noteFields struct {
	Type        string
	Required    bool
	Description string
	Default     string
	HasDefault  bool
	Notes       string
	Rules       []string
	Examples    []string
}

// buildNoteArgs assembles the note_save tool arguments. Optional fields are
// only sent when set, and repeatable values become JSON-style arrays the
// tool surface expects.
func buildNoteArgs(operationID, parameter string, fields noteFields) map[string]interface{} {
	args := map[string]interface{}{
		"operationId": operationID,
		"parameter":   parameter,
		"type":        fields.Type,
		"required":    fields.Required,
	}
	if fields.Description != "" {
		args["description"] = fields.Description
	}
	if fields.HasDefault {
		args["default"] = decodeFlagValue(fields.Default)
	}
	if fields.Notes != "" {
		args["notes"] = fields.Notes
	}
	if len(fields.Rules) > 0 {
		rules := make([]interface{}, len(fields.Rules))
		for i, rule := range fields.Rules {
			rules[i] = rule
		}
		args["rules"] = rules
	}
	if len(fields.Examples) > 0 {
		examples := make([]interface{}, len(fields.Examples))
		for i, example := range fields.Examples {
			examples[i] = decodeFlagValue(example)
		}
		args["examples"] = examples
	}
	return args
}

// decodeFlagValue decodes a flag value as JSON when possible so numbers and
// booleans keep their type; anything else stays a string.
func decodeFlagValue(raw string) interface{} {
	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}
	return raw
}
