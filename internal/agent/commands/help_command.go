package commands

import (
	"context"
	"strings"
)

// HelpCommand shows available commands and usage information
type HelpCommand struct {
	*BaseCommand
	registry *Registry
}

// NewHelpCommand creates a new help command
func NewHelpCommand(session SessionInterface, output OutputLogger, registry *Registry) *HelpCommand {
	return &HelpCommand{
		BaseCommand: NewBaseCommand(session, output),
		registry:    registry,
	}
}

// Execute shows help information
func (h *HelpCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.showGeneralHelp()
		return nil
	}

	// Show help for specific command
	commandName := strings.ToLower(args[0])

	// Handle ? alias
	if commandName == "?" {
		commandName = "help"
	}

	command, exists := h.registry.Get(commandName)
	if !exists {
		h.output.Error("Unknown command: %s", commandName)
		h.output.OutputLine("Use 'help' to see all available commands.")
		return nil
	}

	h.showCommandHelp(commandName, command)
	return nil
}

// showGeneralHelp displays the general help message
func (h *HelpCommand) showGeneralHelp() {
	h.output.OutputLine("Available commands:")
	h.output.OutputLine("  help, ?                      - Show this help message")
	h.output.OutputLine("  list operations              - List catalog operations")
	h.output.OutputLine("  list results                 - List recorded probe results")
	h.output.OutputLine("  describe <operation-id>      - Show an operation with its merged signature")
	h.output.OutputLine("  search <query>               - Search the catalog by id, label, or description")
	h.output.OutputLine("  validate <op> [param=val]    - Check arguments without executing")
	h.output.OutputLine("  probe <op> [param=val]       - Execute an operation and record the outcome")
	h.output.OutputLine("  results [operation-id]       - Show recorded probe results")
	h.output.OutputLine("  note save <op> <param> ...   - Save a manual research note")
	h.output.OutputLine("  note rm <op> <param>         - Delete a manual research note")
	h.output.OutputLine("  docs [version=x] [out=dir]   - Generate reference documentation")
	h.output.OutputLine("  exit, quit                   - Exit the REPL")
	h.output.OutputLine("")
	h.output.OutputLine("Keyboard shortcuts:")
	h.output.OutputLine("  TAB                          - Auto-complete commands and arguments")
	h.output.OutputLine("  ↑/↓ (arrow keys)             - Navigate command history")
	h.output.OutputLine("  Ctrl+R                       - Search command history")
	h.output.OutputLine("  Ctrl+C                       - Cancel current line")
	h.output.OutputLine("  Ctrl+D                       - Exit REPL")
	h.output.OutputLine("")
	h.output.OutputLine("Examples:")
	h.output.OutputLine("  describe fs.read")
	h.output.OutputLine("  validate fs.read path=/etc/hosts")
	h.output.OutputLine("  probe fs.read path=/etc/hosts timeoutMs=5000")
	h.output.OutputLine("  probe fs.remove path=/tmp/scratch confirmed=true")
	h.output.OutputLine("  note save fs.read path type=string required=true description=\"target path\"")
	h.output.OutputLine("  docs version=1.2.0 formats=md,json")
}

// showCommandHelp displays help for a specific command
func (h *HelpCommand) showCommandHelp(commandName string, cmd Command) {
	h.output.OutputLine("Command: %s", commandName)
	h.output.OutputLine("Description: %s", cmd.Description())
	h.output.OutputLine("Usage: %s", cmd.Usage())

	aliases := cmd.Aliases()
	if len(aliases) > 0 {
		h.output.OutputLine("Aliases: %v", aliases)
	}
}

// Usage returns the usage string
func (h *HelpCommand) Usage() string {
	return "help [command]"
}

// Description returns the command description
func (h *HelpCommand) Description() string {
	return "Show help information for commands"
}

// Completions returns possible completions
func (h *HelpCommand) Completions(input string) []string {
	// Return all command names for completion
	return h.registry.AllCompletions()
}

// Aliases returns command aliases
func (h *HelpCommand) Aliases() []string {
	return []string{"?"}
}
