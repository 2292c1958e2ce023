package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"assay/internal/agent/commands"

	"github.com/chzyer/readline"
)

// promptPrefixUnicode uses a mathematical bold "a" (𝗮) for assay branding in the REPL prompt.
// Used when terminal supports unicode (most modern terminals).
const promptPrefixUnicode = "𝗮"

// promptPrefixASCII is the fallback prefix for terminals without unicode support.
const promptPrefixASCII = "a"

// promptChevronUnicode is the guillemet separator used in the prompt.
const promptChevronUnicode = "»"

// promptChevronASCII is the fallback chevron for terminals without unicode support.
const promptChevronASCII = ">"

// commandExecutionTimeout is the timeout for individual REPL command execution.
// Set to 5 minutes to allow for long-running probes while still providing
// a safety net against hung operations.
const commandExecutionTimeout = 5 * time.Minute

// REPL represents an interactive Read-Eval-Print Loop for exploring the
// operation catalog. It provides a command-line interface for listing,
// describing, validating, and probing operations with tab completion and
// persistent command history.
//
// The REPL uses a modular command system where each command implements the
// Command interface, enabling extensible functionality and consistent user
// experience. Commands support aliases, usage documentation, and
// context-aware tab completion.
type REPL struct {
	session         *Session
	logger          *Logger
	rl              *readline.Instance
	commandRegistry *commands.Registry
	useUnicode      bool
	mu              sync.RWMutex
}

// NewREPL creates a new REPL instance with the specified session and logger.
// It initializes the command registry and registers all available commands
// with their respective aliases and completion handlers.
//
// Args:
//   - session: session wrapping the tool provider
//   - logger: Logger instance for structured output and debugging
//
// Example:
//
//	session := agent.NewSession(provider, logger)
//	repl := agent.NewREPL(session, logger)
//	if err := repl.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
func NewREPL(session *Session, logger *Logger) *REPL {
	repl := &REPL{
		session:         session,
		logger:          logger,
		commandRegistry: commands.NewRegistry(),
		useUnicode:      detectUnicodeSupport(),
	}

	// Register all commands
	repl.registerCommands()

	return repl
}

// detectUnicodeSupport checks if the terminal likely supports unicode characters.
// Returns true for most modern terminals, false for dumb terminals or when uncertain.
func detectUnicodeSupport() bool {
	term := os.Getenv("TERM")
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	// Dumb terminals or no terminal don't support unicode
	if term == "" || term == "dumb" {
		return false
	}

	// Check for UTF-8 in locale settings
	for _, v := range []string{lang, lcAll} {
		if strings.Contains(strings.ToLower(v), "utf-8") || strings.Contains(strings.ToLower(v), "utf8") {
			return true
		}
	}

	// Common terminals that support unicode
	// Note: vt100 is intentionally excluded as it's a legacy terminal without unicode support
	unicodeTerminals := []string{"xterm", "screen", "tmux", "alacritty", "kitty", "iterm"}
	termLower := strings.ToLower(term)
	for _, ut := range unicodeTerminals {
		if strings.Contains(termLower, ut) {
			return true
		}
	}

	// Default to true for most modern environments
	return true
}

// buildPrompt creates the REPL prompt. Format is "𝗮 »" with unicode support,
// "a >" without.
func (r *REPL) buildPrompt() string {
	r.mu.RLock()
	useUnicode := r.useUnicode
	r.mu.RUnlock()

	prefix := promptPrefixASCII
	chevron := promptChevronASCII
	if useUnicode {
		prefix = promptPrefixUnicode
		chevron = promptChevronUnicode
	}

	return prefix + " " + chevron + " "
}

// registerCommands registers all available commands with the command registry.
//
// Registered commands:
//   - help: Command documentation and usage information
//   - list: Display catalog operations and recorded results
//   - describe: Detailed information about a specific operation
//   - search: Keyword search across the catalog
//   - validate: Dry-run argument checking against a signature
//   - probe: Execute an operation and record the outcome
//   - results: Display recorded probe outcomes
//   - note: Save or delete manual signature notes
//   - docs: Generate reference documentation
//   - exit: Graceful session termination
func (r *REPL) registerCommands() {
	r.commandRegistry.Register("help", commands.NewHelpCommand(r.session, r.logger, r.commandRegistry))
	r.commandRegistry.Register("list", commands.NewListCommand(r.session, r.logger))
	r.commandRegistry.Register("describe", commands.NewDescribeCommand(r.session, r.logger))
	r.commandRegistry.Register("search", commands.NewSearchCommand(r.session, r.logger))
	r.commandRegistry.Register("validate", commands.NewValidateCommand(r.session, r.logger))
	r.commandRegistry.Register("probe", commands.NewProbeCommand(r.session, r.logger))
	r.commandRegistry.Register("results", commands.NewResultsCommand(r.session, r.logger))
	r.commandRegistry.Register("note", commands.NewNoteCommand(r.session, r.logger))
	r.commandRegistry.Register("docs", commands.NewDocsCommand(r.session, r.logger))
	r.commandRegistry.Register("exit", commands.NewExitCommand(r.session, r.logger))
}

// executeCommand parses and executes a command using the registry.
//
// Special handling:
//   - Empty input is silently ignored
//   - "?" is automatically translated to "help" command
//   - Unknown commands provide helpful error messages
//   - Execution uses separate timeout context to prevent interference
func (r *REPL) executeCommand(input string) error {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	commandName := strings.ToLower(parts[0])
	args := parts[1:]

	// Handle special case for ? alias to help command
	if commandName == "?" {
		commandName = "help"
	}

	// Get command from registry with alias support
	command, exists := r.commandRegistry.Get(commandName)
	if !exists {
		return fmt.Errorf("unknown command: %s. Type 'help' for available commands", parts[0])
	}

	// Create a separate context for command execution with a reasonable timeout
	// so probes are not canceled by agent lifecycle events
	commandCtx, commandCancel := context.WithTimeout(context.Background(), commandExecutionTimeout)
	defer commandCancel()

	return command.Execute(commandCtx, args)
}

// Run starts the REPL and enters the main interaction loop.
//
// The method performs complete REPL initialization:
//   - Initial operation cache load for tab completion
//   - Readline configuration with history file and tab completion
//   - Main command processing loop with graceful shutdown
//
// The REPL continues running until:
//   - Context cancellation (Ctrl+C or external signal)
//   - EOF input (Ctrl+D)
//   - Explicit exit command
//   - Fatal readline errors
func (r *REPL) Run(ctx context.Context) error {
	// Warm the operation cache so tab completion works from the first prompt
	if err := r.session.RefreshOperations(ctx); err != nil {
		r.logger.Debug("Initial operation refresh failed: %v", err)
	}

	// Set up readline with comprehensive tab completion and history
	completer := r.createCompleter()
	historyFile := filepath.Join(os.TempDir(), ".assay_history")

	config := &readline.Config{
		Prompt:          r.buildPrompt(),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.logger.Info("Assay REPL started with %d operations in the catalog. Type 'help' for available commands. Use TAB for completion.", len(r.session.Operations()))
	fmt.Println()

	// Main REPL loop - process commands until shutdown
	for {
		// Check if context is cancelled before each iteration
		select {
		case <-ctx.Done():
			r.logger.Info("REPL shutting down...")
			return nil
		default:
		}

		// Read input with interrupt and EOF handling
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue // Empty line on Ctrl+C, continue
			}
		} else if err == io.EOF {
			// Graceful shutdown on Ctrl+D
			r.logger.Info("Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue // Skip empty input
		}

		// Parse and execute command with error handling
		if err := r.executeCommand(input); err != nil {
			if err.Error() == "exit" {
				// Explicit exit command
				r.logger.Info("Goodbye!")
				return nil
			}
			// Display command execution errors to user
			r.logger.Error("Error: %v", err)
		} else if mutatesCatalog(input) {
			// Probes and notes change merged signatures, so completion
			// data has to be reloaded
			r.refreshAfterMutation(ctx)
		}

		fmt.Println() // Add spacing between commands
	}
}

// mutatesCatalog reports whether the input line runs a command that changes
// merged signatures or recorded results.
func mutatesCatalog(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}
	switch strings.ToLower(parts[0]) {
	case "probe", "note":
		return true
	}
	return false
}

// refreshAfterMutation reloads the operation cache and rebuilds the tab
// completer so new parameters become completable immediately.
func (r *REPL) refreshAfterMutation(ctx context.Context) {
	if err := r.session.RefreshOperations(ctx); err != nil {
		r.logger.Debug("Operation refresh failed: %v", err)
		return
	}
	if r.rl != nil {
		r.rl.Config.AutoComplete = r.createCompleter()
	}
}
