package agent

import (
	"bytes"
	"sort"
	"strings"

	"assay/internal/api"

	"github.com/chzyer/readline"
)

// NoSpaceDynamicCompleter is a custom completer that doesn't add trailing spaces
// for completions ending with special characters like "=".
// This is needed because readline's built-in PcItemDynamic always adds a trailing space.
type NoSpaceDynamicCompleter struct {
	Callback func(string) []string
	Children []readline.PrefixCompleterInterface
}

// GetName returns an empty name since this is a dynamic completer
func (n *NoSpaceDynamicCompleter) GetName() []rune {
	return nil
}

// GetChildren returns the child completers
func (n *NoSpaceDynamicCompleter) GetChildren() []readline.PrefixCompleterInterface {
	return n.Children
}

// SetChildren sets the child completers
func (n *NoSpaceDynamicCompleter) SetChildren(children []readline.PrefixCompleterInterface) {
	n.Children = children
}

// IsDynamic returns true since this is a dynamic completer
func (n *NoSpaceDynamicCompleter) IsDynamic() bool {
	return true
}

// GetDynamicNames returns completions WITHOUT trailing spaces for items ending with "="
func (n *NoSpaceDynamicCompleter) GetDynamicNames(line []rune) [][]rune {
	var names [][]rune
	for _, name := range n.Callback(string(line)) {
		// Don't add trailing space for completions ending with "="
		// This allows users to immediately type the value
		if strings.HasSuffix(name, "=") {
			names = append(names, []rune(name))
		} else {
			names = append(names, []rune(name+" "))
		}
	}
	return names
}

// Print implements the PrefixCompleterInterface
func (n *NoSpaceDynamicCompleter) Print(prefix string, level int, buf *bytes.Buffer) {
	// Dynamic completers don't print static names
}

// Do implements the AutoCompleter interface
func (n *NoSpaceDynamicCompleter) Do(line []rune, pos int) ([][]rune, int) {
	return doNoSpaceInternal(n, line, pos, line)
}

// doNoSpaceInternal handles the completion logic
func doNoSpaceInternal(p readline.PrefixCompleterInterface, line []rune, pos int, origLine []rune) ([][]rune, int) {
	// Trim leading spaces
	trimmed := line[:pos]
	for len(trimmed) > 0 && trimmed[0] == ' ' {
		trimmed = trimmed[1:]
	}

	var newLine [][]rune
	var offset int
	var lineCompleter readline.PrefixCompleterInterface
	goNext := false

	for _, child := range p.GetChildren() {
		var childNames [][]rune

		if dynChild, ok := child.(interface {
			IsDynamic() bool
			GetDynamicNames([]rune) [][]rune
		}); ok && dynChild.IsDynamic() {
			childNames = dynChild.GetDynamicNames(origLine)
		} else {
			childNames = [][]rune{child.GetName()}
		}

		for _, childName := range childNames {
			if len(trimmed) >= len(childName) {
				if hasPrefix(trimmed, childName) {
					if len(trimmed) == len(childName) {
						newLine = append(newLine, []rune{' '})
					} else {
						newLine = append(newLine, childName)
					}
					offset = len(childName)
					lineCompleter = child
					goNext = true
				}
			} else {
				if hasPrefix(childName, trimmed) {
					newLine = append(newLine, childName[len(trimmed):])
					offset = len(trimmed)
					lineCompleter = child
				}
			}
		}
	}

	if len(newLine) != 1 {
		return newLine, offset
	}

	tmpLine := make([]rune, 0, len(trimmed))
	for i := offset; i < len(trimmed); i++ {
		if trimmed[i] == ' ' {
			continue
		}
		tmpLine = append(tmpLine, trimmed[i:]...)
		return doNoSpaceInternal(lineCompleter, tmpLine, len(tmpLine), origLine)
	}

	if goNext {
		return doNoSpaceInternal(lineCompleter, nil, 0, origLine)
	}
	return newLine, offset
}

// hasPrefix checks if s starts with prefix
func hasPrefix(s, prefix []rune) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if s[i] != r {
			return false
		}
	}
	return true
}

// docsArgKeys are the key=value settings accepted by the docs command.
var docsArgKeys = []string{"author=", "formats=", "organization=", "out=", "version="}

// probeReservedKeys are probe settings that are peeled off the key=value
// list before the remainder becomes operation args.
var probeReservedKeys = []string{"confirmed=", "createSnapshot=", "notes=", "timeoutMs="}

// createCompleter creates the tab completion configuration using the command
// registry and the cached operation list.
func (r *REPL) createCompleter() *readline.PrefixCompleter {
	operations := r.session.Operations()

	// Plain operation ID completers for commands that take no further args
	idCompleter := make([]readline.PrefixCompleterInterface, len(operations))
	for i := range operations {
		idCompleter[i] = readline.PcItem(operations[i].ID)
	}

	// Operation completers with parameter completion for validate
	validateCompleter := make([]readline.PrefixCompleterInterface, len(operations))
	for i := range operations {
		// Capture operation for closure by taking address of slice element
		op := &operations[i]
		validateCompleter[i] = readline.PcItem(op.ID,
			&NoSpaceDynamicCompleter{Callback: r.createParamCompleter(op, nil)})
	}

	// Probe additionally completes the reserved execution settings
	probeCompleter := make([]readline.PrefixCompleterInterface, len(operations))
	for i := range operations {
		op := &operations[i]
		probeCompleter[i] = readline.PcItem(op.ID,
			&NoSpaceDynamicCompleter{Callback: r.createParamCompleter(op, probeReservedKeys)})
	}

	// Note subcommands complete operation ID then parameter name
	noteCompleter := make([]readline.PrefixCompleterInterface, len(operations))
	for i := range operations {
		op := &operations[i]
		noteCompleter[i] = readline.PcItem(op.ID,
			readline.PcItemDynamic(r.createParamNameCompleter(op)))
	}

	// Get all command names from registry
	commandNames := r.commandRegistry.AllCompletions()
	commandCompleters := make([]readline.PrefixCompleterInterface, len(commandNames))
	for i, name := range commandNames {
		commandCompleters[i] = readline.PcItem(name)
	}

	return readline.NewPrefixCompleter(
		// Commands with their specific completions
		readline.PcItem("help", commandCompleters...),
		readline.PcItem("?"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
		readline.PcItem("list",
			readline.PcItem("operations"),
			readline.PcItem("results"),
		),
		readline.PcItem("ls",
			readline.PcItem("operations"),
			readline.PcItem("results"),
		),
		readline.PcItem("describe", idCompleter...),
		readline.PcItem("desc", idCompleter...),
		readline.PcItem("search"),
		readline.PcItem("validate", validateCompleter...),
		readline.PcItem("probe", probeCompleter...),
		readline.PcItem("results", idCompleter...),
		readline.PcItem("note",
			readline.PcItem("save", noteCompleter...),
			readline.PcItem("rm", noteCompleter...),
		),
		readline.PcItem("docs",
			&NoSpaceDynamicCompleter{Callback: staticKeyCompleter(docsArgKeys)},
		),
	)
}

// createParamCompleter returns a dynamic completion function for an
// operation's signature parameters. Extra keys are appended after the
// parameters, and keys already present on the line are filtered out.
func (r *REPL) createParamCompleter(op *api.Operation, extraKeys []string) readline.DynamicCompleteFunc {
	return func(line string) []string {
		var keys []string
		if op != nil && op.Signature != nil {
			for _, param := range op.Signature.Parameters {
				keys = append(keys, param.Name+"=")
			}
			sort.Strings(keys)
		}
		keys = append(keys, extraKeys...)

		// Filter out keys that have already been specified
		var completions []string
		for _, key := range keys {
			if !strings.Contains(line, key) {
				completions = append(completions, key)
			}
		}

		return completions
	}
}

// createParamNameCompleter returns a dynamic completion function for bare
// parameter names, used by the note subcommands.
func (r *REPL) createParamNameCompleter(op *api.Operation) readline.DynamicCompleteFunc {
	return func(line string) []string {
		if op == nil || op.Signature == nil || len(op.Signature.Parameters) == 0 {
			return []string{}
		}

		var names []string
		for _, param := range op.Signature.Parameters {
			names = append(names, param.Name)
		}
		sort.Strings(names)

		return names
	}
}

// staticKeyCompleter returns a completion function over a fixed key set,
// filtering out keys already present on the line.
func staticKeyCompleter(keys []string) func(string) []string {
	return func(line string) []string {
		var completions []string
		for _, key := range keys {
			if !strings.Contains(line, key) {
				completions = append(completions, key)
			}
		}
		return completions
	}
}

// filterInput filters input characters for readline
func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
