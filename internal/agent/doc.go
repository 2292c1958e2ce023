// Package agent provides the interactive REPL for exploring a command catalog.
//
// The REPL drives the in-process tool provider (the same surface the MCP
// server exposes) through a Session that caches the discovered operations for
// tab completion and lookup. Commands are self-contained and extensible
// through the commands.Command interface.
//
// # Quick Start
//
//	logger := agent.NewLogger(true, true)
//	session := agent.NewSession(provider, logger)
//	repl := agent.NewREPL(session, logger)
//	if err := repl.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Core Components
//
// ## Session
//
// The Session wraps an api.ToolProvider and keeps a thread-safe cache of the
// catalog operations. Tool payloads are decoded back into typed records so
// commands and completers work with api.Operation values rather than raw maps.
//
// ## REPL
//
// Interactive Read-Eval-Print Loop with a modular command system, tab
// completion for operation ids and signature parameters, and persistent
// command history.
//
// Available commands:
//   - help (?): Command documentation and usage
//   - list (ls): List catalog operations or recorded probes
//   - describe (desc): Merged signature detail for one operation
//   - search (find): Full-text search over the catalog
//   - validate: Check args against an operation signature
//   - probe: Execute an operation through the safe execution engine
//   - results: Recorded probe outcomes
//   - note: Save or remove manual signature entries
//   - docs: Generate and export the documentation package
//   - exit (quit): Graceful session termination
//
// ## Logger
//
// Formatted logging with user-facing output (no timestamps) separated from
// status messages, optional ANSI colors, and custom writers for tests.
package agent
