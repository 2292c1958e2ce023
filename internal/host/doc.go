// Package host provides the call interface to a hosting application's
// command registry.
//
// The Invoker interface abstracts over transports: StdioInvoker spawns
// the host as a subprocess and speaks MCP over stdin/stdout, HTTPInvoker
// connects to a streamable-http endpoint (with optional bearer token
// auth), and ScriptedInvoker answers from a canned script for tests and
// offline use. Discovery maps each host command to a DiscoveredOperation
// carrying whatever typed parameter hints the host's input schema
// declares; the catalog turns those hints into inferred signatures.
//
// MCP protocol types stay inside this package. Callers work with
// DiscoveredOperation and plain Go values only.
package host
