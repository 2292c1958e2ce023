// Package mcpserve exposes the assay toolkit as an MCP server speaking
// stdio, so coding agents can browse the catalog, validate arguments,
// probe operations, and generate documentation through tool calls.
//
// The package has two halves. Provider implements api.ToolProvider and
// carries the tool definitions and handlers; every handler goes through
// the central API layer rather than importing sibling components.
// Server wraps the provider in an MCP server and owns the transport
// lifecycle.
package mcpserve
