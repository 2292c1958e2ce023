package config

import "strings"

// AssayConfig is the top-level configuration structure for assay.
type AssayConfig struct {
	// Host describes how to reach the hosting application's command registry
	Host HostConfig `yaml:"host,omitempty"`

	// Workspace is the directory the execution engine snapshots and observes
	Workspace string `yaml:"workspace,omitempty"`

	// Execution carries the engine defaults applied when a probe does not
	// override them
	Execution ExecutionDefaults `yaml:"execution,omitempty"`

	// Docs configures documentation package generation and export
	Docs DocsConfig `yaml:"docs,omitempty"`

	// Risk configures the keyword tables used to classify operations
	Risk RiskConfig `yaml:"risk,omitempty"`
}

const (
	// HostTransportStdio launches the host as a subprocess and speaks MCP
	// over its stdin/stdout.
	HostTransportStdio = "stdio"
	// HostTransportStreamableHTTP connects to a host URL over the
	// streamable HTTP transport.
	HostTransportStreamableHTTP = "streamable-http"
)

// HostConfig describes the hosting application connection.
// Command selects the stdio transport; URL selects streamable HTTP.
type HostConfig struct {
	Command string   `yaml:"command,omitempty"` // Subprocess to launch for stdio transport
	Args    []string `yaml:"args,omitempty"`    // Arguments for the subprocess
	Env     []string `yaml:"env,omitempty"`     // Extra environment (KEY=VALUE) for the subprocess
	URL     string   `yaml:"url,omitempty"`     // Endpoint for the streamable HTTP transport
	Token   string   `yaml:"token,omitempty"`   // Bearer token for the HTTP transport
}

// ParseHostTarget converts a host target given on the command line into a
// HostConfig. Targets starting with http:// or https:// select the HTTP
// transport; anything else is treated as a command line for the stdio
// transport, split on whitespace.
func ParseHostTarget(target string) HostConfig {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return HostConfig{URL: target}
	}
	fields := strings.Fields(target)
	if len(fields) == 0 {
		return HostConfig{}
	}
	return HostConfig{Command: fields[0], Args: fields[1:]}
}

// ExecutionDefaults defines the engine behavior applied when probe options
// leave a field unset.
type ExecutionDefaults struct {
	TimeoutMs           int64 `yaml:"timeoutMs,omitempty"`           // Default probe timeout in milliseconds (default: 30000)
	CreateSnapshot      bool  `yaml:"createSnapshot,omitempty"`      // Snapshot the workspace before every probe
	RequireConfirmation bool  `yaml:"requireConfirmation,omitempty"` // Gate destructive operations behind confirmation
}

// DocsConfig configures documentation package generation.
type DocsConfig struct {
	ExportDir    string   `yaml:"exportDir,omitempty"`    // Directory export artifacts are written to (default: ./assay-docs)
	Formats      []string `yaml:"formats,omitempty"`      // Formats to render (md, json, yaml, txt)
	Author       string   `yaml:"author,omitempty"`       // Stamped into package metadata
	Organization string   `yaml:"organization,omitempty"` // Stamped into package metadata
	Version      string   `yaml:"version,omitempty"`      // Package version (default: 0.1.0)
}

// RiskConfig carries the keyword tables for risk classification.
// An operation id or label containing a destructive keyword classifies as
// destructive, a moderate keyword as moderate, anything else as safe.
type RiskConfig struct {
	Destructive []string `yaml:"destructive,omitempty"`
	Moderate    []string `yaml:"moderate,omitempty"`
}
