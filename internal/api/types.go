package api

import (
	"context"
	"time"
)

// CatalogUpdateEvent represents a change in the set of known operations,
// published after a discovery pass changes the catalog.
type CatalogUpdateEvent struct {
	Type       string    `json:"type"` // "feed_ingested", "host_discovered"
	Operations []string  `json:"operations"` // List of operation ids touched
	Timestamp  time.Time `json:"timestamp"`
	Error      string    `json:"error,omitempty"`
}

// CallToolResult represents the result of a tool call on a tool surface
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolMetadata describes a tool that can be exposed
type ToolMetadata struct {
	Name        string // e.g., "assay_operation_list", "assay_note_save"
	Description string
	Parameters  []ParameterMetadata
}

// ParameterMetadata describes a tool parameter
type ParameterMetadata struct {
	Name        string
	Type        string // "string", "number", "boolean", "object"
	Required    bool
	Description string
	Default     interface{}
}

// ToolProvider interface - implemented by the tool-surface packages
type ToolProvider interface {
	// Returns all tools this provider offers
	GetTools() []ToolMetadata

	// Executes a tool by name
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}

// CatalogUpdateSubscriber interface for components that want to receive
// catalog update events
type CatalogUpdateSubscriber interface {
	OnCatalogUpdated(event CatalogUpdateEvent)
}
