package host

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"assay/pkg/logging"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// baseInvoker provides the MCP protocol operations shared by the stdio
// and streamable-http transports.
type baseInvoker struct {
	client    client.MCPClient
	mu        sync.RWMutex
	connected bool
}

// checkConnected verifies the client is connected. Caller must hold at
// least a read lock on mu.
func (b *baseInvoker) checkConnected() error {
	if !b.connected || b.client == nil {
		return fmt.Errorf("host not connected")
	}
	return nil
}

func (b *baseInvoker) closeClient() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.connected || b.client == nil {
		return nil
	}

	err := b.client.Close()
	b.connected = false
	b.client = nil

	return err
}

// initialize performs the MCP handshake on a freshly created client and
// records it on success. Caller must hold the write lock on mu.
func (b *baseInvoker) initialize(ctx context.Context, mcpClient client.MCPClient, label string) error {
	initResult, err := mcpClient.Initialize(ctx, mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: "2024-11-05",
			ClientInfo: mcp.Implementation{
				Name:    "assay",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	})
	if err != nil {
		if closeErr := mcpClient.Close(); closeErr != nil {
			logging.Debug("Host", "Error closing failed client for %s: %v", label, closeErr)
		}
		return fmt.Errorf("failed to initialize MCP protocol: %w", err)
	}

	b.client = mcpClient
	b.connected = true

	logging.Debug("Host", "Connected to %s (server: %s %s)",
		label, initResult.ServerInfo.Name, initResult.ServerInfo.Version)
	return nil
}

func (b *baseInvoker) listOperations(ctx context.Context) ([]DiscoveredOperation, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkConnected(); err != nil {
		return nil, err
	}

	result, err := b.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list host commands: %w", err)
	}

	operations := make([]DiscoveredOperation, 0, len(result.Tools))
	for _, tool := range result.Tools {
		operations = append(operations, toolToOperation(tool))
	}
	return operations, nil
}

func (b *baseInvoker) invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkConnected(); err != nil {
		return nil, err
	}

	result, err := b.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      id,
			Arguments: args,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", id, err)
	}

	return flattenResult(result)
}

// toolToOperation maps an MCP tool declaration to a discovered operation,
// carrying over whatever typed hints the input schema provides. Parameters
// are sorted by name so repeated discovery passes stay deterministic.
func toolToOperation(tool mcp.Tool) DiscoveredOperation {
	op := DiscoveredOperation{
		ID:          tool.Name,
		Description: tool.Description,
	}

	required := make(map[string]bool)
	for _, name := range tool.InputSchema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(tool.InputSchema.Properties))
	for name := range tool.InputSchema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		param := DiscoveredParameter{
			Name:     name,
			Required: required[name],
		}
		if prop, ok := tool.InputSchema.Properties[name].(map[string]interface{}); ok {
			if t, ok := prop["type"].(string); ok {
				param.Type = t
			}
			if d, ok := prop["description"].(string); ok {
				param.Description = d
			}
			param.Default = prop["default"]
			if enum, ok := prop["enum"].([]interface{}); ok {
				for _, value := range enum {
					param.Enum = append(param.Enum, fmt.Sprintf("%v", value))
				}
			}
		}
		op.Parameters = append(op.Parameters, param)
	}

	return op
}

// flattenResult reduces a tool call result to a plain value. Text content
// that parses as JSON is returned structured; anything else comes back as
// a string. IsError results become Go errors carrying the host's message.
func flattenResult(result *mcp.CallToolResult) (interface{}, error) {
	var texts []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			texts = append(texts, textContent.Text)
		}
	}

	if result.IsError {
		if len(texts) > 0 {
			return nil, fmt.Errorf("host rejected call: %s", strings.Join(texts, "; "))
		}
		return nil, fmt.Errorf("host rejected call")
	}

	switch len(texts) {
	case 0:
		return nil, nil
	case 1:
		var parsed interface{}
		if err := json.Unmarshal([]byte(texts[0]), &parsed); err == nil {
			return parsed, nil
		}
		return texts[0], nil
	default:
		return strings.Join(texts, "\n"), nil
	}
}
