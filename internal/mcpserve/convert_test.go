package mcpserve

import (
	"context"
	"fmt"
	"testing"

	"assay/internal/api"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToMCPSchema(t *testing.T) {
	schema := convertToMCPSchema([]api.ParameterMetadata{
		{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
		{Name: "limit", Type: "number", Required: false, Description: "Maximum matches", Default: 10},
	})

	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"operationId"}, schema.Required)

	limit := schema.Properties["limit"].(map[string]interface{})
	assert.Equal(t, "number", limit["type"])
	assert.Equal(t, 10, limit["default"])

	operationID := schema.Properties["operationId"].(map[string]interface{})
	assert.Equal(t, "Operation identifier", operationID["description"])
	assert.NotContains(t, operationID, "default")
}

func TestConvertToMCPResult_StringAndStructuredContent(t *testing.T) {
	result := convertToMCPResult(&api.CallToolResult{
		Content: []interface{}{
			"plain text",
			map[string]interface{}{"total": 2},
		},
		IsError: true,
	})

	require.Len(t, result.Content, 2)
	assert.True(t, result.IsError)

	first, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "plain text", first.Text)

	second, ok := result.Content[1].(mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"total":2}`, second.Text)
}

// fixedProvider returns a canned result and records the args it was
// handed, standing in for the real provider in handler tests.
type fixedProvider struct {
	result   *api.CallToolResult
	err      error
	lastTool string
	lastArgs map[string]interface{}
}

func (f *fixedProvider) GetTools() []api.ToolMetadata { return nil }

func (f *fixedProvider) ExecuteTool(_ context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	f.lastTool = toolName
	f.lastArgs = args
	return f.result, f.err
}

func TestCreateToolHandler_PassesArguments(t *testing.T) {
	provider := &fixedProvider{result: &api.CallToolResult{Content: []interface{}{"ok"}}}
	handler := createToolHandler(provider, "assay_operation_list")

	var req mcp.CallToolRequest
	req.Params.Name = "assay_operation_list"
	req.Params.Arguments = map[string]interface{}{"category": "fs"}

	result, err := handler(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	assert.False(t, result.IsError)
	assert.Equal(t, "assay_operation_list", provider.lastTool)
	assert.Equal(t, map[string]interface{}{"category": "fs"}, provider.lastArgs)
}

func TestCreateToolHandler_ProviderErrorBecomesErrorResult(t *testing.T) {
	provider := &fixedProvider{err: fmt.Errorf("unknown tool: assay_bogus")}
	handler := createToolHandler(provider, "assay_bogus")

	result, err := handler(context.Background(), mcp.CallToolRequest{})

	require.NoError(t, err)
	require.True(t, result.IsError)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Tool execution failed")
}
