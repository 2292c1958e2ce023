package commands

import (
	"context"
	"testing"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
)

func TestValidateCommand_Execute_ValidArgs(t *testing.T) {
	session := &mockSession{
		callResult: &api.CallToolResult{
			Content: []interface{}{api.ValidationResult{Valid: true}},
		},
	}
	output := &mockOutput{}
	cmd := NewValidateCommand(session, output)

	err := cmd.Execute(context.Background(), []string{"fs.read", "path=/etc/hosts"})
	assert.NoError(t, err)

	assert.Equal(t, "assay_operation_validate", session.lastTool)
	assert.Equal(t, "fs.read", session.lastArgs["operationId"])
	proposed, ok := session.lastArgs["args"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "/etc/hosts", proposed["path"])

	assert.True(t, output.contains("SUCCESS: Arguments are valid for %s"))
}

func TestValidateCommand_Execute_InvalidArgs(t *testing.T) {
	session := &mockSession{
		callResult: &api.CallToolResult{
			Content: []interface{}{api.ValidationResult{
				Valid: false,
				Errors: []api.ValidationError{
					{Parameter: "path", Message: "required parameter missing"},
					{Parameter: "depth", Message: "expected number, got string"},
				},
			}},
		},
	}
	output := &mockOutput{}
	cmd := NewValidateCommand(session, output)

	err := cmd.Execute(context.Background(), []string{"fs.read", "depth=deep"})
	assert.NoError(t, err)

	assert.True(t, output.contains("Arguments are invalid for %s:"))
	assert.True(t, output.contains("  - %s: %s"))
	assert.False(t, output.contains("SUCCESS: Arguments are valid for %s"))
}

func TestValidateCommand_Execute_UnknownOperation(t *testing.T) {
	session := &mockSession{
		callResult: &api.CallToolResult{
			Content: []interface{}{"Validation failed: operation missing.op not found"},
			IsError: true,
		},
	}
	output := &mockOutput{}
	cmd := NewValidateCommand(session, output)

	err := cmd.Execute(context.Background(), []string{"missing.op"})
	assert.NoError(t, err)
	assert.True(t, output.contains("ERROR: %s"))
}

func TestValidateCommand_Execute_RequiresOperationID(t *testing.T) {
	cmd := NewValidateCommand(&mockSession{}, &mockOutput{})

	err := cmd.Execute(context.Background(), []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}
