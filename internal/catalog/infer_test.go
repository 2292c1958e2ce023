package catalog

import (
	"testing"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferSignature_TypedHints(t *testing.T) {
	metadata := map[string]interface{}{
		"parameters": []interface{}{
			map[string]interface{}{
				"name":        "path",
				"type":        "string",
				"required":    true,
				"description": "Target path",
			},
			map[string]interface{}{
				"name":    "limit",
				"type":    "number",
				"default": float64(100),
			},
		},
		"returnType": "string",
	}

	sig := inferSignature("fs_read", "", metadata)
	require.NotNil(t, sig)

	require.Len(t, sig.Parameters, 2)
	assert.Equal(t, "path", sig.Parameters[0].Name)
	assert.Equal(t, api.TypeString, sig.Parameters[0].Type)
	assert.True(t, sig.Parameters[0].Required)
	assert.Equal(t, api.SourceTypes, sig.Parameters[0].Source)
	assert.Equal(t, float64(100), sig.Parameters[1].Default)

	assert.Equal(t, api.ConfidenceMedium, sig.Confidence)
	assert.Equal(t, []api.ParameterSource{api.SourceTypes}, sig.Sources)
	assert.Equal(t, "string", sig.ReturnType)
	assert.False(t, sig.ResearchedAt.IsZero())
}

func TestInferSignature_TypedHintsDuplicateNameReplaces(t *testing.T) {
	metadata := map[string]interface{}{
		"parameters": []interface{}{
			map[string]interface{}{"name": "path", "type": "string"},
			map[string]interface{}{"name": "path", "type": "array"},
		},
	}

	sig := inferSignature("fs_read", "", metadata)
	require.NotNil(t, sig)
	require.Len(t, sig.Parameters, 1)
	assert.Equal(t, api.TypeArray, sig.Parameters[0].Type)
}

func TestInferSignature_FromDocs(t *testing.T) {
	description := "Reads `path` starting at <offset>. The `path` must exist."

	sig := inferSignature("editor.readRegion", description, nil)
	require.NotNil(t, sig)

	require.Len(t, sig.Parameters, 2, "duplicate mentions collapse")
	assert.Equal(t, "path", sig.Parameters[0].Name)
	assert.Equal(t, api.TypeString, sig.Parameters[0].Type)
	assert.Equal(t, api.SourceDocs, sig.Parameters[0].Source)
	assert.Equal(t, "offset", sig.Parameters[1].Name)

	assert.Equal(t, api.ConfidenceLow, sig.Confidence)
}

func TestInferSignature_Heuristics(t *testing.T) {
	tests := []struct {
		id       string
		expected []string
	}{
		{"fs_read", []string{"path"}},
		{"fs_write", []string{"path", "content"}},
		{"editor.searchSymbols", []string{"query"}},
		{"fs_delete", []string{"path"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			sig := inferSignature(tt.id, "", nil)
			require.NotNil(t, sig)
			require.Len(t, sig.Parameters, len(tt.expected))
			for i, name := range tt.expected {
				assert.Equal(t, name, sig.Parameters[i].Name)
				assert.Equal(t, api.SourceHeuristic, sig.Parameters[i].Source)
			}
			assert.Equal(t, api.ConfidenceLow, sig.Confidence)
		})
	}
}

func TestInferSignature_NothingInferred(t *testing.T) {
	assert.Nil(t, inferSignature("x.y", "", nil))
	assert.Nil(t, inferSignature("app.restart", "Restarts the app.", nil))
}

func TestInferSignature_AsyncOnly(t *testing.T) {
	sig := inferSignature("x.y", "", map[string]interface{}{"async": true})
	require.NotNil(t, sig)
	assert.True(t, sig.Async)
	assert.Empty(t, sig.Parameters)
}

func TestGuessTypeFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected api.ParameterType
	}{
		{"path", api.TypeString},
		{"fileName", api.TypeString},
		{"limit", api.TypeNumber},
		{"timeoutMs", api.TypeNumber},
		{"isRecursive", api.TypeBoolean},
		{"force", api.TypeBoolean},
		{"payload", api.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guessTypeFromName(tt.name))
		})
	}
}
