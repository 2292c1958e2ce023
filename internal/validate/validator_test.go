package validate

import (
	"testing"

	"assay/internal/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSignature() *api.Signature {
	return &api.Signature{
		Parameters: []api.Parameter{
			{Name: "path", Type: api.TypeString, Required: true, Source: api.SourceManual, Rules: []string{"nonEmpty"}},
			{Name: "retries", Type: api.TypeNumber, Source: api.SourceTypes, Rules: []string{"min:0", "max:5"}},
			{Name: "format", Type: api.TypeString, Source: api.SourceManual, Rules: []string{"oneOf:json|yaml"}},
			{Name: "recursive", Type: api.TypeBoolean, Source: api.SourceHeuristic},
		},
	}
}

func TestValidate_AllChecksPass(t *testing.T) {
	result := Validate(sampleSignature(), map[string]interface{}{
		"path":      "/tmp/data",
		"retries":   3,
		"format":    "json",
		"recursive": true,
	}, api.ExecutionContext{})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidate_MissingRequiredNamesParameter(t *testing.T) {
	result := Validate(sampleSignature(), map[string]interface{}{}, api.ExecutionContext{})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1, "exactly one error for the single missing required parameter")
	assert.Equal(t, "path", result.Errors[0].Parameter)
	assert.Contains(t, result.Errors[0].Message, "required")
}

func TestValidate_AggregatesAllErrors(t *testing.T) {
	// Four independent failures: wrong type, rule violation, unknown
	// key, and missing required parameter. All must be reported.
	result := Validate(sampleSignature(), map[string]interface{}{
		"retries":   "three",
		"format":    "xml",
		"surpriseA": 1,
	}, api.ExecutionContext{})

	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)

	params := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		params = append(params, e.Parameter)
	}
	assert.Contains(t, params, "path")
	assert.Contains(t, params, "retries")
	assert.Contains(t, params, "format")
	assert.Contains(t, params, "surpriseA")
}

func TestValidate_UnknownKeysDoNotSuppressOtherChecks(t *testing.T) {
	result := Validate(sampleSignature(), map[string]interface{}{
		"path":    "/tmp/data",
		"bogus":   true,
		"alsoBad": "x",
	}, api.ExecutionContext{})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	// Unknown keys are reported in a stable order
	assert.Equal(t, "alsoBad", result.Errors[0].Parameter)
	assert.Equal(t, "bogus", result.Errors[1].Parameter)
}

func TestValidate_TypeCompatibility(t *testing.T) {
	tests := []struct {
		name      string
		paramType api.ParameterType
		value     interface{}
		wantValid bool
	}{
		{"string ok", api.TypeString, "hello", true},
		{"string rejects number", api.TypeString, 42, false},
		{"number accepts int", api.TypeNumber, 42, true},
		{"number accepts float", api.TypeNumber, 4.2, true},
		{"number rejects string", api.TypeNumber, "42", false},
		{"boolean ok", api.TypeBoolean, false, true},
		{"boolean rejects string", api.TypeBoolean, "true", false},
		{"object accepts map", api.TypeObject, map[string]interface{}{"k": "v"}, true},
		{"object rejects slice", api.TypeObject, []interface{}{1}, false},
		{"array accepts slice", api.TypeArray, []interface{}{1, 2}, true},
		{"array rejects map", api.TypeArray, map[string]interface{}{}, false},
		{"any accepts map", api.TypeAny, map[string]interface{}{}, true},
		{"any accepts nil", api.TypeAny, nil, true},
		{"unknown accepts anything", api.TypeUnknown, struct{}{}, true},
		{"function rejects values", api.TypeFunction, "cb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &api.Signature{
				Parameters: []api.Parameter{
					{Name: "value", Type: tt.paramType},
				},
			}
			result := Validate(sig, map[string]interface{}{"value": tt.value}, api.ExecutionContext{})
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name      string
		rule      string
		value     interface{}
		wantValid bool
	}{
		{"nonEmpty ok", "nonEmpty", "text", true},
		{"nonEmpty blank string", "nonEmpty", "   ", false},
		{"nonEmpty empty array", "nonEmpty", []interface{}{}, false},
		{"min ok", "min:1", 5, true},
		{"min violated", "min:10", 5, false},
		{"max ok", "max:10", 5.5, true},
		{"max violated", "max:2", 5, false},
		{"minLength ok", "minLength:3", "abcd", true},
		{"minLength violated", "minLength:5", "abc", false},
		{"maxLength ok", "maxLength:5", "abc", true},
		{"maxLength violated", "maxLength:2", "abc", false},
		{"maxLength on array", "maxLength:1", []interface{}{1, 2}, false},
		{"pattern ok", "pattern:^[a-z]+$", "abc", true},
		{"pattern violated", "pattern:^[a-z]+$", "ABC", false},
		{"oneOf ok", "oneOf:json|yaml", "yaml", true},
		{"oneOf violated", "oneOf:json|yaml", "toml", false},
		{"oneOf renders numbers", "oneOf:1|2|3", 2, true},
		{"startsWith ok", "startsWith:/", "/etc/hosts", true},
		{"startsWith violated", "startsWith:/", "etc/hosts", false},
		{"endsWith ok", "endsWith:.json", "out.json", true},
		{"endsWith violated", "endsWith:.json", "out.yaml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &api.Signature{
				Parameters: []api.Parameter{
					{Name: "value", Type: api.TypeAny, Rules: []string{tt.rule}},
				},
			}
			result := Validate(sig, map[string]interface{}{"value": tt.value}, api.ExecutionContext{})
			assert.Equal(t, tt.wantValid, result.Valid, "errors: %v", result.Errors)
		})
	}
}

func TestValidate_MalformedRulesNeverPanic(t *testing.T) {
	malformed := []string{
		"min",
		"min:abc",
		"maxLength:x",
		"pattern:[unclosed",
		"pattern:",
		"oneOf:",
		"frobnicate",
		"frobnicate:7",
		"context:",
	}

	for _, rule := range malformed {
		t.Run(rule, func(t *testing.T) {
			sig := &api.Signature{
				Parameters: []api.Parameter{
					{Name: "value", Type: api.TypeAny, Rules: []string{rule}},
				},
			}

			var result api.ValidationResult
			assert.NotPanics(t, func() {
				result = Validate(sig, map[string]interface{}{"value": "x"}, api.ExecutionContext{})
			})
			assert.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, "value", result.Errors[0].Parameter)
		})
	}
}

func TestValidate_ContextRule(t *testing.T) {
	sig := &api.Signature{
		Parameters: []api.Parameter{
			{Name: "target", Type: api.TypeString, Rules: []string{"context:snapshots"}},
		},
	}
	args := map[string]interface{}{"target": "workspace"}

	withCap := Validate(sig, args, api.ExecutionContext{
		Capabilities: map[string]bool{"snapshots": true},
	})
	assert.True(t, withCap.Valid)

	withoutCap := Validate(sig, args, api.ExecutionContext{})
	assert.False(t, withoutCap.Valid)
	require.Len(t, withoutCap.Errors, 1)
	assert.Contains(t, withoutCap.Errors[0].Message, "snapshots")
}

func TestValidate_OptionalWithDefaultMayBeOmitted(t *testing.T) {
	sig := &api.Signature{
		Parameters: []api.Parameter{
			{Name: "encoding", Type: api.TypeString, Required: false, Default: "utf-8"},
		},
	}

	result := Validate(sig, map[string]interface{}{}, api.ExecutionContext{})
	assert.True(t, result.Valid)
}

func TestValidate_NilSignature(t *testing.T) {
	// Nothing researched: an empty argument set passes, any provided
	// argument is an unknown key.
	empty := Validate(nil, map[string]interface{}{}, api.ExecutionContext{})
	assert.True(t, empty.Valid)

	provided := Validate(nil, map[string]interface{}{"path": "/x"}, api.ExecutionContext{})
	assert.False(t, provided.Valid)
	require.Len(t, provided.Errors, 1)
	assert.Equal(t, "path", provided.Errors[0].Parameter)
}
