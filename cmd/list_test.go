package cmd

import (
	"reflect"
	"testing"
)

func TestMatchesWildcard(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		pattern  string
		expected bool
	}{
		// Empty pattern matches everything
		{
			name:     "empty pattern matches any name",
			input:    "fs.read",
			pattern:  "",
			expected: true,
		},
		// Exact match
		{
			name:     "exact match",
			input:    "fs.read",
			pattern:  "fs.read",
			expected: true,
		},
		{
			name:     "exact match fails on different name",
			input:    "fs.read",
			pattern:  "fs.write",
			expected: false,
		},
		// Prefix wildcard
		{
			name:     "prefix wildcard matches",
			input:    "fs.read",
			pattern:  "fs.*",
			expected: true,
		},
		{
			name:     "prefix wildcard fails",
			input:    "net.fetch",
			pattern:  "fs.*",
			expected: false,
		},
		// Suffix wildcard
		{
			name:     "suffix wildcard matches",
			input:    "workspace.files.list",
			pattern:  "*.list",
			expected: true,
		},
		{
			name:     "suffix wildcard fails",
			input:    "workspace.files.delete",
			pattern:  "*.list",
			expected: false,
		},
		// Contains wildcard
		{
			name:     "contains wildcard matches",
			input:    "workspace.files.list",
			pattern:  "*files*",
			expected: true,
		},
		{
			name:     "contains wildcard fails",
			input:    "workspace.session.list",
			pattern:  "*files*",
			expected: false,
		},
		// Question mark single character
		{
			name:     "question mark matches single character",
			input:    "probe1",
			pattern:  "probe?",
			expected: true,
		},
		{
			name:     "question mark fails on multiple characters",
			input:    "probe12",
			pattern:  "probe?",
			expected: false,
		},
		// Complex patterns
		{
			name:     "complex pattern matches",
			input:    "fs.read.status",
			pattern:  "fs.*.status",
			expected: true,
		},
		// Invalid pattern
		{
			name:     "invalid pattern never matches",
			input:    "fs.read",
			pattern:  "[",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchesWildcard(tt.input, tt.pattern)
			if result != tt.expected {
				t.Errorf("matchesWildcard(%q, %q) = %v, expected %v",
					tt.input, tt.pattern, result, tt.expected)
			}
		})
	}
}

func TestOperationFilterIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		filter   operationFilter
		expected bool
	}{
		{
			name:     "empty filter",
			filter:   operationFilter{},
			expected: true,
		},
		{
			name:     "pattern set",
			filter:   operationFilter{Pattern: "fs.*"},
			expected: false,
		},
		{
			name:     "category set",
			filter:   operationFilter{Category: "files"},
			expected: false,
		},
		{
			name:     "risk set",
			filter:   operationFilter{Risk: "safe"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.expected {
				t.Errorf("IsEmpty() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMatchesOperation(t *testing.T) {
	operation := map[string]interface{}{
		"id":        "fs.delete",
		"category":  "Files",
		"riskLevel": "destructive",
	}

	tests := []struct {
		name     string
		filter   operationFilter
		expected bool
	}{
		// No filters - matches everything
		{
			name:     "no filters matches everything",
			filter:   operationFilter{},
			expected: true,
		},
		// Pattern only
		{
			name:     "pattern only - matches",
			filter:   operationFilter{Pattern: "fs.*"},
			expected: true,
		},
		{
			name:     "pattern only - no match",
			filter:   operationFilter{Pattern: "net.*"},
			expected: false,
		},
		// Category is case-insensitive
		{
			name:     "category case-insensitive match",
			filter:   operationFilter{Category: "files"},
			expected: true,
		},
		{
			name:     "category no match",
			filter:   operationFilter{Category: "network"},
			expected: false,
		},
		// Risk level
		{
			name:     "risk matches",
			filter:   operationFilter{Risk: "destructive"},
			expected: true,
		},
		{
			name:     "risk no match",
			filter:   operationFilter{Risk: "safe"},
			expected: false,
		},
		// Combined filters - all must match
		{
			name:     "all filters match",
			filter:   operationFilter{Pattern: "fs.*", Category: "files", Risk: "destructive"},
			expected: true,
		},
		{
			name:     "pattern matches but risk does not",
			filter:   operationFilter{Pattern: "fs.*", Risk: "safe"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchesOperation(operation, tt.filter)
			if result != tt.expected {
				t.Errorf("matchesOperation(%+v, %+v) = %v, expected %v",
					operation, tt.filter, result, tt.expected)
			}
		})
	}
}

func TestFilterOperationPayload(t *testing.T) {
	payload := map[string]interface{}{
		"operations": []interface{}{
			map[string]interface{}{"id": "fs.read", "category": "files", "riskLevel": "safe"},
			map[string]interface{}{"id": "fs.delete", "category": "files", "riskLevel": "destructive"},
			map[string]interface{}{"id": "net.fetch", "category": "network", "riskLevel": "moderate"},
		},
		"total": 3,
	}

	t.Run("empty filter returns payload unchanged", func(t *testing.T) {
		result := filterOperationPayload(payload, "operations", operationFilter{})
		if !reflect.DeepEqual(result, payload) {
			t.Errorf("expected unchanged payload, got %+v", result)
		}
	})

	t.Run("filters by pattern and rebuilds total", func(t *testing.T) {
		result := filterOperationPayload(payload, "operations", operationFilter{Pattern: "fs.*"})

		wrapper, ok := result.(map[string]interface{})
		if !ok {
			t.Fatalf("expected map result, got %T", result)
		}
		items, ok := wrapper["operations"].([]interface{})
		if !ok {
			t.Fatalf("expected operations array, got %T", wrapper["operations"])
		}
		if len(items) != 2 {
			t.Errorf("expected 2 operations, got %d", len(items))
		}
		if wrapper["total"] != 2 {
			t.Errorf("expected total 2, got %v", wrapper["total"])
		}
	})

	t.Run("filters can empty the result", func(t *testing.T) {
		result := filterOperationPayload(payload, "operations", operationFilter{Risk: "safe", Category: "network"})

		wrapper := result.(map[string]interface{})
		items := wrapper["operations"].([]interface{})
		if len(items) != 0 {
			t.Errorf("expected 0 operations, got %d", len(items))
		}
	})

	t.Run("non-map payload is returned unchanged", func(t *testing.T) {
		raw := []interface{}{"not", "a", "wrapper"}
		result := filterOperationPayload(raw, "operations", operationFilter{Pattern: "fs.*"})
		if !reflect.DeepEqual(result, raw) {
			t.Errorf("expected unchanged payload, got %+v", result)
		}
	})

	t.Run("missing array key is returned unchanged", func(t *testing.T) {
		raw := map[string]interface{}{"matches": []interface{}{}}
		result := filterOperationPayload(raw, "operations", operationFilter{Pattern: "fs.*"})
		if !reflect.DeepEqual(result, raw) {
			t.Errorf("expected unchanged payload, got %+v", result)
		}
	})
}
