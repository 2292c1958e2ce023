package formatting

import (
	"testing"

	"assay/internal/api"
)

func TestPrettyJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			name:     "simple object",
			input:    map[string]interface{}{"id": "fs.read", "count": 42},
			expected: "{\n  \"count\": 42,\n  \"id\": \"fs.read\"\n}",
		},
		{
			name:     "array",
			input:    []string{"a", "b", "c"},
			expected: "[\n  \"a\",\n  \"b\",\n  \"c\"\n]",
		},
		{
			name:     "string",
			input:    "hello world",
			expected: "\"hello world\"",
		},
		{
			name:     "nil",
			input:    nil,
			expected: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PrettyJSON(tt.input)
			if result != tt.expected {
				t.Errorf("PrettyJSON() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestPrettyJSONWithInvalidData(t *testing.T) {
	// Channels cannot be marshaled; the fallback must still say something
	ch := make(chan int)
	result := PrettyJSON(ch)

	if result == "" {
		t.Error("PrettyJSON() should not return empty string for invalid data")
	}
}

func TestOutcomeWord(t *testing.T) {
	tests := []struct {
		name     string
		outcome  api.ExecutionOutcome
		expected string
	}{
		{
			name:     "success",
			outcome:  api.ExecutionOutcome{Success: true},
			expected: "success",
		},
		{
			name: "timeout",
			outcome: api.ExecutionOutcome{
				Error: &api.ExecutionError{Kind: api.ErrorKindTimeout},
			},
			expected: "timeout",
		},
		{
			name:     "failure without error detail",
			outcome:  api.ExecutionOutcome{},
			expected: "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcomeWord(tt.outcome); got != tt.expected {
				t.Errorf("outcomeWord() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"9f2c1a4e-8b77-4d21-a0c3-5f6e7d8a9b0c", "9f2c1a4e"},
		{"r-42", "r"},
		{"short", "short"},
		{"averylongidentifierwithnodashes", "averylongide"},
	}

	for _, tt := range tests {
		if got := shortID(tt.input); got != tt.expected {
			t.Errorf("shortID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCategoryPath(t *testing.T) {
	withSub := api.Operation{Category: "fs", Subcategory: "file"}
	if got := categoryPath(withSub); got != "fs/file" {
		t.Errorf("categoryPath() = %q, want %q", got, "fs/file")
	}

	noSub := api.Operation{Category: "net"}
	if got := categoryPath(noSub); got != "net" {
		t.Errorf("categoryPath() = %q, want %q", got, "net")
	}
}

func TestFormatParameterLine(t *testing.T) {
	param := api.Parameter{
		Name:        "path",
		Type:        api.TypeString,
		Required:    true,
		Description: "target path",
		Source:      api.SourceManual,
	}

	got := formatParameterLine(param)
	expected := "path (string, required): target path [manual]"
	if got != expected {
		t.Errorf("formatParameterLine() = %q, want %q", got, expected)
	}
}

func TestFindOperationByID(t *testing.T) {
	ops := []api.Operation{
		{ID: "fs.read"},
		{ID: "fs.write"},
	}

	if found := findOperationByID(ops, "fs.write"); found == nil || found.ID != "fs.write" {
		t.Errorf("findOperationByID() did not return fs.write")
	}
	if found := findOperationByID(ops, "missing"); found != nil {
		t.Errorf("findOperationByID() = %v, want nil", found)
	}
}
