package main

import (
	"os"
	"testing"

	"assay/cmd"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

func TestVersion(t *testing.T) {
	// Test default version
	if version != "dev" {
		t.Errorf("Expected default version to be 'dev', got %s", version)
	}

	// Test setting version
	testVersion := "1.2.3"
	version = testVersion
	if version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, version)
	}

	// Reset version
	version = "dev"
}

func TestVersionVariable(t *testing.T) {
	tests := []struct {
		name     string
		setValue string
		expected string
	}{
		{
			name:     "default version",
			setValue: "",
			expected: "dev",
		},
		{
			name:     "custom version",
			setValue: "v1.0.0",
			expected: "v1.0.0",
		},
		{
			name:     "semantic version",
			setValue: "2.3.4-beta.1",
			expected: "2.3.4-beta.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalVersion := version

			if tt.setValue != "" {
				version = tt.setValue
			}

			if version != tt.expected {
				t.Errorf("Expected version %s, got %s", tt.expected, version)
			}

			version = originalVersion
		})
	}
}

func TestMainPackageIntegration(t *testing.T) {
	// Verifies that the main package properly integrates with the cmd package.
	originalVersion := version
	defer func() { version = originalVersion }()

	versions := []string{"dev", "1.0.0", "v2.0.0-rc1"}

	for _, v := range versions {
		version = v
		// SetVersion must accept any version format without panicking.
		cmd.SetVersion(version)
	}
}
