package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Execution.TimeoutMs != DefaultTimeoutMs {
		t.Errorf("Execution.TimeoutMs = %d, want %d", cfg.Execution.TimeoutMs, DefaultTimeoutMs)
	}
	if !cfg.Execution.RequireConfirmation {
		t.Error("Execution.RequireConfirmation should default to true")
	}
	if cfg.Docs.ExportDir != DefaultExportDir {
		t.Errorf("Docs.ExportDir = %s, want %s", cfg.Docs.ExportDir, DefaultExportDir)
	}
	if len(cfg.Risk.Destructive) == 0 {
		t.Error("Risk.Destructive keyword table should not be empty by default")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := `
host:
  command: myhost
  args: ["--registry"]
workspace: /tmp/probe-workspace
execution:
  timeoutMs: 5000
  createSnapshot: true
docs:
  author: Research Team
  formats: ["md", "yaml"]
`
	if err := os.WriteFile(filepath.Join(tempDir, configFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Host.Command != "myhost" {
		t.Errorf("Host.Command = %s, want myhost", cfg.Host.Command)
	}
	if cfg.Workspace != "/tmp/probe-workspace" {
		t.Errorf("Workspace = %s, want /tmp/probe-workspace", cfg.Workspace)
	}
	if cfg.Execution.TimeoutMs != 5000 {
		t.Errorf("Execution.TimeoutMs = %d, want 5000", cfg.Execution.TimeoutMs)
	}
	if !cfg.Execution.CreateSnapshot {
		t.Error("Execution.CreateSnapshot should be true")
	}
	if cfg.Docs.Author != "Research Team" {
		t.Errorf("Docs.Author = %s, want Research Team", cfg.Docs.Author)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, configFileName), []byte("host: [not: valid"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadConfig(tempDir)
	if err == nil {
		t.Fatal("LoadConfig() expected error for malformed yaml")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	cfg := GetDefaultConfig()
	cfg.Host.URL = "http://localhost:9000/mcp"
	cfg.Docs.Organization = "assay project"

	if err := SaveConfig(tempDir, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(tempDir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if loaded.Host.URL != cfg.Host.URL {
		t.Errorf("Host.URL = %s, want %s", loaded.Host.URL, cfg.Host.URL)
	}
	if loaded.Docs.Organization != cfg.Docs.Organization {
		t.Errorf("Docs.Organization = %s, want %s", loaded.Docs.Organization, cfg.Docs.Organization)
	}
}
