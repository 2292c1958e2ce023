package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"assay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*ConfigAdapter, *config.AssayConfig, string) {
	t.Helper()
	configDir := t.TempDir()
	cfg := config.GetDefaultConfig()
	return NewConfigAdapter(&cfg, configDir), &cfg, configDir
}

func TestConfigAdapter_GetConfig(t *testing.T) {
	adapter, cfg, _ := newTestAdapter(t)

	got, err := adapter.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Same(t, cfg, got)
}

func TestConfigAdapter_GetSectionsReturnCopies(t *testing.T) {
	adapter, cfg, _ := newTestAdapter(t)
	ctx := context.Background()

	defaults, err := adapter.GetExecutionDefaults(ctx)
	require.NoError(t, err)
	defaults.TimeoutMs = 1

	docs, err := adapter.GetDocsConfig(ctx)
	require.NoError(t, err)
	docs.Version = "mutated"

	assert.Equal(t, int64(config.DefaultTimeoutMs), cfg.Execution.TimeoutMs)
	assert.Equal(t, config.DefaultDocsVersion, cfg.Docs.Version)
}

func TestConfigAdapter_UpdateExecutionDefaultsPersists(t *testing.T) {
	adapter, cfg, configDir := newTestAdapter(t)
	ctx := context.Background()

	updated := config.ExecutionDefaults{
		TimeoutMs:           5000,
		CreateSnapshot:      true,
		RequireConfirmation: false,
	}
	require.NoError(t, adapter.UpdateExecutionDefaults(ctx, updated))
	assert.Equal(t, updated, cfg.Execution)

	// The update is written through to config.yaml.
	reloaded, err := config.LoadConfig(configDir)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), reloaded.Execution.TimeoutMs)
	assert.True(t, reloaded.Execution.CreateSnapshot)
}

func TestConfigAdapter_SaveConfigWritesFile(t *testing.T) {
	adapter, _, configDir := newTestAdapter(t)

	require.NoError(t, adapter.SaveConfig(context.Background()))

	_, err := os.Stat(filepath.Join(configDir, "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigAdapter_ReloadConfigUpdatesInPlace(t *testing.T) {
	adapter, cfg, configDir := newTestAdapter(t)

	configYAML := "workspace: /srv/projects\nexecution:\n  timeoutMs: 750\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configYAML), 0644))

	require.NoError(t, adapter.ReloadConfig(context.Background()))

	// The shared pointer observes the reload.
	assert.Equal(t, "/srv/projects", cfg.Workspace)
	assert.Equal(t, int64(750), cfg.Execution.TimeoutMs)
}

func TestConfigAdapter_ReloadConfigRejectsMalformedFile(t *testing.T) {
	adapter, cfg, configDir := newTestAdapter(t)

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("workspace: [broken\n"), 0644))

	err := adapter.ReloadConfig(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reload configuration")
	// The in-memory configuration is untouched on failure.
	assert.Equal(t, ".", cfg.Workspace)
}

func TestConfigAdapter_NilConfigErrors(t *testing.T) {
	adapter := NewConfigAdapter(nil, t.TempDir())
	ctx := context.Background()

	_, err := adapter.GetConfig(ctx)
	assert.Error(t, err)

	_, err = adapter.GetExecutionDefaults(ctx)
	assert.Error(t, err)

	_, err = adapter.GetDocsConfig(ctx)
	assert.Error(t, err)

	err = adapter.UpdateExecutionDefaults(ctx, config.ExecutionDefaults{})
	assert.Error(t, err)

	err = adapter.SaveConfig(ctx)
	assert.Error(t, err)
}
