package app

import (
	"context"
	"fmt"
	"sync"

	"assay/internal/api"
	"assay/internal/config"
)

// ConfigAdapter adapts the config system to implement api.ConfigHandler.
// It provides a thread-safe interface for reading and updating assay
// configuration and serves as the bridge between the application layer and
// the API system.
//
// The adapter shares its AssayConfig pointer with the rest of the
// application, so a reload updates the struct in place and closures holding
// the pointer observe the new values. Components that copied sections at
// construction time keep their startup view.
type ConfigAdapter struct {
	config     *config.AssayConfig
	configPath string
	mu         sync.RWMutex
}

// NewConfigAdapter creates a new config adapter instance.
// The configPath arg is the configuration directory changes are saved to.
// If empty, the standard user configuration directory is used.
func NewConfigAdapter(cfg *config.AssayConfig, configPath string) *ConfigAdapter {
	return &ConfigAdapter{
		config:     cfg,
		configPath: configPath,
	}
}

// Register registers the adapter with the API layer.
// This must be called during application initialization to make the config
// handler available to other components through the API system.
func (a *ConfigAdapter) Register() {
	api.RegisterConfigHandler(a)
}

// GetConfig returns the current assay configuration.
func (a *ConfigAdapter) GetConfig(ctx context.Context) (*config.AssayConfig, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return a.config, nil
}

// GetExecutionDefaults returns a copy of the execution defaults section.
func (a *ConfigAdapter) GetExecutionDefaults(ctx context.Context) (*config.ExecutionDefaults, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	defaults := a.config.Execution
	return &defaults, nil
}

// GetDocsConfig returns a copy of the documentation export section.
func (a *ConfigAdapter) GetDocsConfig(ctx context.Context) (*config.DocsConfig, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	docs := a.config.Docs
	return &docs, nil
}

// UpdateExecutionDefaults replaces the execution defaults section.
// Changes are immediately saved to disk.
func (a *ConfigAdapter) UpdateExecutionDefaults(ctx context.Context, defaults config.ExecutionDefaults) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	a.config.Execution = defaults
	return a.saveConfig()
}

// SaveConfig persists the current configuration to disk.
func (a *ConfigAdapter) SaveConfig(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saveConfig()
}

// ReloadConfig reloads the configuration from disk using the centralized
// loader, replacing the in-memory configuration.
func (a *ConfigAdapter) ReloadConfig(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.configPath == "" {
		a.configPath = config.GetDefaultConfigPathOrPanic()
	}

	assayConfig, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}

	if a.config == nil {
		a.config = &assayConfig
		return nil
	}
	*a.config = assayConfig
	return nil
}

// saveConfig persists the current configuration to disk. Callers must hold
// the write lock.
func (a *ConfigAdapter) saveConfig() error {
	if a.config == nil {
		return fmt.Errorf("configuration not loaded")
	}
	if a.configPath == "" {
		a.configPath = config.GetDefaultConfigPathOrPanic()
	}
	return config.SaveConfig(a.configPath, *a.config)
}

var _ api.ConfigHandler = (*ConfigAdapter)(nil)
