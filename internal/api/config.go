package api

import (
	"context"
	"fmt"

	"assay/internal/config"
)

// ConfigHandler provides configuration management functionality
type ConfigHandler interface {
	// Get configuration
	GetConfig(ctx context.Context) (*config.AssayConfig, error)
	GetExecutionDefaults(ctx context.Context) (*config.ExecutionDefaults, error)
	GetDocsConfig(ctx context.Context) (*config.DocsConfig, error)

	// Update configuration
	UpdateExecutionDefaults(ctx context.Context, defaults config.ExecutionDefaults) error

	// Save configuration to file
	SaveConfig(ctx context.Context) error

	// Reload configuration from disk
	ReloadConfig(ctx context.Context) error
}

// ConfigAPI defines the interface for managing configuration at runtime
type ConfigAPI interface {
	GetConfig(ctx context.Context) (*config.AssayConfig, error)
	GetExecutionDefaults(ctx context.Context) (*config.ExecutionDefaults, error)
	GetDocsConfig(ctx context.Context) (*config.DocsConfig, error)
	UpdateExecutionDefaults(ctx context.Context, defaults config.ExecutionDefaults) error
	SaveConfig(ctx context.Context) error
	ReloadConfig(ctx context.Context) error
}

// configAPI implements the ConfigAPI interface using the registered handler
type configAPI struct {
	// No fields - uses handlers from registry
}

// NewConfigAPI creates a new ConfigAPI instance
func NewConfigAPI() ConfigAPI {
	return &configAPI{}
}

// GetConfig returns the entire configuration
func (c *configAPI) GetConfig(ctx context.Context) (*config.AssayConfig, error) {
	handler := GetConfigHandler()
	if handler == nil {
		return nil, fmt.Errorf("config handler not registered")
	}
	return handler.GetConfig(ctx)
}

// GetExecutionDefaults returns the execution defaults section
func (c *configAPI) GetExecutionDefaults(ctx context.Context) (*config.ExecutionDefaults, error) {
	handler := GetConfigHandler()
	if handler == nil {
		return nil, fmt.Errorf("config handler not registered")
	}
	return handler.GetExecutionDefaults(ctx)
}

// GetDocsConfig returns the documentation export section
func (c *configAPI) GetDocsConfig(ctx context.Context) (*config.DocsConfig, error) {
	handler := GetConfigHandler()
	if handler == nil {
		return nil, fmt.Errorf("config handler not registered")
	}
	return handler.GetDocsConfig(ctx)
}

// UpdateExecutionDefaults replaces the execution defaults section
func (c *configAPI) UpdateExecutionDefaults(ctx context.Context, defaults config.ExecutionDefaults) error {
	handler := GetConfigHandler()
	if handler == nil {
		return fmt.Errorf("config handler not registered")
	}
	return handler.UpdateExecutionDefaults(ctx, defaults)
}

// SaveConfig persists the current configuration
func (c *configAPI) SaveConfig(ctx context.Context) error {
	handler := GetConfigHandler()
	if handler == nil {
		return fmt.Errorf("config handler not registered")
	}
	return handler.SaveConfig(ctx)
}

// ReloadConfig re-reads the configuration from disk
func (c *configAPI) ReloadConfig(ctx context.Context) error {
	handler := GetConfigHandler()
	if handler == nil {
		return fmt.Errorf("config handler not registered")
	}
	return handler.ReloadConfig(ctx)
}
