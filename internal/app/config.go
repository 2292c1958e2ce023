package app

import (
	"assay/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses log output entirely (machine-readable modes)
	Silent bool

	// Custom configuration directory (optional)
	// When empty, the user configuration directory is used
	ConfigPath string

	// Workspace overrides the configured workspace directory (optional)
	Workspace string

	// Host overrides the configured host target (optional). A value
	// starting with http:// or https:// selects the HTTP transport,
	// anything else is a command line for the stdio transport.
	Host string

	// Loaded assay configuration, populated during bootstrap
	AssayConfig *config.AssayConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug, silent bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		Silent:     silent,
		ConfigPath: configPath,
	}
}
