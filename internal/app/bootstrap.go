package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"assay/internal/config"
	"assay/pkg/logging"
)

// Application represents the main application structure that bootstraps assay.
// It encapsulates the configuration and components required for a command to
// run, from initialization through shutdown.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: load configuration, initialize logging, wire components
//  2. Execution phase: the command layer drives the registered API handlers
//
// Example usage:
//
//	cfg := app.NewConfig(false, false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	defer application.Close()
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the
// provided configuration. This function performs the complete bootstrap
// sequence:
//
//  1. Configures logging based on debug and silent settings
//  2. Loads assay configuration from the config directory
//  3. Initializes all components and registers their API handlers
//
// Configuration Loading Behavior:
//   - If cfg.ConfigPath is set: loads from the specified directory
//   - If cfg.ConfigPath is empty: uses the user configuration directory
//
// The function returns an error if any critical initialization step fails,
// including configuration loading or component initialization failures.
func NewApplication(cfg *Config) (*Application, error) {
	// Configure logging based on debug flag
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	// Logs go to stderr. Stdout is reserved for command output and, in serve
	// mode, the MCP stdio transport.
	var logOutput io.Writer = os.Stderr
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.GetDefaultConfigPathOrPanic()
	}

	assayCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load assay configuration from path: %s", cfg.ConfigPath)
		return nil, fmt.Errorf("failed to load assay configuration from path %s: %w", cfg.ConfigPath, err)
	}
	logging.Debug("Bootstrap", "Loaded configuration from %s", cfg.ConfigPath)

	if cfg.Workspace != "" {
		assayCfg.Workspace = cfg.Workspace
	}
	if cfg.Host != "" {
		assayCfg.Host = config.ParseHostTarget(cfg.Host)
	}
	cfg.AssayConfig = &assayCfg

	// Initialize components and register their API handlers
	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Config returns the loaded assay configuration.
func (a *Application) Config() *config.AssayConfig {
	return a.config.AssayConfig
}

// Services returns the initialized component set.
func (a *Application) Services() *Services {
	return a.services
}

// ConnectHost establishes the connection to the hosting application.
// Bootstrap leaves the host unconnected so that commands operating on local
// state never spawn or dial anything; commands that need live operations
// call this first.
func (a *Application) ConnectHost(ctx context.Context) error {
	if a.services.Invoker == nil {
		return fmt.Errorf("no host configured: set host.command or host.url in config.yaml")
	}
	if err := a.services.Invoker.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to host: %w", err)
	}
	return nil
}

// Close releases the application's resources: the host connection and the
// catalog's search index.
func (a *Application) Close() error {
	return a.services.Close()
}
