// Package app provides application bootstrap and component wiring for assay.
//
// # Architecture Overview
//
// The app package is the composition root. It has four components:
//
// 1. **Bootstrap (`bootstrap.go`)**: logging setup, configuration loading, service initialization
// 2. **Configuration (`config.go`)**: runtime flags handed down from the command layer
// 3. **Configuration Adapter (`config_adapter.go`)**: api.ConfigHandler implementation
// 4. **Services (`services.go`)**: component construction and API adapter registration
//
// # Initialization Sequence
//
//  1. Logging goes to stderr (stdout is reserved for command output and the
//     MCP stdio transport).
//  2. Configuration is loaded from the config directory, with built-in
//     defaults filling anything the file does not set.
//  3. Each component is constructed and its adapter registered with the
//     central API layer: config, catalog, research, validation, execution,
//     results, documentation.
//
// After bootstrap, all cross-component communication goes through the
// api.GetXXX() locators. The Services struct only retains the handles needed
// for shutdown and for connecting to the hosting application.
//
// # Host Connection
//
// The hosting-application invoker is built from configuration during
// bootstrap but not connected. Commands that operate on local state
// (listing, notes, documentation export) never touch it; commands that need
// the live host call Application.ConnectHost first. A configuration without
// a host section yields a nil invoker, and execution reports the missing
// capability instead of failing at startup.
//
// # Usage
//
//	cfg := app.NewConfig(debug, silent, configPath)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("bootstrap failed: %w", err)
//	}
//	defer application.Close()
package app
