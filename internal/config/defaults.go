package config

const (
	// DefaultTimeoutMs is the default probe timeout in milliseconds
	DefaultTimeoutMs = 30000

	// DefaultExportDir is the default documentation export directory
	DefaultExportDir = "./assay-docs"

	// DefaultDocsVersion is the version stamped on packages when the
	// configuration does not set one
	DefaultDocsVersion = "0.1.0"
)

// GetDefaultConfig returns the default configuration for assay.
func GetDefaultConfig() AssayConfig {
	return AssayConfig{
		Workspace: ".",
		Execution: ExecutionDefaults{
			TimeoutMs:           DefaultTimeoutMs,
			CreateSnapshot:      false,
			RequireConfirmation: true,
		},
		Docs: DocsConfig{
			ExportDir: DefaultExportDir,
			Formats:   []string{"md", "json"},
			Version:   DefaultDocsVersion,
		},
		Risk: RiskConfig{
			Destructive: []string{
				"delete", "remove", "destroy", "drop", "purge", "wipe",
				"erase", "truncate", "kill", "terminate", "reset", "format",
			},
			Moderate: []string{
				"write", "create", "update", "modify", "set", "move",
				"rename", "install", "upload", "push", "apply", "restart",
			},
		},
	}
}
