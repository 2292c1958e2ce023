// Package config provides configuration loading and entity storage for assay.
//
// # Configuration
//
// The main configuration lives in config.yaml under the configuration
// directory (~/.config/assay by default, overridable with --config-path).
// Loading starts from defaults and overlays whatever the file provides,
// so a missing config.yaml is not an error.
//
// Configuration sections:
//   - **host**: how to reach the hosting application (stdio subprocess or
//     streamable HTTP URL with optional bearer token)
//   - **workspace**: the directory the execution engine snapshots and observes
//   - **execution**: engine defaults (timeout, snapshot, confirmation gate)
//   - **docs**: documentation export settings (directory, formats, authorship)
//   - **risk**: keyword tables for operation risk classification
//
// # Entity Storage
//
// Storage persists dynamic entities as individual files under per-type
// subdirectories of the configuration directory:
//
//   - catalog/   - persisted discovery snapshot (JSON)
//   - research/  - manual signature entries, one document per operation (YAML)
//   - results/   - recorded test results (JSON)
//   - packages/  - generated documentation packages (JSON)
//
// The storage collaborator owns the file formats and naming; callers hand
// it entity type, name, and bytes. Names are sanitized for filesystem
// safety, so operation ids like "fs.read" map to files like "fs_read".
//
// Storage is safe for concurrent use.
package config
