// Package docgen turns the catalog and its probe history into
// documentation packages.
//
// Generate assembles one immutable DocumentationPackage: the merged
// operation list, the latest successful probe per operation as worked
// examples, a machine-readable schema document, language-neutral type
// definitions, the remote protocol description, a quality score, and,
// when a previous package exists, a change summary (ids added, removed,
// modified, plus structural signature diffs). Renderers project the
// package into export formats (markdown narrative, JSON, YAML, type
// definition text) without ever mutating it, and the exporter runs the
// declared formats in parallel, degrading per-format failures to
// warnings as long as at least one artifact lands on disk.
package docgen
