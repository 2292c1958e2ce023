// Package research manages manual signature entries and merges them with
// inferred signatures into the operation views the rest of the system
// consumes.
//
// # Merging
//
// Merge is a pure projection combining an operation's inferred signature
// with researcher-authored entries:
//
//   - Manual parameters come first, in entry order; a later entry for the
//     same parameter name replaces the earlier one.
//   - Automatic (inferred) parameters without a manual counterpart follow
//     in their original order. They are never dropped.
//   - Confidence is high iff at least one parameter is manual; otherwise
//     typed metadata yields medium and doc scraping or heuristics yield low.
//
// Merge never mutates its input and is idempotent, so callers may re-merge
// freely.
//
// # Persistence
//
// Store keeps entries in memory and writes one YAML document per operation
// through the config.Storage collaborator. Saving an entry for an existing
// (operation, parameter) pair replaces it while preserving CreatedAt.
//
// Entries may reference operations the catalog has not discovered yet;
// they simply take effect once the operation appears.
package research
