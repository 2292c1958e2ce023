// Package results keeps the append-only record of probe outcomes.
//
// Every execution attempt that passes the confirmation gate produces a
// TestResult, successful or not, and the store never rewrites history:
// results are appended in order, queried in insertion order, and only
// removed through the administrative Purge operation. Each result is
// persisted as its own JSON document carrying a sequence number so a
// reload reconstructs the original order regardless of how the
// filesystem lists files.
package results
