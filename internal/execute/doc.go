// Package execute is the safe execution engine: it runs catalog
// operations against the host under safety rails and records every
// attempt.
//
// The rails, in order: a confirmation gate refuses unconfirmed
// destructive operations before anything happens; an optional workspace
// snapshot is captured so a failed run can be rolled back; a passive
// observer watches for side effects; the host call is raced against a
// timeout ("stop waiting", the callee is not guaranteed cancelled); on
// failure the snapshot is restored; the outcome is appended to the
// result store whether the call succeeded or not.
//
// Infrastructure problems never mask the call outcome. Snapshot capture
// failure, observer failure, rollback failure and store failure all
// degrade to warnings layered onto the outcome.
package execute
