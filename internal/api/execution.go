package api

import (
	"context"
	"time"
)

// SideEffectType classifies an observed side effect.
type SideEffectType string

const (
	EffectFileCreated  SideEffectType = "file-created"
	EffectFileModified SideEffectType = "file-modified"
	EffectFileDeleted  SideEffectType = "file-deleted"
	EffectStateChanged SideEffectType = "state-changed"
)

// SideEffect records one observed consequence of executing an operation.
type SideEffect struct {
	// Type classifies the effect
	Type SideEffectType `json:"type"`

	// Description is a human-readable account of what changed
	Description string `json:"description"`

	// Resource identifies what was affected (a path, a key), when known
	Resource string `json:"resource,omitempty"`

	// Timestamp records when the effect was observed
	Timestamp time.Time `json:"timestamp"`
}

// ExecutionErrorKind distinguishes why an execution did not succeed.
type ExecutionErrorKind string

const (
	// ErrorKindTimeout - the engine stopped waiting; the callee is not
	// guaranteed to have been cancelled
	ErrorKindTimeout ExecutionErrorKind = "Timeout"

	// ErrorKindFailure - the host reported an error
	ErrorKindFailure ExecutionErrorKind = "Failure"

	// ErrorKindRefused - the engine refused to run the operation
	ErrorKindRefused ExecutionErrorKind = "Refused"

	// ErrorKindCanceled - the surrounding context was canceled
	ErrorKindCanceled ExecutionErrorKind = "Canceled"
)

// ExecutionError describes why an execution failed.
type ExecutionError struct {
	// Message is the failure description
	Message string `json:"message"`

	// Kind classifies the failure
	Kind ExecutionErrorKind `json:"kind"`

	// Trace carries host-provided diagnostic detail, when available
	Trace string `json:"trace,omitempty"`
}

// ExecutionOutcome is the complete record of one execution attempt.
// Warnings carry infrastructure degradation notes (snapshot, observer,
// store, restore failures); they are layered on top of the call outcome
// and never replace it.
type ExecutionOutcome struct {
	// Success reports whether the host call completed without error
	Success bool `json:"success"`

	// DurationMs is the wall-clock duration of the host call
	DurationMs int64 `json:"durationMs"`

	// Result is the host-returned value on success
	Result interface{} `json:"result,omitempty"`

	// Error describes the failure when Success is false
	Error *ExecutionError `json:"error,omitempty"`

	// SideEffects lists effects observed during the call
	SideEffects []SideEffect `json:"sideEffects,omitempty"`

	// Warnings lists infrastructure problems that degraded the run
	// without changing the call outcome
	Warnings []string `json:"warnings,omitempty"`
}

// TestResult is one recorded probe of an operation. Results are
// append-only: once recorded they are never modified.
type TestResult struct {
	// ID is the unique identifier of this result
	ID string `json:"id"`

	// OperationID identifies the probed operation
	OperationID string `json:"operationId"`

	// Args are the arguments the probe ran with
	Args map[string]interface{} `json:"args,omitempty"`

	// Outcome is the complete execution record
	Outcome ExecutionOutcome `json:"outcome"`

	// Notes holds optional operator commentary
	Notes string `json:"notes,omitempty"`

	// Timestamp records when the probe ran
	Timestamp time.Time `json:"timestamp"`
}

// ExecuteOptions controls one engine run.
type ExecuteOptions struct {
	// Timeout bounds how long the engine waits for the host call.
	// Zero means the engine default applies.
	Timeout time.Duration `json:"timeout,omitempty"`

	// CreateSnapshot captures the workspace before the call so a failed
	// run can be rolled back
	CreateSnapshot bool `json:"createSnapshot,omitempty"`

	// RequireConfirmation enables the destructive-operation gate
	RequireConfirmation bool `json:"requireConfirmation,omitempty"`

	// Confirmed acknowledges the gate for destructive operations
	Confirmed bool `json:"confirmed,omitempty"`

	// RetainSnapshot keeps the snapshot after a successful run instead
	// of releasing it
	RetainSnapshot bool `json:"retainSnapshot,omitempty"`

	// Notes is attached to the recorded TestResult
	Notes string `json:"notes,omitempty"`
}

// ExecutionHandler runs operations through the safe execution engine.
// Implemented by the execute package's adapter.
type ExecutionHandler interface {
	// Execute runs the operation with the given arguments under the
	// engine's safety rails (confirmation gate, snapshot, observer,
	// timeout) and records the outcome in the result store.
	// Returns a ConfirmationRequiredError when the gate refuses the run.
	Execute(ctx context.Context, operationID string, args map[string]interface{}, opts ExecuteOptions) (*ExecutionOutcome, error)
}

// ResultStoreHandler provides access to recorded test results.
// Implemented by the results package's adapter.
type ResultStoreHandler interface {
	// AppendResult records a result. Results are immutable once stored.
	AppendResult(result *TestResult) error

	// ListResults returns results for one operation in insertion order,
	// or all results when operationID is empty
	ListResults(operationID string) []TestResult

	// GetResult returns one result by id.
	// Returns a NotFoundError when the id is unknown.
	GetResult(id string) (*TestResult, error)

	// PurgeResults removes all results for an operation and returns how
	// many were removed. Administrative use only.
	PurgeResults(operationID string) (int, error)
}
