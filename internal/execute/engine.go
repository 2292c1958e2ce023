package execute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/internal/host"
	"assay/pkg/logging"
)

// Engine runs catalog operations against the host under safety rails:
// a confirmation gate for destructive operations, optional workspace
// snapshot with rollback-on-failure, passive side-effect observation,
// and a bounded wait raced against the host call. Every attempt that
// passes the gate is recorded in the result store, successful or not.
type Engine struct {
	invoker     host.Invoker
	snapshotter Snapshotter
	observer    Observer
	defaults    config.ExecutionDefaults
}

// NewEngine creates an engine. snapshotter and observer may be nil when
// the deployment lacks those capabilities; the engine degrades to
// running without rollback or side-effect capture.
func NewEngine(invoker host.Invoker, snapshotter Snapshotter, observer Observer, defaults config.ExecutionDefaults) *Engine {
	return &Engine{
		invoker:     invoker,
		snapshotter: snapshotter,
		observer:    observer,
		defaults:    defaults,
	}
}

// Execute runs one operation. Infrastructure problems (snapshot capture,
// observation, rollback, recording) degrade to warnings on the outcome;
// only the host call itself decides success or failure.
func (e *Engine) Execute(ctx context.Context, op api.Operation, args map[string]interface{}, opts api.ExecuteOptions) (api.ExecutionOutcome, error) {
	// The gate is a precondition, not a prompt: an unconfirmed
	// destructive run is refused before anything happens, and no
	// result is recorded because no attempt occurred.
	if opts.RequireConfirmation && op.RiskLevel == api.RiskDestructive && !opts.Confirmed {
		logging.Info("Engine", "Refused unconfirmed destructive operation %s", op.ID)
		return api.ExecutionOutcome{}, api.NewConfirmationRequiredError(op.ID, op.RiskLevel)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Duration(e.defaults.TimeoutMs) * time.Millisecond
	}
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultTimeoutMs) * time.Millisecond
	}

	var outcome api.ExecutionOutcome
	warn := func(format string, a ...interface{}) {
		msg := fmt.Sprintf(format, a...)
		outcome.Warnings = append(outcome.Warnings, msg)
		logging.Warn("Engine", "%s", msg)
	}

	var snapshot Snapshot
	if opts.CreateSnapshot {
		switch {
		case e.snapshotter == nil:
			warn("snapshot requested but no snapshot capability is configured")
		default:
			snap, err := e.snapshotter.Capture(ctx)
			if err != nil {
				warn("snapshot capture failed, proceeding without rollback: %v", err)
			} else {
				snapshot = snap
			}
		}
	}

	observer := e.observer
	if observer == nil {
		observer = NoopObserver{}
	}
	stopWatch, err := observer.Watch(ctx)
	if err != nil {
		warn("side-effect observation unavailable: %v", err)
		stopWatch = func() []api.SideEffect { return nil }
	}

	logging.Debug("Engine", "Executing %s (timeout=%s, snapshot=%v)", op.ID, timeout, snapshot != nil)

	start := time.Now()
	value, kind, callErr := e.call(ctx, op.ID, args, timeout)
	outcome.DurationMs = time.Since(start).Milliseconds()
	outcome.SideEffects = stopWatch()

	if callErr == nil {
		outcome.Success = true
		outcome.Result = value
	} else {
		outcome.Error = &api.ExecutionError{
			Message: callErr.Error(),
			Kind:    kind,
		}
	}

	e.settleSnapshot(ctx, snapshot, &outcome, opts.RetainSnapshot, warn)
	e.record(op.ID, args, &outcome, opts.Notes, warn)

	return outcome, nil
}

// call races the host invocation against the timeout. On timeout the
// contract is "stop waiting": the callee is cancelled best-effort but
// not guaranteed stopped.
func (e *Engine) call(ctx context.Context, id string, args map[string]interface{}, timeout time.Duration) (interface{}, api.ExecutionErrorKind, error) {
	type callResult struct {
		value interface{}
		err   error
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so a completion after we stop waiting does not leak
	// the goroutine
	resultCh := make(chan callResult, 1)
	go func() {
		value, err := e.invoker.Invoke(callCtx, id, args)
		resultCh <- callResult{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, context.Canceled) {
				return nil, api.ErrorKindCanceled, res.err
			}
			return nil, api.ErrorKindFailure, res.err
		}
		return res.value, "", nil
	case <-timer.C:
		cancel()
		return nil, api.ErrorKindTimeout,
			fmt.Errorf("stopped waiting for %s after %s; the host call is not guaranteed cancelled", id, timeout)
	case <-ctx.Done():
		return nil, api.ErrorKindCanceled, ctx.Err()
	}
}

// settleSnapshot rolls back on failure and releases on success. A
// restore failure is layered onto the outcome as a warning; it never
// replaces the call's own result.
func (e *Engine) settleSnapshot(ctx context.Context, snapshot Snapshot, outcome *api.ExecutionOutcome, retain bool, warn func(string, ...interface{})) {
	if snapshot == nil {
		return
	}

	if outcome.Success {
		if retain {
			logging.Info("Engine", "Retaining snapshot %s after successful run", snapshot.ID())
			return
		}
		if err := snapshot.Release(); err != nil {
			logging.Debug("Engine", "Failed to release snapshot %s: %v", snapshot.ID(), err)
		}
		return
	}

	if err := snapshot.Restore(ctx); err != nil {
		warn("rollback from snapshot %s failed: %v", snapshot.ID(), err)
		return
	}
	outcome.Warnings = append(outcome.Warnings,
		fmt.Sprintf("workspace rolled back to snapshot %s", snapshot.ID()))
	if !retain {
		if err := snapshot.Release(); err != nil {
			logging.Debug("Engine", "Failed to release snapshot %s: %v", snapshot.ID(), err)
		}
	}
}

// record persists the outcome. Persistence is automatic so failed
// attempts stay discoverable; a store problem degrades to a warning on
// the returned outcome.
func (e *Engine) record(operationID string, args map[string]interface{}, outcome *api.ExecutionOutcome, notes string, warn func(string, ...interface{})) {
	store := api.GetResultStore()
	if store == nil {
		warn("result store unavailable; outcome not recorded")
		return
	}

	result := &api.TestResult{
		OperationID: operationID,
		Args:        args,
		Outcome:     *outcome,
		Notes:       notes,
	}
	if err := store.AppendResult(result); err != nil {
		warn("failed to record result: %v", err)
	}
}
