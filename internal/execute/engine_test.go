package execute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore is an in-memory ResultStoreHandler for engine tests.
type recordingStore struct {
	mu         sync.Mutex
	results    []api.TestResult
	failAppend bool
}

func (r *recordingStore) AppendResult(result *api.TestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAppend {
		return fmt.Errorf("store offline")
	}
	r.results = append(r.results, *result)
	return nil
}

func (r *recordingStore) ListResults(operationID string) []api.TestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []api.TestResult
	for _, result := range r.results {
		if operationID == "" || result.OperationID == operationID {
			out = append(out, result)
		}
	}
	return out
}

func (r *recordingStore) GetResult(id string) (*api.TestResult, error) {
	return nil, api.NewTestResultNotFoundError(id)
}

func (r *recordingStore) PurgeResults(operationID string) (int, error) {
	return 0, nil
}

// funcInvoker adapts a function to the host.Invoker interface.
type funcInvoker struct {
	fn func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error)
}

func (f *funcInvoker) Connect(ctx context.Context) error { return nil }
func (f *funcInvoker) Close() error                      { return nil }
func (f *funcInvoker) ListOperations(ctx context.Context) ([]host.DiscoveredOperation, error) {
	return nil, nil
}
func (f *funcInvoker) Invoke(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
	return f.fn(ctx, id, args)
}

// fakeSnapshot and fakeSnapshotter let tests script snapshot behavior.
type fakeSnapshot struct {
	id         string
	restored   bool
	released   bool
	restoreErr error
}

func (f *fakeSnapshot) ID() string { return f.id }
func (f *fakeSnapshot) Restore(ctx context.Context) error {
	f.restored = true
	return f.restoreErr
}
func (f *fakeSnapshot) Release() error {
	f.released = true
	return nil
}

type fakeSnapshotter struct {
	snapshot   *fakeSnapshot
	captureErr error
	captured   bool
}

func (f *fakeSnapshotter) Capture(ctx context.Context) (Snapshot, error) {
	f.captured = true
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	return f.snapshot, nil
}

func testOperation(id string, risk api.RiskLevel) api.Operation {
	return api.Operation{
		ID:        id,
		Category:  "fs",
		Label:     "Test Operation",
		RiskLevel: risk,
	}
}

func newRecordingStore(t *testing.T) *recordingStore {
	t.Helper()
	store := &recordingStore{}
	api.RegisterResultStore(store)
	return store
}

func TestEngine_RefusesUnconfirmedDestructive(t *testing.T) {
	store := newRecordingStore(t)
	invoked := false
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		invoked = true
		return "should not happen", nil
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	op := testOperation("fs_wipe", api.RiskDestructive)
	_, err := engine.Execute(context.Background(), op, nil, api.ExecuteOptions{
		RequireConfirmation: true,
	})

	require.Error(t, err)
	assert.True(t, api.IsConfirmationRequired(err))
	assert.False(t, invoked, "refused run must not touch the host")
	assert.Empty(t, store.ListResults(""), "refused run must not be recorded")
}

func TestEngine_ConfirmedDestructiveRuns(t *testing.T) {
	store := newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "wiped", nil
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	op := testOperation("fs_wipe", api.RiskDestructive)
	outcome, err := engine.Execute(context.Background(), op, nil, api.ExecuteOptions{
		RequireConfirmation: true,
		Confirmed:           true,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "wiped", outcome.Result)
	assert.Len(t, store.ListResults("fs_wipe"), 1)
}

func TestEngine_GateIgnoresNonDestructive(t *testing.T) {
	newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	op := testOperation("fs_read", api.RiskSafe)
	outcome, err := engine.Execute(context.Background(), op, nil, api.ExecuteOptions{
		RequireConfirmation: true,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
}

func TestEngine_TimeoutNeverSucceeds(t *testing.T) {
	store := newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		select {
		case <-time.After(2 * time.Second):
			return "too late", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 30000})

	start := time.Now()
	outcome, err := engine.Execute(context.Background(), testOperation("slow_op", api.RiskSafe), nil, api.ExecuteOptions{
		Timeout: 30 * time.Millisecond,
	})

	require.NoError(t, err, "timeout is an outcome, not an engine error")
	assert.False(t, outcome.Success)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, api.ErrorKindTimeout, outcome.Error.Kind)
	assert.Less(t, time.Since(start), time.Second, "engine must stop waiting at the timeout")

	recorded := store.ListResults("slow_op")
	require.Len(t, recorded, 1, "timed-out attempts are still recorded")
	assert.False(t, recorded[0].Outcome.Success)
}

func TestEngine_HostErrorIsFailureKind(t *testing.T) {
	newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return nil, fmt.Errorf("disk full")
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{})

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, api.ErrorKindFailure, outcome.Error.Kind)
	assert.Contains(t, outcome.Error.Message, "disk full")
}

func TestEngine_ContextCancellation(t *testing.T) {
	newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 30000})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	outcome, err := engine.Execute(ctx, testOperation("slow_op", api.RiskSafe), nil, api.ExecuteOptions{
		Timeout: 10 * time.Second,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, api.ErrorKindCanceled, outcome.Error.Kind)
}

func TestEngine_RollbackRestoresWorkspace(t *testing.T) {
	newRecordingStore(t)

	workspace := t.TempDir()
	keep := filepath.Join(workspace, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("original"), 0644))

	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		// Damage the workspace, then fail
		if err := os.WriteFile(keep, []byte("clobbered"), 0644); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(workspace, "junk.txt"), []byte("debris"), 0644); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("call exploded halfway")
	}}

	engine := NewEngine(invoker, NewWorkspaceSnapshotter(workspace), nil, config.ExecutionDefaults{TimeoutMs: 5000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{
		CreateSnapshot: true,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Success)

	content, err := os.ReadFile(keep)
	require.NoError(t, err)
	assert.Equal(t, "original", string(content), "modified file must be rolled back")

	_, statErr := os.Stat(filepath.Join(workspace, "junk.txt"))
	assert.True(t, os.IsNotExist(statErr), "created file must be rolled back")
}

func TestEngine_RestoreFailureLayersWarning(t *testing.T) {
	newRecordingStore(t)

	snapshot := &fakeSnapshot{id: "snap-1", restoreErr: fmt.Errorf("holding area vanished")}
	snapshotter := &fakeSnapshotter{snapshot: snapshot}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		select {
		case <-time.After(time.Second):
			return nil, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	engine := NewEngine(invoker, snapshotter, nil, config.ExecutionDefaults{})

	outcome, err := engine.Execute(context.Background(), testOperation("slow_op", api.RiskSafe), nil, api.ExecuteOptions{
		Timeout:        30 * time.Millisecond,
		CreateSnapshot: true,
	})

	require.NoError(t, err)
	assert.False(t, outcome.Success)
	require.NotNil(t, outcome.Error)
	assert.Equal(t, api.ErrorKindTimeout, outcome.Error.Kind, "restore failure must not replace the original outcome")
	assert.True(t, snapshot.restored)
	require.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, outcome.Warnings[0], "rollback from snapshot snap-1 failed")
}

func TestEngine_CaptureFailureProceedsWithWarning(t *testing.T) {
	newRecordingStore(t)

	snapshotter := &fakeSnapshotter{captureErr: fmt.Errorf("no space")}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "done", nil
	}}
	engine := NewEngine(invoker, snapshotter, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{
		CreateSnapshot: true,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success, "capture failure must not block the run")
	require.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, outcome.Warnings[0], "snapshot capture failed")
}

func TestEngine_SuccessReleasesSnapshot(t *testing.T) {
	newRecordingStore(t)

	snapshot := &fakeSnapshot{id: "snap-2"}
	snapshotter := &fakeSnapshotter{snapshot: snapshot}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, snapshotter, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{
		CreateSnapshot: true,
	})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.True(t, snapshot.released)
	assert.False(t, snapshot.restored)
}

func TestEngine_RetainSnapshotKeepsIt(t *testing.T) {
	newRecordingStore(t)

	snapshot := &fakeSnapshot{id: "snap-3"}
	snapshotter := &fakeSnapshotter{snapshot: snapshot}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, snapshotter, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	_, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{
		CreateSnapshot: true,
		RetainSnapshot: true,
	})

	require.NoError(t, err)
	assert.False(t, snapshot.released)
}

func TestEngine_OutcomeAlwaysRecorded(t *testing.T) {
	store := newRecordingStore(t)
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return nil, fmt.Errorf("failed as designed")
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	args := map[string]interface{}{"path": "/tmp/a"}
	_, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), args, api.ExecuteOptions{
		Notes: "probing failure path",
	})
	require.NoError(t, err)

	recorded := store.ListResults("fs_write")
	require.Len(t, recorded, 1)
	assert.Equal(t, args, recorded[0].Args)
	assert.Equal(t, "probing failure path", recorded[0].Notes)
	assert.False(t, recorded[0].Outcome.Success)
}

func TestEngine_StoreFailureBecomesWarning(t *testing.T) {
	store := newRecordingStore(t)
	store.failAppend = true

	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, nil, nil, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_read", api.RiskSafe), nil, api.ExecuteOptions{})

	require.NoError(t, err)
	assert.True(t, outcome.Success, "store failure must not mask the call outcome")
	require.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, outcome.Warnings[len(outcome.Warnings)-1], "failed to record result")
}

func TestEngine_ObserverEffectsCollected(t *testing.T) {
	newRecordingStore(t)

	observer := &scriptedObserver{effects: []api.SideEffect{
		{Type: api.EffectFileCreated, Resource: "out.txt", Description: "file created: out.txt"},
	}}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, nil, observer, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_write", api.RiskModerate), nil, api.ExecuteOptions{})

	require.NoError(t, err)
	require.Len(t, outcome.SideEffects, 1)
	assert.Equal(t, api.EffectFileCreated, outcome.SideEffects[0].Type)
}

func TestEngine_ObserverStartFailureProceeds(t *testing.T) {
	newRecordingStore(t)

	observer := &scriptedObserver{watchErr: fmt.Errorf("inotify limit reached")}
	invoker := &funcInvoker{fn: func(ctx context.Context, id string, args map[string]interface{}) (interface{}, error) {
		return "ok", nil
	}}
	engine := NewEngine(invoker, nil, observer, config.ExecutionDefaults{TimeoutMs: 1000})

	outcome, err := engine.Execute(context.Background(), testOperation("fs_read", api.RiskSafe), nil, api.ExecuteOptions{})

	require.NoError(t, err)
	assert.True(t, outcome.Success)
	require.NotEmpty(t, outcome.Warnings)
	assert.Contains(t, outcome.Warnings[0], "observation unavailable")
}

type scriptedObserver struct {
	effects  []api.SideEffect
	watchErr error
}

func (s *scriptedObserver) Watch(ctx context.Context) (func() []api.SideEffect, error) {
	if s.watchErr != nil {
		return nil, s.watchErr
	}
	return func() []api.SideEffect { return s.effects }, nil
}
