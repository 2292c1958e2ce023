package results

import (
	"assay/internal/api"
)

// Adapter exposes the result store through the central API layer.
type Adapter struct {
	store *Store
}

// NewAdapter creates a result store adapter.
func NewAdapter(store *Store) *Adapter {
	return &Adapter{store: store}
}

// Register registers the adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterResultStore(a)
}

// AppendResult records a probe outcome.
func (a *Adapter) AppendResult(result *api.TestResult) error {
	return a.store.Append(result)
}

// ListResults returns results for an operation in insertion order, or
// all results when operationID is empty.
func (a *Adapter) ListResults(operationID string) []api.TestResult {
	return a.store.Query(operationID)
}

// GetResult returns one result by id.
func (a *Adapter) GetResult(id string) (*api.TestResult, error) {
	return a.store.Get(id)
}

// PurgeResults removes all results recorded for an operation.
func (a *Adapter) PurgeResults(operationID string) (int, error) {
	return a.store.Purge(operationID)
}
