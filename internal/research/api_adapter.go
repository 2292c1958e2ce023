package research

import (
	"context"

	"assay/internal/api"
	"assay/pkg/logging"
)

// Adapter provides the API adapter for manual signature research
type Adapter struct {
	store *Store
}

// NewAdapter creates a new research adapter
func NewAdapter(store *Store) *Adapter {
	return &Adapter{
		store: store,
	}
}

// Register registers this adapter with the API layer
func (a *Adapter) Register() {
	api.RegisterResearch(a)
	logging.Debug("ResearchAdapter", "Registered research adapter with API layer")
}

// SaveEntry stores a manual entry, replacing any existing entry for the
// same operation and parameter name. Entries may be saved for operations
// the catalog has not discovered yet; they take effect once the operation
// appears.
func (a *Adapter) SaveEntry(ctx context.Context, entry api.ManualEntry) error {
	return a.store.SaveEntry(entry)
}

// RemoveEntry deletes the entry for the given operation and parameter
func (a *Adapter) RemoveEntry(ctx context.Context, operationID, parameter string) error {
	return a.store.RemoveEntry(operationID, parameter)
}

// ListEntries returns stored entries for one operation, or all entries
// when operationID is empty
func (a *Adapter) ListEntries(ctx context.Context, operationID string) ([]api.ManualEntry, error) {
	return a.store.ListEntries(operationID), nil
}

// MergedOperation returns the operation with manual entries merged into
// its signature
func (a *Adapter) MergedOperation(ctx context.Context, operationID string) (*api.Operation, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return nil, api.ErrCatalogNotRegistered
	}

	op, err := catalog.GetOperation(operationID)
	if err != nil {
		return nil, err
	}

	merged := Merge(*op, a.store.ListEntries(operationID))
	return &merged, nil
}
