package catalog

import (
	"context"

	"assay/internal/api"
)

// Adapter exposes the catalog through the central API layer.
type Adapter struct {
	catalog *Catalog
}

// NewAdapter creates a catalog adapter.
func NewAdapter(catalog *Catalog) *Adapter {
	return &Adapter{catalog: catalog}
}

// Register registers the adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterCatalog(a)
}

// ListOperations returns all known operations sorted by id.
func (a *Adapter) ListOperations() []api.Operation {
	return a.catalog.List()
}

// GetOperation returns one operation by id.
func (a *Adapter) GetOperation(id string) (*api.Operation, error) {
	return a.catalog.Get(id)
}

// SearchOperations runs a full-text query over the catalog.
func (a *Adapter) SearchOperations(query string, limit int) ([]api.Operation, error) {
	return a.catalog.Search(query, limit)
}

// IngestFeed merges a batch of feed entries into the catalog.
func (a *Adapter) IngestFeed(ctx context.Context, entries []api.FeedEntry) (*api.IngestReport, error) {
	return a.catalog.Ingest(ctx, entries)
}

// DiscoverFromHost enumerates operations from the connected host.
func (a *Adapter) DiscoverFromHost(ctx context.Context) (*api.IngestReport, error) {
	return a.catalog.DiscoverFromHost(ctx)
}

// Stats returns catalog summary counters.
func (a *Adapter) Stats() api.CatalogStats {
	return a.catalog.Stats()
}
