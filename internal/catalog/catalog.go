package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/internal/host"
	"assay/pkg/logging"
)

const snapshotName = "snapshot"

// snapshotDocument is the persisted discovery snapshot, written after
// each pass and read on startup.
type snapshotDocument struct {
	Commands     []api.Operation  `json:"commands"`
	Stats        api.CatalogStats `json:"stats"`
	DiscoveredAt time.Time        `json:"discoveredAt"`
}

// Catalog is the registry of discovered operations. Identity is
// immutable: once an id is known, discovery passes may refresh its
// descriptive metadata but never reassign the id or the discovery
// timestamp.
type Catalog struct {
	mu            sync.RWMutex
	operations    map[string]*api.Operation
	index         *searchIndex
	storage       *config.Storage
	risk          config.RiskConfig
	invoker       host.Invoker
	lastDiscovery time.Time
}

// NewCatalog creates a catalog. invoker may be nil when no host is
// configured; feed ingestion still works without one.
func NewCatalog(storage *config.Storage, risk config.RiskConfig, invoker host.Invoker) (*Catalog, error) {
	index, err := newSearchIndex()
	if err != nil {
		return nil, err
	}
	return &Catalog{
		operations: make(map[string]*api.Operation),
		index:      index,
		storage:    storage,
		risk:       risk,
		invoker:    invoker,
	}, nil
}

// Load reads the persisted discovery snapshot and rebuilds the search
// index. A missing snapshot is a fresh start, not an error.
func (c *Catalog) Load() error {
	data, err := c.storage.Load(config.EntityCatalog, snapshotName)
	if err != nil {
		logging.Debug("Catalog", "No discovery snapshot found, starting empty")
		return nil
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse discovery snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.operations = make(map[string]*api.Operation, len(doc.Commands))
	for i := range doc.Commands {
		op := doc.Commands[i]
		if op.ID == "" {
			continue
		}
		c.operations[op.ID] = &op
		if err := c.index.indexOperation(op); err != nil {
			logging.Warn("Catalog", "Failed to index operation %s: %v", op.ID, err)
		}
	}
	c.lastDiscovery = doc.DiscoveredAt

	logging.Info("Catalog", "Loaded %d operations from discovery snapshot", len(c.operations))
	return nil
}

// Close releases the search index.
func (c *Catalog) Close() error {
	return c.index.close()
}

// List returns all operations sorted by id.
func (c *Catalog) List() []api.Operation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]api.Operation, 0, len(c.operations))
	for _, op := range c.operations {
		out = append(out, *op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns one operation by id.
func (c *Catalog) Get(id string) (*api.Operation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	op, ok := c.operations[id]
	if !ok {
		return nil, api.NewOperationNotFoundError(id)
	}
	copied := *op
	return &copied, nil
}

// Search runs a full-text query over id, label, description and
// category, returning matches in relevance order.
func (c *Catalog) Search(query string, limit int) ([]api.Operation, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	ids, err := c.index.search(query, limit)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]api.Operation, 0, len(ids))
	for _, id := range ids {
		if op, ok := c.operations[id]; ok {
			out = append(out, *op)
		}
	}
	return out, nil
}

// Stats returns summary counters for status displays and the snapshot.
func (c *Catalog) Stats() api.CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statsLocked()
}

func (c *Catalog) statsLocked() api.CatalogStats {
	stats := api.CatalogStats{
		Total:        len(c.operations),
		ByCategory:   make(map[string]int),
		ByRisk:       make(map[string]int),
		DiscoveredAt: c.lastDiscovery,
	}
	for _, op := range c.operations {
		stats.ByCategory[op.Category]++
		stats.ByRisk[string(op.RiskLevel)]++
		if op.Signature != nil {
			stats.WithSig++
		}
	}
	return stats
}

// persist writes the discovery snapshot. Failures are logged, not
// returned: the in-memory catalog is already updated and losing the
// snapshot only costs the next startup a re-discovery.
func (c *Catalog) persist() {
	c.mu.RLock()
	doc := snapshotDocument{
		Commands:     make([]api.Operation, 0, len(c.operations)),
		Stats:        c.statsLocked(),
		DiscoveredAt: c.lastDiscovery,
	}
	for _, op := range c.operations {
		doc.Commands = append(doc.Commands, *op)
	}
	c.mu.RUnlock()

	sort.Slice(doc.Commands, func(i, j int) bool { return doc.Commands[i].ID < doc.Commands[j].ID })

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logging.Error("Catalog", err, "Failed to marshal discovery snapshot")
		return
	}
	if err := c.storage.Save(config.EntityCatalog, snapshotName, data); err != nil {
		logging.Error("Catalog", err, "Failed to persist discovery snapshot")
	}
}
