package catalog

import (
	"context"
	"fmt"
	"time"

	"assay/internal/api"
	"assay/internal/host"
	"assay/pkg/logging"
)

// Event types published after a discovery pass.
const (
	eventFeedIngested   = "feed_ingested"
	eventHostDiscovered = "host_discovered"
)

// Ingest merges a batch of feed entries into the catalog, persists the
// snapshot, and publishes a catalog update event.
func (c *Catalog) Ingest(ctx context.Context, entries []api.FeedEntry) (*api.IngestReport, error) {
	return c.ingest(ctx, entries, eventFeedIngested)
}

// DiscoverFromHost enumerates the connected host's commands and merges
// them into the catalog.
func (c *Catalog) DiscoverFromHost(ctx context.Context) (*api.IngestReport, error) {
	if c.invoker == nil {
		return nil, fmt.Errorf("no host configured for live discovery")
	}

	if err := c.invoker.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to host: %w", err)
	}

	discovered, err := c.invoker.ListOperations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate host commands: %w", err)
	}

	entries := make([]api.FeedEntry, 0, len(discovered))
	for _, op := range discovered {
		entries = append(entries, discoveredToFeedEntry(op))
	}

	logging.Info("Catalog", "Host reported %d commands", len(entries))
	return c.ingest(ctx, entries, eventHostDiscovered)
}

func (c *Catalog) ingest(ctx context.Context, entries []api.FeedEntry, eventType string) (*api.IngestReport, error) {
	report := &api.IngestReport{Skipped: make(map[string]string)}
	now := time.Now()

	c.mu.Lock()
	for i, entry := range entries {
		if entry.ID == "" {
			report.Skipped[fmt.Sprintf("entry[%d]", i)] = "missing id"
			continue
		}

		if existing, ok := c.operations[entry.ID]; ok {
			c.refreshOperation(existing, entry)
			report.Updated = append(report.Updated, entry.ID)
		} else {
			op := c.buildOperation(entry, now)
			c.operations[op.ID] = &op
			report.Added = append(report.Added, op.ID)
		}

		if err := c.index.indexOperation(*c.operations[entry.ID]); err != nil {
			logging.Warn("Catalog", "Failed to index operation %s: %v", entry.ID, err)
		}
	}
	report.Total = len(c.operations)
	c.lastDiscovery = now
	c.mu.Unlock()

	c.persist()

	touched := append(append([]string{}, report.Added...), report.Updated...)
	api.PublishCatalogUpdateEvent(api.CatalogUpdateEvent{
		Type:       eventType,
		Operations: touched,
		Timestamp:  now,
	})

	logging.Info("Catalog", "Discovery pass complete: %d added, %d updated, %d skipped, %d total",
		len(report.Added), len(report.Updated), len(report.Skipped), report.Total)
	return report, nil
}

// buildOperation turns a feed entry into a new catalog operation. This
// is the only place an Operation is born: id and DiscoveredAt are fixed
// here and never change afterwards.
func (c *Catalog) buildOperation(entry api.FeedEntry, now time.Time) api.Operation {
	category, subcategory := deriveGrouping(entry.ID)
	if entry.Category != "" {
		category = entry.Category
	}
	if s, ok := entry.Metadata["subcategory"].(string); ok && s != "" {
		subcategory = s
	}

	segments := idSegments(entry.ID)
	label := humanizeLabel(segments[len(segments)-1])
	if l, ok := entry.Metadata["label"].(string); ok && l != "" {
		label = l
	}

	description, _ := entry.Metadata["description"].(string)

	risk := classifyRisk(entry.ID, label, c.risk)
	if r, ok := entry.Metadata["risk"].(string); ok && api.RiskLevel(r).IsValid() {
		risk = api.RiskLevel(r)
	}

	var preconditions []string
	if raw, ok := entry.Metadata["preconditions"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				preconditions = append(preconditions, s)
			}
		}
	}

	return api.Operation{
		ID:            entry.ID,
		Category:      category,
		Subcategory:   subcategory,
		Label:         label,
		Description:   description,
		RiskLevel:     risk,
		Preconditions: preconditions,
		DiscoveredAt:  now,
		Signature:     inferSignature(entry.ID, description, entry.Metadata),
	}
}

// refreshOperation updates the descriptive fields of an already known
// operation. Identity and DiscoveredAt are immutable; an existing
// automatic signature is kept, a missing one may be filled in.
func (c *Catalog) refreshOperation(op *api.Operation, entry api.FeedEntry) {
	if description, ok := entry.Metadata["description"].(string); ok && description != "" {
		op.Description = description
	}
	if l, ok := entry.Metadata["label"].(string); ok && l != "" {
		op.Label = l
	}
	if r, ok := entry.Metadata["risk"].(string); ok && api.RiskLevel(r).IsValid() {
		op.RiskLevel = api.RiskLevel(r)
	}
	if op.Signature == nil {
		op.Signature = inferSignature(op.ID, op.Description, entry.Metadata)
	}
}

// discoveredToFeedEntry maps a host-reported operation onto the feed
// shape so live discovery and file feeds share one ingestion path.
func discoveredToFeedEntry(op host.DiscoveredOperation) api.FeedEntry {
	metadata := map[string]interface{}{}
	if op.Description != "" {
		metadata["description"] = op.Description
	}

	if len(op.Parameters) > 0 {
		hints := make([]interface{}, 0, len(op.Parameters))
		for _, param := range op.Parameters {
			hint := map[string]interface{}{
				"name":     param.Name,
				"type":     normalizeSchemaType(param.Type),
				"required": param.Required,
			}
			if param.Description != "" {
				hint["description"] = param.Description
			}
			if param.Default != nil {
				hint["default"] = param.Default
			}
			hints = append(hints, hint)
		}
		metadata["parameters"] = hints
	}

	return api.FeedEntry{ID: op.ID, Metadata: metadata}
}

// normalizeSchemaType maps JSON schema type names onto the parameter
// type vocabulary. "integer" collapses into number; anything unknown
// stays unknown.
func normalizeSchemaType(schemaType string) string {
	switch schemaType {
	case "string", "number", "boolean", "object", "array":
		return schemaType
	case "integer":
		return string(api.TypeNumber)
	default:
		return string(api.TypeUnknown)
	}
}
