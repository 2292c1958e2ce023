package catalog

import (
	"context"
	"testing"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, invoker host.Invoker) *Catalog {
	t.Helper()
	storage := config.NewStorageWithPath(t.TempDir())
	catalog, err := NewCatalog(storage, config.GetDefaultConfig().Risk, invoker)
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func feedEntry(id string, metadata map[string]interface{}) api.FeedEntry {
	return api.FeedEntry{ID: id, Metadata: metadata}
}

func TestCatalog_IngestAddsOperations(t *testing.T) {
	catalog := newTestCatalog(t, nil)

	report, err := catalog.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{"description": "Reads a file"}),
		feedEntry("fs_delete", nil),
		{ID: "", Metadata: nil},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"fs_read", "fs_delete"}, report.Added)
	assert.Empty(t, report.Updated)
	assert.Len(t, report.Skipped, 1)
	assert.Equal(t, 2, report.Total)

	op, err := catalog.Get("fs_read")
	require.NoError(t, err)
	assert.Equal(t, "fs", op.Category)
	assert.Equal(t, "Read", op.Label)
	assert.Equal(t, "Reads a file", op.Description)
	assert.Equal(t, api.RiskSafe, op.RiskLevel)
	assert.False(t, op.DiscoveredAt.IsZero())

	del, err := catalog.Get("fs_delete")
	require.NoError(t, err)
	assert.Equal(t, api.RiskDestructive, del.RiskLevel)
}

func TestCatalog_IdentityImmutableAcrossPasses(t *testing.T) {
	catalog := newTestCatalog(t, nil)
	ctx := context.Background()

	_, err := catalog.Ingest(ctx, []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{"description": "First description"}),
	})
	require.NoError(t, err)

	before, err := catalog.Get("fs_read")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	report, err := catalog.Ingest(ctx, []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{
			"description": "Second description",
			"risk":        "moderate",
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fs_read"}, report.Updated)
	assert.Empty(t, report.Added)

	after, err := catalog.Get("fs_read")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.DiscoveredAt, after.DiscoveredAt, "discovery timestamp is set once")
	assert.Equal(t, "Second description", after.Description)
	assert.Equal(t, api.RiskModerate, after.RiskLevel)
}

func TestCatalog_RiskOverrideFromFeed(t *testing.T) {
	catalog := newTestCatalog(t, nil)

	_, err := catalog.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{"risk": "destructive"}),
		feedEntry("fs_list", map[string]interface{}{"risk": "bogus"}),
	})
	require.NoError(t, err)

	op, err := catalog.Get("fs_read")
	require.NoError(t, err)
	assert.Equal(t, api.RiskDestructive, op.RiskLevel, "explicit override wins over keywords")

	op, err = catalog.Get("fs_list")
	require.NoError(t, err)
	assert.Equal(t, api.RiskSafe, op.RiskLevel, "invalid override falls back to classification")
}

func TestCatalog_GetUnknown(t *testing.T) {
	catalog := newTestCatalog(t, nil)
	_, err := catalog.Get("missing")
	assert.True(t, api.IsNotFound(err))
}

func TestCatalog_ListSortedByID(t *testing.T) {
	catalog := newTestCatalog(t, nil)

	_, err := catalog.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("zeta_op", nil),
		feedEntry("alpha_op", nil),
		feedEntry("mid_op", nil),
	})
	require.NoError(t, err)

	ops := catalog.List()
	require.Len(t, ops, 3)
	assert.Equal(t, "alpha_op", ops[0].ID)
	assert.Equal(t, "mid_op", ops[1].ID)
	assert.Equal(t, "zeta_op", ops[2].ID)
}

func TestCatalog_PersistAndReload(t *testing.T) {
	dir := t.TempDir()
	storage := config.NewStorageWithPath(dir)

	first, err := NewCatalog(storage, config.GetDefaultConfig().Risk, nil)
	require.NoError(t, err)
	defer first.Close()

	_, err = first.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{"description": "Reads a file"}),
		feedEntry("app_restart", nil),
	})
	require.NoError(t, err)

	second, err := NewCatalog(config.NewStorageWithPath(dir), config.GetDefaultConfig().Risk, nil)
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Load())

	ops := second.List()
	require.Len(t, ops, 2)

	op, err := second.Get("fs_read")
	require.NoError(t, err)
	assert.Equal(t, "Reads a file", op.Description)

	// Reloaded operations are searchable again
	found, err := second.Search("restart", 10)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "app_restart", found[0].ID)
}

func TestCatalog_Search(t *testing.T) {
	catalog := newTestCatalog(t, nil)

	_, err := catalog.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{"description": "Reads a file from the workspace"}),
		feedEntry("fs_write", map[string]interface{}{"description": "Writes a file"}),
		feedEntry("app_restart", map[string]interface{}{"description": "Restarts the application"}),
	})
	require.NoError(t, err)

	results, err := catalog.Search("file", 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(results))
	for _, op := range results {
		ids = append(ids, op.ID)
	}
	assert.Contains(t, ids, "fs_read")
	assert.Contains(t, ids, "fs_write")
	assert.NotContains(t, ids, "app_restart")

	results, err = catalog.Search("restart", 10)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "app_restart", results[0].ID)

	_, err = catalog.Search("", 10)
	assert.Error(t, err)

	results, err = catalog.Search("file", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestCatalog_Stats(t *testing.T) {
	catalog := newTestCatalog(t, nil)

	_, err := catalog.Ingest(context.Background(), []api.FeedEntry{
		feedEntry("fs_read", map[string]interface{}{
			"parameters": []interface{}{
				map[string]interface{}{"name": "path", "type": "string", "required": true},
			},
		}),
		feedEntry("fs_delete", nil),
		feedEntry("app.window.reload", nil),
	})
	require.NoError(t, err)

	stats := catalog.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByCategory["fs"])
	assert.Equal(t, 1, stats.ByCategory["app"])
	assert.Equal(t, 1, stats.ByRisk[string(api.RiskDestructive)])
	assert.GreaterOrEqual(t, stats.WithSig, 1)
	assert.False(t, stats.DiscoveredAt.IsZero())
}

type eventCapture struct {
	events chan api.CatalogUpdateEvent
}

func (e *eventCapture) OnCatalogUpdated(event api.CatalogUpdateEvent) {
	e.events <- event
}

func TestCatalog_PublishesUpdateEvents(t *testing.T) {
	capture := &eventCapture{events: make(chan api.CatalogUpdateEvent, 4)}
	api.SubscribeToCatalogUpdates(capture)

	catalog := newTestCatalog(t, nil)
	_, err := catalog.Ingest(context.Background(), []api.FeedEntry{feedEntry("fs_read", nil)})
	require.NoError(t, err)

	select {
	case event := <-capture.events:
		assert.Equal(t, "feed_ingested", event.Type)
		assert.Contains(t, event.Operations, "fs_read")
	case <-time.After(2 * time.Second):
		t.Fatal("no catalog update event received")
	}
}

func TestCatalog_DiscoverFromHost(t *testing.T) {
	invoker := host.NewScriptedInvoker([]host.DiscoveredOperation{
		{
			ID:          "fs_read",
			Description: "Read a file",
			Parameters: []host.DiscoveredParameter{
				{Name: "path", Type: "string", Required: true},
				{Name: "limit", Type: "integer"},
			},
		},
		{ID: "app_restart", Description: "Restart the application"},
	})

	catalog := newTestCatalog(t, invoker)

	report, err := catalog.DiscoverFromHost(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fs_read", "app_restart"}, report.Added)

	op, err := catalog.Get("fs_read")
	require.NoError(t, err)
	require.NotNil(t, op.Signature)
	require.Len(t, op.Signature.Parameters, 2)
	assert.Equal(t, api.SourceTypes, op.Signature.Parameters[0].Source)
	assert.Equal(t, api.TypeString, op.Signature.Parameters[0].Type)
	assert.True(t, op.Signature.Parameters[0].Required)
	assert.Equal(t, api.TypeNumber, op.Signature.Parameters[1].Type, "integer collapses to number")
	assert.Equal(t, api.ConfidenceMedium, op.Signature.Confidence)
}

func TestCatalog_DiscoverWithoutHost(t *testing.T) {
	catalog := newTestCatalog(t, nil)
	_, err := catalog.DiscoverFromHost(context.Background())
	assert.Error(t, err)
}
