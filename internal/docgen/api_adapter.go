package docgen

import (
	"context"
	"encoding/json"

	"assay/internal/api"
	"assay/internal/config"
	"assay/pkg/logging"
)

// latestPackageName is the storage name of the most recently generated
// package, used as the diff baseline for the next generation.
const latestPackageName = "latest"

// Adapter exposes documentation generation through the central API layer.
type Adapter struct {
	storage *config.Storage
	docs    config.DocsConfig
}

// NewAdapter creates a docs adapter backed by the given storage.
func NewAdapter(storage *config.Storage, docs config.DocsConfig) *Adapter {
	return &Adapter{storage: storage, docs: docs}
}

// Register registers the adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterDocs(a)
}

// GeneratePackage assembles a documentation package from the current
// catalog and result store, diffing against the most recent persisted
// package. The new package replaces it as the baseline.
func (a *Adapter) GeneratePackage(ctx context.Context, opts api.GenerateOptions) (*api.DocumentationPackage, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return nil, api.ErrCatalogNotRegistered
	}

	if opts.Version == "" {
		opts.Version = a.docs.Version
	}
	if opts.Version == "" {
		opts.Version = config.DefaultDocsVersion
	}
	if opts.Author == "" {
		opts.Author = a.docs.Author
	}
	if opts.Organization == "" {
		opts.Organization = a.docs.Organization
	}

	ops := a.mergedOperations(ctx, catalog.ListOperations())

	var results []api.TestResult
	if store := api.GetResultStore(); store != nil {
		results = store.ListResults("")
	}

	pkg, err := Generate(ops, results, a.loadPrevious(), opts)
	if err != nil {
		return nil, err
	}

	a.persist(pkg)
	return pkg, nil
}

// ExportPackage renders the package in the given formats. Defaults come
// from the documentation configuration.
func (a *Adapter) ExportPackage(ctx context.Context, pkg *api.DocumentationPackage, dir string, formats []string) (*api.ExportReport, error) {
	if dir == "" {
		dir = a.docs.ExportDir
	}
	if dir == "" {
		dir = config.DefaultExportDir
	}
	if len(formats) == 0 {
		formats = a.docs.Formats
	}
	return Export(ctx, pkg, dir, formats)
}

// mergedOperations overlays manual research onto every cataloged
// operation so the documentation reflects the merged view. Operations
// without a merged view fall back to their catalog form.
func (a *Adapter) mergedOperations(ctx context.Context, ops []api.Operation) []api.Operation {
	research := api.GetResearch()
	if research == nil {
		return ops
	}

	merged := make([]api.Operation, 0, len(ops))
	for _, op := range ops {
		view, err := research.MergedOperation(ctx, op.ID)
		if err != nil || view == nil {
			merged = append(merged, op)
			continue
		}
		merged = append(merged, *view)
	}
	return merged
}

// loadPrevious loads the persisted diff baseline. Missing or unreadable
// baselines mean a first generation.
func (a *Adapter) loadPrevious() *api.DocumentationPackage {
	data, err := a.storage.Load(config.EntityPackages, latestPackageName)
	if err != nil {
		return nil
	}

	var prev api.DocumentationPackage
	if err := json.Unmarshal(data, &prev); err != nil {
		logging.Warn("DocGen", "Ignoring unreadable previous package: %v", err)
		return nil
	}
	return &prev
}

// persist stores the package as the next diff baseline. Failures are
// logged, not returned: the generated package is already complete.
func (a *Adapter) persist(pkg *api.DocumentationPackage) {
	data, err := json.Marshal(pkg)
	if err != nil {
		logging.Error("DocGen", err, "Failed to encode documentation package")
		return
	}
	if err := a.storage.Save(config.EntityPackages, latestPackageName, data); err != nil {
		logging.Error("DocGen", err, "Failed to persist documentation package")
	}
}

// compile-time interface check
var _ api.DocsHandler = (*Adapter)(nil)
