package docgen

import (
	"fmt"
	"sort"
	"time"

	"assay/internal/api"
	"assay/pkg/logging"
)

// Generate assembles a documentation package from the catalog and the
// recorded probe results. prev is the previously generated package, nil on
// the first run; when present the package carries a change summary diffed
// against it.
func Generate(ops []api.Operation, results []api.TestResult, prev *api.DocumentationPackage, opts api.GenerateOptions) (*api.DocumentationPackage, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("package version is required")
	}

	generatedAt := time.Now()

	sorted := make([]api.Operation, len(ops))
	copy(sorted, ops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	selected := selectResults(sorted, results)

	pkg := &api.DocumentationPackage{
		Metadata: api.PackageMetadata{
			Version:      opts.Version,
			GeneratedAt:  generatedAt,
			CommandCount: len(sorted),
			TestedCount:  len(selected),
			Author:       opts.Author,
			Organization: opts.Organization,
			Changes:      computeChangeSummary(prev, sorted),
		},
		Operations:      sorted,
		Results:         selected,
		Schema:          buildSchemaDocument(sorted, results, generatedAt),
		TypeDefinitions: buildTypeDefinitions(sorted, selected),
		API:             buildAPIDescription(selected, opts.Version),
		Quality:         assessQuality(sorted, results),
	}

	logging.Info("DocGen", "Generated documentation package version %s: %d commands, %d tested, quality %d",
		opts.Version, pkg.Metadata.CommandCount, pkg.Metadata.TestedCount, pkg.Quality.OverallScore)

	return pkg, nil
}

// selectResults keeps the most recent successful result per cataloged
// operation. These become the package's worked examples.
func selectResults(ops []api.Operation, results []api.TestResult) []api.TestResult {
	known := make(map[string]bool, len(ops))
	for _, op := range ops {
		known[op.ID] = true
	}

	latest := map[string]api.TestResult{}
	for _, result := range results {
		if !result.Outcome.Success || !known[result.OperationID] {
			continue
		}
		current, exists := latest[result.OperationID]
		if !exists || result.Timestamp.After(current.Timestamp) {
			latest[result.OperationID] = result
		}
	}

	selected := make([]api.TestResult, 0, len(latest))
	for _, result := range latest {
		selected = append(selected, result)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].OperationID < selected[j].OperationID })
	return selected
}
