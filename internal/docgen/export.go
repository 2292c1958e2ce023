package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"assay/internal/api"
	"assay/pkg/logging"
)

// DefaultFormats are rendered when the caller declares none.
var DefaultFormats = []string{"md", "json"}

// Export renders the package under dir in the declared formats. Formats
// render in parallel; a failing or unknown format records a warning and
// the others complete. The export fails only when no artifact could be
// produced at all.
func Export(ctx context.Context, pkg *api.DocumentationPackage, dir string, formats []string) (*api.ExportReport, error) {
	if pkg == nil {
		return nil, fmt.Errorf("documentation package is nil")
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}

	var (
		mu     sync.Mutex
		report api.ExportReport
	)
	warn := func(format string, err error) {
		mu.Lock()
		report.Warnings = append(report.Warnings, fmt.Sprintf("format %s: %v", format, err))
		mu.Unlock()
		logging.Warn("DocGen", "Export format %s failed: %v", format, err)
	}

	group, ctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			render, known := renderers[format]
			if !known {
				warn(format, fmt.Errorf("unknown export format"))
				return nil
			}

			artifacts, err := render(pkg)
			if err != nil {
				warn(format, err)
				return nil
			}

			for _, a := range artifacts {
				if err := os.WriteFile(filepath.Join(dir, a.name), a.data, 0644); err != nil {
					warn(format, fmt.Errorf("failed to write %s: %w", a.name, err))
					return nil
				}
				mu.Lock()
				report.Artifacts = append(report.Artifacts, a.name)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if len(report.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts produced: %v", report.Warnings)
	}

	sort.Strings(report.Artifacts)
	logging.Info("DocGen", "Exported %d artifacts to %s (%d warnings)",
		len(report.Artifacts), dir, len(report.Warnings))
	return &report, nil
}
