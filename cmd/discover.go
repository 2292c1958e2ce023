package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"assay/internal/api"
	"assay/internal/catalog"
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var (
	discoverFlags cli.CommandFlags
	discoverFeed  string
	discoverHost  string
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover operations from a feed file or the connected host",
	Long: `Discover operations and merge them into the command catalog.

Two discovery sources are supported:

1. Feed file (--feed):
   Ingests a JSON or YAML feed of the form
   {"commands": [{"id": ..., "category": ..., "metadata": ...}], "generatedAt": ...}.
   No host connection is needed.

2. Host enumeration (--host, or the host configured in config.yaml):
   Connects to the hosting application and enumerates the operations it
   exposes. --host accepts an http(s) URL or a command line to launch.

Re-discovery never changes an operation's id and never discards researched
signatures; it refreshes metadata and reports what was added, updated, and
skipped.

Examples:
  assay discover --feed ./registry-dump.json
  assay discover --host "node ./host-shim.js"
  assay discover --host https://localhost:9321/mcp
  assay discover --output json`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	cli.RegisterCommonFlags(discoverCmd, &discoverFlags)
	discoverCmd.Flags().StringVar(&discoverFeed, "feed", "", "Discovery feed file (JSON or YAML) to ingest")
	discoverCmd.Flags().StringVar(&discoverHost, "host", "", "Host to enumerate (http(s) URL or command line), overrides the configured host")
	discoverCmd.MarkFlagsMutuallyExclusive("feed", "host")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&discoverFlags, discoverHost)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := commandContext(cmd)

	var report *api.IngestReport
	if discoverFeed != "" {
		err = runner.WithProgress("Ingesting discovery feed...", func() error {
			var ingestErr error
			report, ingestErr = ingestFeedFile(ctx, discoverFeed)
			return ingestErr
		})
	} else {
		err = runner.WithProgress("Discovering operations from host...", func() error {
			if connectErr := application.ConnectHost(ctx); connectErr != nil {
				return connectErr
			}
			var discoverErr error
			report, discoverErr = api.GetCatalog().DiscoverFromHost(ctx)
			return discoverErr
		})
	}
	if err != nil {
		return err
	}

	format := runner.GetOptions().Format
	if format == cli.OutputFormatJSON || format == cli.OutputFormatYAML {
		return runner.RenderResult(report)
	}

	printIngestReport(cmd, report)
	return nil
}

// ingestFeedFile reads a feed file and merges its entries into the catalog.
func ingestFeedFile(ctx context.Context, path string) (*api.IngestReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed file %s: %w", path, err)
	}

	entries, err := catalog.ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed file %s: %w", path, err)
	}

	return api.GetCatalog().IngestFeed(ctx, entries)
}

// printIngestReport prints the human-readable discovery summary.
func printIngestReport(cmd *cobra.Command, report *api.IngestReport) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
		"Catalog now tracks %d operations (%d added, %d updated)",
		report.Total, len(report.Added), len(report.Updated))))

	if len(report.Skipped) == 0 {
		return
	}

	ids := make([]string, 0, len(report.Skipped))
	for id := range report.Skipped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Skipped %s: %s", id, report.Skipped[id])))
	}
}
