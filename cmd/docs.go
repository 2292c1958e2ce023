package cmd

import (
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var (
	docsFlags        cli.CommandFlags
	docsOut          string
	docsFormats      []string
	docsAuthor       string
	docsOrganization string
	docsVersion      string
)

// docsCmd groups the documentation package subcommands
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate integration documentation packages",
	Long: `Generate documentation packages from the catalog, the merged signatures,
and the recorded probe results.`,
}

// docsGenerateCmd represents the docs generate command
var docsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and export the documentation package",
	Long: `Assemble a documentation package from the current catalog and result
store, diff it against the previous package for the changelog, and export it
in the requested formats.

Per-format render failures become warnings; the export only fails when no
artifact could be produced at all. The package itself is persisted so the
next run can diff against it.

Formats: md, json, yaml, txt.

Examples:
  assay docs generate
  assay docs generate --out ./dist/docs --formats md,json
  assay docs generate --version 1.2.0 --author "Jo Doe" --organization Acme`,
	Args: cobra.NoArgs,
	RunE: runDocsGenerate,
}

func init() {
	rootCmd.AddCommand(docsCmd)

	cli.RegisterCommonFlags(docsCmd, &docsFlags)
	docsGenerateCmd.Flags().StringVar(&docsOut, "out", "", "Export directory (overrides the configured default)")
	docsGenerateCmd.Flags().StringSliceVar(&docsFormats, "formats", nil, "Formats to render (md, json, yaml, txt)")
	docsGenerateCmd.Flags().StringVar(&docsAuthor, "author", "", "Author stamped into the package metadata")
	docsGenerateCmd.Flags().StringVar(&docsOrganization, "organization", "", "Organization stamped into the package metadata")
	docsGenerateCmd.Flags().StringVar(&docsVersion, "version", "", "Package version (overrides the configured default)")

	docsCmd.AddCommand(docsGenerateCmd)
}

func runDocsGenerate(cmd *cobra.Command, args []string) error {
	application, runner, err := bootstrapApp(&docsFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	toolArgs := map[string]interface{}{}
	if docsVersion != "" {
		toolArgs["version"] = docsVersion
	}
	if docsAuthor != "" {
		toolArgs["author"] = docsAuthor
	}
	if docsOrganization != "" {
		toolArgs["organization"] = docsOrganization
	}
	if docsOut != "" {
		toolArgs["out"] = docsOut
	}
	if len(docsFormats) > 0 {
		formats := make([]interface{}, len(docsFormats))
		for i, format := range docsFormats {
			formats[i] = format
		}
		toolArgs["formats"] = formats
	}

	return runner.Run(commandContext(cmd), "assay_docs_generate", toolArgs)
}
