package cmd

import (
	"fmt"
	"path"
	"strings"

	"assay/internal/api"
	"assay/internal/cli"

	"github.com/spf13/cobra"
)

var (
	listFlags    cli.CommandFlags
	listFilter   string
	listSearch   string
	listCategory string
	listRisk     string
	listLimit    int
)

// operationFilter contains the client-side filter criteria for list output.
type operationFilter struct {
	// Pattern is a wildcard pattern matched against operation ids (* and ? supported)
	Pattern string
	// Category keeps only operations in this category (case-insensitive)
	Category string
	// Risk keeps only operations at this risk level
	Risk string
}

// IsEmpty returns true if no filters are set
func (f operationFilter) IsEmpty() bool {
	return f.Pattern == "" && f.Category == "" && f.Risk == ""
}

// matchesWildcard checks if a name matches a wildcard pattern.
// Supports * (matches any sequence of characters) and ? (matches any single character).
func matchesWildcard(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	// path.Match uses the same wildcard syntax we want
	matched, err := path.Match(pattern, name)
	if err != nil {
		// Invalid pattern - return false
		return false
	}
	return matched
}

// matchesOperation checks one decoded operation against the filter criteria.
func matchesOperation(item map[string]interface{}, f operationFilter) bool {
	id, _ := item["id"].(string)
	category, _ := item["category"].(string)
	risk, _ := item["riskLevel"].(string)

	return matchesWildcard(id, f.Pattern) &&
		(f.Category == "" || strings.EqualFold(category, f.Category)) &&
		(f.Risk == "" || strings.EqualFold(risk, f.Risk))
}

// filterOperationPayload applies the filter to the array under key in a
// decoded tool payload and rebuilds the wrapper with a fresh total.
func filterOperationPayload(payload interface{}, key string, f operationFilter) interface{} {
	if f.IsEmpty() {
		return payload
	}
	wrapper, ok := payload.(map[string]interface{})
	if !ok {
		return payload
	}
	items, ok := wrapper[key].([]interface{})
	if !ok {
		return payload
	}

	filtered := make([]interface{}, 0, len(items))
	for _, item := range items {
		if entry, ok := item.(map[string]interface{}); ok && matchesOperation(entry, f) {
			filtered = append(filtered, item)
		}
	}

	return map[string]interface{}{
		key:     filtered,
		"total": len(filtered),
	}
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List operations in the command catalog",
	Long: `List the operations the catalog currently tracks.

Filtering:
  --filter <pattern>    - Filter by id pattern (wildcards * and ? supported)
  --category <name>     - Filter by category (case-insensitive)
  --risk <level>        - Filter by risk level (safe, moderate, destructive)
  --search <query>      - Full-text search over id, label, description, and
                          category, ranked by relevance

Filters combine; --search selects the candidate set and the other flags
narrow it further.

Examples:
  assay list
  assay list --filter "fs.*"
  assay list --risk destructive
  assay list --search "delete file" --limit 5
  assay list --category network --output json

Run 'assay discover' first to populate the catalog.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	cli.RegisterCommonFlags(listCmd, &listFlags)
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Filter by id pattern (wildcards * and ? supported)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Full-text search query")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	listCmd.Flags().StringVar(&listRisk, "risk", "", "Filter by risk level (safe, moderate, destructive)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of search matches (0 uses the default)")
}

func runList(cmd *cobra.Command, args []string) error {
	if listRisk != "" && !api.RiskLevel(listRisk).IsValid() {
		return fmt.Errorf("invalid risk level %q (valid: safe, moderate, destructive)", listRisk)
	}

	application, runner, err := bootstrapApp(&listFlags, "")
	if err != nil {
		return err
	}
	defer application.Close()

	ctx := commandContext(cmd)

	toolName := "assay_operation_list"
	arrayKey := "operations"
	var toolArgs map[string]interface{}
	if listSearch != "" {
		toolName = "assay_operation_search"
		arrayKey = "matches"
		toolArgs = map[string]interface{}{"query": listSearch}
		if listLimit > 0 {
			toolArgs["limit"] = listLimit
		}
	}

	payload, err := runner.RunJSON(ctx, toolName, toolArgs)
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}

	filter := operationFilter{Pattern: listFilter, Category: listCategory, Risk: listRisk}
	return runner.RenderData(filterOperationPayload(payload, arrayKey, filter))
}
