package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"assay/internal/api"
)

// SearchCommand runs a full-text query over the operation catalog
type SearchCommand struct {
	*BaseCommand
}

// NewSearchCommand creates a new search command
func NewSearchCommand(session SessionInterface, output OutputLogger) *SearchCommand {
	return &SearchCommand{
		BaseCommand: NewBaseCommand(session, output),
	}
}

// Execute searches operation ids, labels, descriptions, and categories.
// A trailing limit=N argument caps the number of matches.
func (s *SearchCommand) Execute(ctx context.Context, args []string) error {
	parsed, err := s.parseArgs(args, 1, s.Usage())
	if err != nil {
		return err
	}

	// Peel off a trailing limit=N before joining the rest into the query
	limit := 0
	queryArgs := parsed
	if last := parsed[len(parsed)-1]; strings.HasPrefix(last, "limit=") {
		if n, convErr := strconv.Atoi(strings.TrimPrefix(last, "limit=")); convErr == nil {
			limit = n
			queryArgs = parsed[:len(parsed)-1]
		}
	}

	query := s.joinArgsFrom(queryArgs, 0)
	if query == "" {
		return fmt.Errorf("usage: %s", s.Usage())
	}

	toolArgs := map[string]interface{}{"query": query}
	if limit > 0 {
		toolArgs["limit"] = limit
	}

	result, err := s.session.CallTool(ctx, "assay_operation_search", toolArgs)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if result.IsError {
		s.output.Error("%s", firstContentText(result))
		return nil
	}

	var payload struct {
		Matches []api.Operation `json:"matches"`
	}
	if err := decodeFirstContent(result, &payload); err != nil {
		return fmt.Errorf("failed to decode search matches: %w", err)
	}

	if len(payload.Matches) == 0 {
		s.output.OutputLine("No operations matched %q", query)
		return nil
	}

	s.output.OutputLine(s.getFormatters().FormatOperationsList(payload.Matches))
	return nil
}

// Usage returns the usage string
func (s *SearchCommand) Usage() string {
	return "search <query> [limit=N]"
}

// Description returns the command description
func (s *SearchCommand) Description() string {
	return "Search the catalog by id, label, description, or category"
}

// Completions returns possible completions
func (s *SearchCommand) Completions(input string) []string {
	return []string{}
}

// Aliases returns command aliases
func (s *SearchCommand) Aliases() []string {
	return []string{"find"}
}
