package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"assay/internal/api"
	"assay/internal/formatting"
)

// Session wraps the in-process tool provider for the REPL.
//
// It plays the role a network client would against a remote server: tools are
// called through the api.ToolProvider surface, and the discovered operations
// are cached as typed records for tab completion and lookup. All cache access
// is thread safe.
type Session struct {
	provider   api.ToolProvider
	logger     *Logger
	formatters formatting.Formatter

	mu             sync.RWMutex
	operationCache []api.Operation
}

// NewSession creates a session over the given provider.
//
// Args:
//   - provider: tool provider to drive (usually the mcpserve provider)
//   - logger: logger for status output and debugging
func NewSession(provider api.ToolProvider, logger *Logger) *Session {
	return &Session{
		provider:   provider,
		logger:     logger,
		formatters: formatting.NewConsoleFormatter(formatting.Options{Format: formatting.FormatConsole}),
	}
}

// CallTool executes a provider tool by name.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]interface{}) (*api.CallToolResult, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	s.logger.Debug("Calling tool %s", name)
	return s.provider.ExecuteTool(ctx, name, args)
}

// RefreshOperations reloads the operation cache from the catalog.
func (s *Session) RefreshOperations(ctx context.Context) error {
	result, err := s.CallTool(ctx, "assay_operation_list", nil)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}
	if result.IsError {
		return fmt.Errorf("failed to list operations: %s", firstText(result))
	}

	var payload struct {
		Operations []api.Operation `json:"operations"`
	}
	if err := decodeContent(result, &payload); err != nil {
		return fmt.Errorf("failed to decode operation list: %w", err)
	}

	s.mu.Lock()
	s.operationCache = payload.Operations
	s.mu.Unlock()

	s.logger.Debug("Cached %d operations", len(payload.Operations))
	return nil
}

// Operations returns a copy of the cached operations.
func (s *Session) Operations() []api.Operation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ops := make([]api.Operation, len(s.operationCache))
	copy(ops, s.operationCache)
	return ops
}

// GetFormatters returns the formatter used for rendering catalog data.
// Commands cast the returned value to their formatter interface.
func (s *Session) GetFormatters() interface{} {
	return s.formatters
}

// decodeContent re-marshals the first content entry of a tool result into the
// given target. Payloads arrive as typed structs or generic maps depending on
// the handler; the JSON round trip normalizes both.
func decodeContent(result *api.CallToolResult, target interface{}) error {
	if result == nil || len(result.Content) == 0 {
		return fmt.Errorf("empty tool result")
	}
	raw, err := json.Marshal(result.Content[0])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

// firstText renders the first content entry as a string for error display.
func firstText(result *api.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	if s, ok := result.Content[0].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", result.Content[0])
}
