package mcpserve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assay/internal/api"
	"assay/internal/config"
)

// Provider exposes the assay components as MCP tools. All handlers resolve
// their collaborators through the central API layer, so the provider serves
// whatever the application wired without holding references itself.
type Provider struct {
	defaults config.ExecutionDefaults
	docs     config.DocsConfig
}

// NewProvider creates a tool provider. defaults seed the execute tool's
// safety options when the caller omits them; docs seeds the generate tool.
func NewProvider(defaults config.ExecutionDefaults, docs config.DocsConfig) *Provider {
	return &Provider{defaults: defaults, docs: docs}
}

// GetTools returns all tools this provider offers
func (p *Provider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "assay_operation_list",
			Description: "List catalog operations, optionally filtered by category or risk level",
			Parameters: []api.ParameterMetadata{
				{Name: "category", Type: "string", Required: false, Description: "Only return operations in this category"},
				{Name: "risk", Type: "string", Required: false, Description: "Only return operations at this risk level (safe, moderate, destructive)"},
			},
		},
		{
			Name:        "assay_operation_describe",
			Description: "Show one operation with its researched signature, manual notes merged in",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
			},
		},
		{
			Name:        "assay_operation_search",
			Description: "Full-text search over operation ids, labels, descriptions, and categories",
			Parameters: []api.ParameterMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search query"},
				{Name: "limit", Type: "number", Required: false, Description: "Maximum number of matches", Default: 10},
			},
		},
		{
			Name:        "assay_operation_validate",
			Description: "Check proposed arguments against an operation's signature without executing anything. Reports every failed check.",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
				{Name: "args", Type: "object", Required: false, Description: "Arguments to validate"},
			},
		},
		{
			Name:        "assay_operation_execute",
			Description: "Probe an operation against the host under safety rails. Destructive operations are refused unless confirmed is true.",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
				{Name: "args", Type: "object", Required: false, Description: "Arguments to execute with"},
				{Name: "timeoutMs", Type: "number", Required: false, Description: "Probe timeout in milliseconds, configured default when omitted"},
				{Name: "createSnapshot", Type: "boolean", Required: false, Description: "Snapshot the workspace before the call so a failed run rolls back"},
				{Name: "requireConfirmation", Type: "boolean", Required: false, Description: "Gate destructive operations behind confirmation"},
				{Name: "confirmed", Type: "boolean", Required: false, Description: "Acknowledge the confirmation gate for a destructive operation"},
				{Name: "notes", Type: "string", Required: false, Description: "Commentary attached to the recorded result"},
			},
		},
		{
			Name:        "assay_result_list",
			Description: "List recorded probe results, optionally for one operation",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: false, Description: "Only return results for this operation"},
			},
		},
		{
			Name:        "assay_note_save",
			Description: "Save a manual research note for one parameter of one operation. Replaces any existing note for the same parameter.",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
				{Name: "parameter", Type: "string", Required: true, Description: "Parameter name the note documents"},
				{Name: "type", Type: "string", Required: false, Description: "Confirmed parameter type (string, number, boolean, object, array, function, any, unknown)"},
				{Name: "required", Type: "boolean", Required: false, Description: "Whether callers must provide the parameter"},
				{Name: "description", Type: "string", Required: false, Description: "Parameter documentation"},
				{Name: "default", Type: "string", Required: false, Description: "Value assumed when the parameter is omitted"},
				{Name: "notes", Type: "string", Required: false, Description: "Free-form research notes kept out of generated documentation"},
				{Name: "rules", Type: "array", Required: false, Description: "Validation rule strings, e.g. nonEmpty, min:1, oneOf:json|yaml"},
				{Name: "examples", Type: "array", Required: false, Description: "Known-good values for the parameter"},
			},
		},
		{
			Name:        "assay_note_delete",
			Description: "Delete the manual research note for one parameter of one operation",
			Parameters: []api.ParameterMetadata{
				{Name: "operationId", Type: "string", Required: true, Description: "Operation identifier"},
				{Name: "parameter", Type: "string", Required: true, Description: "Parameter name the note documents"},
			},
		},
		{
			Name:        "assay_docs_generate",
			Description: "Generate a documentation package from the catalog and recorded results, then export it",
			Parameters: []api.ParameterMetadata{
				{Name: "version", Type: "string", Required: false, Description: "Package version, configured default when omitted"},
				{Name: "author", Type: "string", Required: false, Description: "Author stamped into the package metadata"},
				{Name: "organization", Type: "string", Required: false, Description: "Organization stamped into the package metadata"},
				{Name: "out", Type: "string", Required: false, Description: "Export directory, configured default when omitted"},
				{Name: "formats", Type: "array", Required: false, Description: "Formats to render (md, json, yaml, txt)"},
			},
		},
	}
}

// ExecuteTool executes a tool by name
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	switch toolName {
	case "assay_operation_list":
		return p.handleOperationList(args)
	case "assay_operation_describe":
		return p.handleOperationDescribe(ctx, args)
	case "assay_operation_search":
		return p.handleOperationSearch(args)
	case "assay_operation_validate":
		return p.handleOperationValidate(ctx, args)
	case "assay_operation_execute":
		return p.handleOperationExecute(ctx, args)
	case "assay_result_list":
		return p.handleResultList(args)
	case "assay_note_save":
		return p.handleNoteSave(ctx, args)
	case "assay_note_delete":
		return p.handleNoteDelete(ctx, args)
	case "assay_docs_generate":
		return p.handleDocsGenerate(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}
}

// Tool handlers

func (p *Provider) handleOperationList(args map[string]interface{}) (*api.CallToolResult, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return api.HandleError(api.ErrCatalogNotRegistered), nil
	}

	risk := api.RiskLevel(stringArg(args, "risk"))
	if risk != "" && !risk.IsValid() {
		return &api.CallToolResult{
			Content: []interface{}{fmt.Sprintf("unknown risk level %q, expected safe, moderate, or destructive", risk)},
			IsError: true,
		}, nil
	}
	category := stringArg(args, "category")

	operations := make([]api.Operation, 0)
	for _, op := range catalog.ListOperations() {
		if category != "" && !strings.EqualFold(op.Category, category) {
			continue
		}
		if risk != "" && op.RiskLevel != risk {
			continue
		}
		operations = append(operations, op)
	}

	result := map[string]interface{}{
		"operations": operations,
		"total":      len(operations),
	}

	return &api.CallToolResult{
		Content: []interface{}{result},
		IsError: false,
	}, nil
}

func (p *Provider) handleOperationDescribe(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	operationID := stringArg(args, "operationId")
	if operationID == "" {
		return missingArg("operationId"), nil
	}

	// Prefer the merged view so manual research shows through; fall back
	// to the raw catalog entry when no research component is wired.
	if research := api.GetResearch(); research != nil {
		op, err := research.MergedOperation(ctx, operationID)
		if err != nil {
			return api.HandleErrorWithPrefix(err, "Failed to describe operation"), nil
		}
		return &api.CallToolResult{
			Content: []interface{}{op},
			IsError: false,
		}, nil
	}

	catalog := api.GetCatalog()
	if catalog == nil {
		return api.HandleError(api.ErrCatalogNotRegistered), nil
	}
	op, err := catalog.GetOperation(operationID)
	if err != nil {
		return api.HandleErrorWithPrefix(err, "Failed to describe operation"), nil
	}
	return &api.CallToolResult{
		Content: []interface{}{op},
		IsError: false,
	}, nil
}

func (p *Provider) handleOperationSearch(args map[string]interface{}) (*api.CallToolResult, error) {
	query := stringArg(args, "query")
	if query == "" {
		return missingArg("query"), nil
	}

	catalog := api.GetCatalog()
	if catalog == nil {
		return api.HandleError(api.ErrCatalogNotRegistered), nil
	}

	matches, err := catalog.SearchOperations(query, intArg(args, "limit", 0))
	if err != nil {
		return api.HandleErrorWithPrefix(err, "Search failed"), nil
	}

	result := map[string]interface{}{
		"matches": matches,
		"total":   len(matches),
	}

	return &api.CallToolResult{
		Content: []interface{}{result},
		IsError: false,
	}, nil
}

func (p *Provider) handleOperationValidate(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	operationID := stringArg(args, "operationId")
	if operationID == "" {
		return missingArg("operationId"), nil
	}
	proposed, ok := objectArg(args, "args")
	if !ok {
		return &api.CallToolResult{
			Content: []interface{}{"args must be an object"},
			IsError: true,
		}, nil
	}

	validation := api.GetValidation()
	if validation == nil {
		return api.HandleError(api.ErrValidationNotRegistered), nil
	}

	result, err := validation.ValidateArgs(ctx, operationID, proposed)
	if err != nil {
		return api.HandleErrorWithPrefix(err, "Validation failed"), nil
	}

	// A completed check is a successful tool call even when the arguments
	// turn out invalid; the payload carries the verdict.
	return &api.CallToolResult{
		Content: []interface{}{result},
		IsError: false,
	}, nil
}

func (p *Provider) handleOperationExecute(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	operationID := stringArg(args, "operationId")
	if operationID == "" {
		return missingArg("operationId"), nil
	}
	probeArgs, ok := objectArg(args, "args")
	if !ok {
		return &api.CallToolResult{
			Content: []interface{}{"args must be an object"},
			IsError: true,
		}, nil
	}

	engine := api.GetExecution()
	if engine == nil {
		return api.HandleError(api.ErrExecutionNotRegistered), nil
	}

	opts := api.ExecuteOptions{
		CreateSnapshot:      boolArg(args, "createSnapshot", p.defaults.CreateSnapshot),
		RequireConfirmation: boolArg(args, "requireConfirmation", p.defaults.RequireConfirmation),
		Confirmed:           boolArg(args, "confirmed", false),
		Notes:               stringArg(args, "notes"),
	}
	timeoutMs := p.defaults.TimeoutMs
	if v, ok := numberArg(args, "timeoutMs"); ok {
		timeoutMs = int64(v)
	}
	if timeoutMs > 0 {
		opts.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	outcome, err := engine.Execute(ctx, operationID, probeArgs, opts)
	if err != nil {
		if api.IsConfirmationRequired(err) {
			return &api.CallToolResult{
				Content: []interface{}{fmt.Sprintf("%v. Re-run with confirmed set to true to proceed.", err)},
				IsError: true,
			}, nil
		}
		return api.HandleErrorWithPrefix(err, "Execution failed"), nil
	}

	return &api.CallToolResult{
		Content: []interface{}{outcome},
		IsError: false,
	}, nil
}

func (p *Provider) handleResultList(args map[string]interface{}) (*api.CallToolResult, error) {
	store := api.GetResultStore()
	if store == nil {
		return api.HandleError(api.ErrResultStoreNotRegistered), nil
	}

	results := store.ListResults(stringArg(args, "operationId"))

	result := map[string]interface{}{
		"results": results,
		"total":   len(results),
	}

	return &api.CallToolResult{
		Content: []interface{}{result},
		IsError: false,
	}, nil
}

func (p *Provider) handleNoteSave(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	operationID := stringArg(args, "operationId")
	if operationID == "" {
		return missingArg("operationId"), nil
	}
	parameter := stringArg(args, "parameter")
	if parameter == "" {
		return missingArg("parameter"), nil
	}

	research := api.GetResearch()
	if research == nil {
		return api.HandleError(api.ErrResearchNotRegistered), nil
	}

	entry := api.ManualEntry{
		OperationID: operationID,
		Parameter:   parameter,
		Type:        api.ParameterType(stringArg(args, "type")),
		Required:    boolArg(args, "required", false),
		Description: stringArg(args, "description"),
		Default:     args["default"],
		Notes:       stringArg(args, "notes"),
		Rules:       stringSliceArg(args, "rules"),
	}
	if examples, ok := args["examples"].([]interface{}); ok {
		entry.Examples = examples
	}

	if err := research.SaveEntry(ctx, entry); err != nil {
		return api.HandleErrorWithPrefix(err, "Failed to save note"), nil
	}

	return &api.CallToolResult{
		Content: []interface{}{fmt.Sprintf("Saved note for %s/%s", operationID, parameter)},
		IsError: false,
	}, nil
}

func (p *Provider) handleNoteDelete(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	operationID := stringArg(args, "operationId")
	if operationID == "" {
		return missingArg("operationId"), nil
	}
	parameter := stringArg(args, "parameter")
	if parameter == "" {
		return missingArg("parameter"), nil
	}

	research := api.GetResearch()
	if research == nil {
		return api.HandleError(api.ErrResearchNotRegistered), nil
	}

	if err := research.RemoveEntry(ctx, operationID, parameter); err != nil {
		return api.HandleErrorWithPrefix(err, "Failed to delete note"), nil
	}

	return &api.CallToolResult{
		Content: []interface{}{fmt.Sprintf("Deleted note for %s/%s", operationID, parameter)},
		IsError: false,
	}, nil
}

func (p *Provider) handleDocsGenerate(ctx context.Context, args map[string]interface{}) (*api.CallToolResult, error) {
	docs := api.GetDocs()
	if docs == nil {
		return api.HandleError(api.ErrDocsNotRegistered), nil
	}

	opts := api.GenerateOptions{
		Version:      stringArg(args, "version"),
		Author:       stringArg(args, "author"),
		Organization: stringArg(args, "organization"),
	}
	pkg, err := docs.GeneratePackage(ctx, opts)
	if err != nil {
		return api.HandleErrorWithPrefix(err, "Failed to generate documentation"), nil
	}

	report, err := docs.ExportPackage(ctx, pkg, stringArg(args, "out"), stringSliceArg(args, "formats"))
	if err != nil {
		return api.HandleErrorWithPrefix(err, "Failed to export documentation"), nil
	}

	result := map[string]interface{}{
		"version":      pkg.Metadata.Version,
		"commandCount": pkg.Metadata.CommandCount,
		"testedCount":  pkg.Metadata.TestedCount,
		"qualityScore": pkg.Quality.OverallScore,
		"artifacts":    report.Artifacts,
	}
	if len(report.Warnings) > 0 {
		result["warnings"] = report.Warnings
	}

	return &api.CallToolResult{
		Content: []interface{}{result},
		IsError: false,
	}, nil
}

// Argument extraction helpers. Tool arguments arrive as decoded JSON, so
// numbers are float64 and missing keys are simply absent.

func missingArg(name string) *api.CallToolResult {
	return &api.CallToolResult{
		Content: []interface{}{fmt.Sprintf("%s argument is required", name)},
		IsError: true,
	}
}

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

func boolArg(args map[string]interface{}, name string, fallback bool) bool {
	if v, ok := args[name].(bool); ok {
		return v
	}
	return fallback
}

func intArg(args map[string]interface{}, name string, fallback int) int {
	if v, ok := numberArg(args, name); ok {
		return int(v)
	}
	return fallback
}

func numberArg(args map[string]interface{}, name string) (float64, bool) {
	switch v := args[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// objectArg returns the named argument as a map. ok is false only when the
// argument is present but not an object; an absent argument yields nil, true.
func objectArg(args map[string]interface{}, name string) (map[string]interface{}, bool) {
	raw, present := args[name]
	if !present || raw == nil {
		return nil, true
	}
	m, ok := raw.(map[string]interface{})
	return m, ok
}

func stringSliceArg(args map[string]interface{}, name string) []string {
	raw, ok := args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
