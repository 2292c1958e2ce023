package docgen

import (
	"sort"

	"assay/internal/api"
)

// buildTypeDefinitions derives language-neutral type definitions from the
// documented surface. Protocol envelopes are emitted only when probe
// results exist, since they document the remote invocation exchange.
func buildTypeDefinitions(ops []api.Operation, results []api.TestResult) []api.TypeDefinition {
	defs := []api.TypeDefinition{
		{
			Name:        "Operation",
			Kind:        "struct",
			Description: "A discovered command with classification and researched signature",
			Fields: []api.FieldDefinition{
				{Name: "id", Type: "string", Required: true, Description: "unique, immutable identifier"},
				{Name: "category", Type: "string", Required: true},
				{Name: "subcategory", Type: "string", Required: false},
				{Name: "label", Type: "string", Required: true},
				{Name: "description", Type: "string", Required: false},
				{Name: "riskLevel", Type: "RiskLevel", Required: true},
				{Name: "preconditions", Type: "string[]", Required: false},
				{Name: "discoveredAt", Type: "timestamp", Required: true},
				{Name: "signature", Type: "Signature", Required: false},
			},
		},
		{
			Name:        "Signature",
			Kind:        "struct",
			Description: "Researched calling convention",
			Fields: []api.FieldDefinition{
				{Name: "parameters", Type: "Parameter[]", Required: true, Description: "manual entries first"},
				{Name: "returnType", Type: "string", Required: false},
				{Name: "async", Type: "boolean", Required: false},
				{Name: "confidence", Type: "Confidence", Required: true},
				{Name: "sources", Type: "ParameterSource[]", Required: false},
				{Name: "researchedAt", Type: "timestamp", Required: false},
			},
		},
		{
			Name:        "Parameter",
			Kind:        "struct",
			Description: "One argument of a signature; names are unique within a signature",
			Fields: []api.FieldDefinition{
				{Name: "name", Type: "string", Required: true},
				{Name: "type", Type: "ParameterType", Required: true},
				{Name: "required", Type: "boolean", Required: true},
				{Name: "description", Type: "string", Required: false},
				{Name: "default", Type: "any", Required: false},
				{Name: "source", Type: "ParameterSource", Required: true},
				{Name: "rules", Type: "string[]", Required: false},
			},
		},
		{
			Name:        "RiskLevel",
			Kind:        "enum",
			Description: "Blast radius of invoking an operation",
			Values:      []string{string(api.RiskSafe), string(api.RiskModerate), string(api.RiskDestructive)},
		},
		{
			Name:        "ParameterType",
			Kind:        "enum",
			Description: "Declared argument type",
			Values: []string{
				string(api.TypeString), string(api.TypeNumber), string(api.TypeBoolean),
				string(api.TypeObject), string(api.TypeArray), string(api.TypeFunction),
				string(api.TypeAny), string(api.TypeUnknown),
			},
		},
		{
			Name:        "ParameterSource",
			Kind:        "enum",
			Description: "How a parameter definition was obtained",
			Values: []string{
				string(api.SourceManual), string(api.SourceTypes),
				string(api.SourceDocs), string(api.SourceHeuristic),
			},
		},
		{
			Name:        "Confidence",
			Kind:        "enum",
			Description: "Trustworthiness of a researched signature",
			Values:      []string{string(api.ConfidenceHigh), string(api.ConfidenceMedium), string(api.ConfidenceLow)},
		},
	}

	if categories := observedCategories(ops); len(categories) > 0 {
		defs = append(defs, api.TypeDefinition{
			Name:        "Category",
			Kind:        "enum",
			Description: "Top-level groupings observed in the catalog",
			Values:      categories,
		})
	}

	if len(results) > 0 {
		defs = append(defs,
			api.TypeDefinition{
				Name:        "ExecuteRequest",
				Kind:        "envelope",
				Description: "Remote invocation request payload",
				Fields: []api.FieldDefinition{
					{Name: "commandId", Type: "string", Required: true},
					{Name: "parameters", Type: "object", Required: false},
					{Name: "timeoutMs", Type: "number", Required: false},
					{Name: "createSnapshot", Type: "boolean", Required: false},
					{Name: "requireConfirmation", Type: "boolean", Required: false},
				},
			},
			api.TypeDefinition{
				Name:        "ExecuteResult",
				Kind:        "envelope",
				Description: "Remote invocation result payload, mirrors ExecutionOutcome",
				Fields: []api.FieldDefinition{
					{Name: "success", Type: "boolean", Required: true},
					{Name: "durationMs", Type: "number", Required: true},
					{Name: "result", Type: "any", Required: false},
					{Name: "sideEffects", Type: "SideEffect[]", Required: false},
					{Name: "warnings", Type: "string[]", Required: false},
				},
			},
			api.TypeDefinition{
				Name:        "ExecuteError",
				Kind:        "envelope",
				Description: "Remote invocation error payload",
				Fields: []api.FieldDefinition{
					{Name: "message", Type: "string", Required: true},
					{Name: "kind", Type: "string", Required: true, Description: "Timeout, Failure, Refused, or Canceled"},
					{Name: "trace", Type: "string", Required: false},
				},
			},
		)
	}

	return defs
}

func observedCategories(ops []api.Operation) []string {
	seen := map[string]bool{}
	for _, op := range ops {
		if op.Category != "" {
			seen[op.Category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
