package docgen

import (
	"time"

	"assay/internal/api"
)

// schemaID identifies the schema document dialect.
const schemaID = "assay/v1"

// buildSchemaDocument assembles the machine-readable schema of the
// documented surface. Example values come from successful probe results.
func buildSchemaDocument(ops []api.Operation, results []api.TestResult, generatedAt time.Time) api.SchemaDocument {
	doc := api.SchemaDocument{
		Schema:      schemaID,
		Title:       "Assay Command Catalog",
		GeneratedAt: generatedAt,
		Definitions: map[string]api.SchemaDefinition{},
	}

	doc.Definitions["operation"] = api.SchemaDefinition{
		Type:        "object",
		Description: "A discovered command with classification and researched signature",
		Properties: map[string]api.SchemaProperty{
			"id":          {Type: "string", Description: "Unique, immutable operation identifier"},
			"category":    {Type: "string", Description: "Top-level grouping"},
			"subcategory": {Type: "string", Description: "Optional second-level grouping"},
			"label":       {Type: "string", Description: "Human-readable short name"},
			"description": {Type: "string", Description: "What the operation does"},
			"riskLevel": {
				Type:        "string",
				Description: "Blast radius classification",
				Enum:        []string{string(api.RiskSafe), string(api.RiskModerate), string(api.RiskDestructive)},
				Default:     string(api.RiskSafe),
			},
			"preconditions": {Type: "array", Description: "Capability names required before invocation"},
			"discoveredAt":  {Type: "string", Description: "First-seen timestamp, RFC 3339"},
			"signature":     {Type: "object", Description: "Researched calling convention, see signature"},
		},
		Required: []string{"id", "category", "label", "riskLevel"},
		Examples: operationExamples(ops),
	}

	doc.Definitions["parameter"] = api.SchemaDefinition{
		Type:        "object",
		Description: "One argument of an operation signature",
		Properties: map[string]api.SchemaProperty{
			"name": {Type: "string", Description: "Argument name, unique within the signature"},
			"type": {
				Type: "string",
				Enum: []string{
					string(api.TypeString), string(api.TypeNumber), string(api.TypeBoolean),
					string(api.TypeObject), string(api.TypeArray), string(api.TypeFunction),
					string(api.TypeAny), string(api.TypeUnknown),
				},
				Default: string(api.TypeUnknown),
			},
			"required":    {Type: "boolean", Description: "Whether callers must provide the argument"},
			"description": {Type: "string"},
			"default":     {Type: "any", Description: "Value assumed when omitted"},
			"source": {
				Type:        "string",
				Description: "How the definition was obtained; manual entries win during merging",
				Enum: []string{
					string(api.SourceManual), string(api.SourceTypes),
					string(api.SourceDocs), string(api.SourceHeuristic),
				},
			},
			"rules": {Type: "array", Description: "Validation rule strings, e.g. nonEmpty, min:1, oneOf:a|b"},
		},
		Required: []string{"name", "type", "source"},
	}

	doc.Definitions["signature"] = api.SchemaDefinition{
		Type:        "object",
		Description: "Researched calling convention of an operation",
		Properties: map[string]api.SchemaProperty{
			"parameters": {Type: "array", Description: "Arguments in declaration order, manual first"},
			"returnType": {Type: "string", Description: "Declared result type, when known"},
			"async":      {Type: "boolean", Description: "Whether the host executes asynchronously"},
			"confidence": {
				Type:        "string",
				Description: "Trustworthiness of the signature as a whole",
				Enum:        []string{string(api.ConfidenceHigh), string(api.ConfidenceMedium), string(api.ConfidenceLow)},
			},
			"sources":      {Type: "array", Description: "Distinct parameter sources that contributed"},
			"researchedAt": {Type: "string", Description: "When the signature was last assembled, RFC 3339"},
		},
		Required: []string{"parameters", "confidence"},
	}

	doc.Definitions["test-result"] = api.SchemaDefinition{
		Type:        "object",
		Description: "One recorded probe of an operation; append-only",
		Properties: map[string]api.SchemaProperty{
			"id":          {Type: "string", Description: "Unique result identifier"},
			"operationId": {Type: "string", Description: "Probed operation"},
			"args":        {Type: "object", Description: "Arguments the probe ran with"},
			"outcome":     {Type: "object", Description: "Complete execution record, see execution-outcome"},
			"notes":       {Type: "string", Description: "Operator commentary"},
			"timestamp":   {Type: "string", Description: "When the probe ran, RFC 3339"},
		},
		Required: []string{"id", "operationId", "outcome", "timestamp"},
		Examples: resultExamples(results),
	}

	doc.Definitions["execution-outcome"] = api.SchemaDefinition{
		Type:        "object",
		Description: "Result of one execution attempt; warnings degrade, never replace, the call outcome",
		Properties: map[string]api.SchemaProperty{
			"success":    {Type: "boolean", Description: "Whether the host call completed without error"},
			"durationMs": {Type: "number", Description: "Wall-clock duration of the host call"},
			"result":     {Type: "any", Description: "Host-returned value on success"},
			"error":      {Type: "object", Description: "Failure detail with kind Timeout, Failure, Refused, or Canceled"},
			"sideEffects": {
				Type:        "array",
				Description: "Effects observed during the call, see side-effect",
			},
			"warnings": {Type: "array", Description: "Infrastructure problems that degraded the run"},
		},
		Required: []string{"success", "durationMs"},
	}

	doc.Definitions["side-effect"] = api.SchemaDefinition{
		Type:        "object",
		Description: "One observed consequence of executing an operation",
		Properties: map[string]api.SchemaProperty{
			"type": {
				Type: "string",
				Enum: []string{
					string(api.EffectFileCreated), string(api.EffectFileModified),
					string(api.EffectFileDeleted), string(api.EffectStateChanged),
				},
			},
			"description": {Type: "string"},
			"resource":    {Type: "string", Description: "Affected path or key, when known"},
			"timestamp":   {Type: "string", Description: "When the effect was observed, RFC 3339"},
		},
		Required: []string{"type", "description", "timestamp"},
	}

	return doc
}

// operationExamples picks up to three representative operations.
func operationExamples(ops []api.Operation) []interface{} {
	var examples []interface{}
	for _, op := range ops {
		if op.Description == "" || op.Signature == nil {
			continue
		}
		examples = append(examples, map[string]interface{}{
			"id":          op.ID,
			"category":    op.Category,
			"label":       op.Label,
			"description": op.Description,
			"riskLevel":   string(op.RiskLevel),
		})
		if len(examples) == 3 {
			break
		}
	}
	return examples
}

// resultExamples picks up to three successful probe results.
func resultExamples(results []api.TestResult) []interface{} {
	var examples []interface{}
	for _, result := range results {
		if !result.Outcome.Success {
			continue
		}
		examples = append(examples, map[string]interface{}{
			"operationId": result.OperationID,
			"args":        result.Args,
			"durationMs":  result.Outcome.DurationMs,
		})
		if len(examples) == 3 {
			break
		}
	}
	return examples
}
