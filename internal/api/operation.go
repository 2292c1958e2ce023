package api

import (
	"context"
	"time"
)

// RiskLevel classifies how dangerous it is to invoke an operation without
// supervision. It drives the execution engine's confirmation gate and the
// CLI's risk filtering.
type RiskLevel string

const (
	// RiskSafe operations are read-only or otherwise free of lasting effects
	RiskSafe RiskLevel = "safe"

	// RiskModerate operations change state in a recoverable way
	RiskModerate RiskLevel = "moderate"

	// RiskDestructive operations delete, overwrite, or otherwise cause
	// effects that may not be recoverable. They require explicit
	// confirmation before the engine will run them.
	RiskDestructive RiskLevel = "destructive"
)

// IsValid reports whether the value is one of the known risk levels.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskSafe, RiskModerate, RiskDestructive:
		return true
	}
	return false
}

// Confidence expresses how trustworthy a researched signature is.
type Confidence string

const (
	// ConfidenceHigh means at least one parameter was confirmed by a human
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium means the signature came from typed metadata
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow means the signature was scraped from prose or guessed
	ConfidenceLow Confidence = "low"
)

// ParameterType is the declared type of an operation parameter.
type ParameterType string

const (
	TypeString   ParameterType = "string"
	TypeNumber   ParameterType = "number"
	TypeBoolean  ParameterType = "boolean"
	TypeObject   ParameterType = "object"
	TypeArray    ParameterType = "array"
	TypeFunction ParameterType = "function"
	TypeAny      ParameterType = "any"
	TypeUnknown  ParameterType = "unknown"
)

// IsValid reports whether the value is one of the known parameter types.
func (t ParameterType) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeObject, TypeArray, TypeFunction, TypeAny, TypeUnknown:
		return true
	}
	return false
}

// ParameterSource records where a parameter definition came from. Manual
// entries always win over automatically inferred parameters during merging.
type ParameterSource string

const (
	// SourceTypes - derived from typed metadata the host exposed
	SourceTypes ParameterSource = "inferred-from-types"

	// SourceDocs - scraped from description or documentation text
	SourceDocs ParameterSource = "inferred-from-docs"

	// SourceHeuristic - guessed from naming conventions
	SourceHeuristic ParameterSource = "inferred-by-heuristic"

	// SourceManual - entered by a human researcher
	SourceManual ParameterSource = "manual"
)

// Operation represents a single entry in the command catalog.
// It combines the immutable discovery identity with metadata that later
// discovery passes are allowed to refresh, plus the researched signature.
type Operation struct {
	// ID is the unique, immutable identifier of the operation.
	// Re-discovery may update every other field but never this one.
	ID string `yaml:"id" json:"id"`

	// Category is the top-level grouping, usually the first id segment
	Category string `yaml:"category" json:"category"`

	// Subcategory is an optional second-level grouping
	Subcategory string `yaml:"subcategory,omitempty" json:"subcategory,omitempty"`

	// Label is a human-readable short name derived from the id or metadata
	Label string `yaml:"label" json:"label"`

	// Description documents what the operation does, when known
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// RiskLevel classifies the blast radius of invoking this operation
	RiskLevel RiskLevel `yaml:"riskLevel" json:"riskLevel"`

	// Preconditions lists capability names that must be present in the
	// execution context before this operation should be invoked
	Preconditions []string `yaml:"preconditions,omitempty" json:"preconditions,omitempty"`

	// DiscoveredAt records when the operation was first seen.
	// It is set once and preserved across discovery passes.
	DiscoveredAt time.Time `yaml:"discoveredAt" json:"discoveredAt"`

	// Signature is the researched calling convention, nil until inference
	// or manual research produced one
	Signature *Signature `yaml:"signature,omitempty" json:"signature,omitempty"`
}

// Parameter describes a single argument of an operation signature.
// Names are unique within a signature; a later definition with the same
// name replaces the earlier one.
type Parameter struct {
	// Name is the argument name, unique within the signature
	Name string `yaml:"name" json:"name"`

	// Type is the declared argument type
	Type ParameterType `yaml:"type" json:"type"`

	// Required indicates whether callers must provide this argument
	Required bool `yaml:"required" json:"required"`

	// Description documents the argument, when known
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Default is the value assumed when the argument is omitted.
	// Only meaningful when Required is false.
	Default interface{} `yaml:"default,omitempty" json:"default,omitempty"`

	// Source records how this parameter definition was obtained
	Source ParameterSource `yaml:"source" json:"source"`

	// Rules are validation rule strings carried over from manual entries,
	// e.g. "nonEmpty", "min:1", "oneOf:json|yaml"
	Rules []string `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Signature is the researched calling convention of an operation.
type Signature struct {
	// Parameters in declaration order. Manual parameters come first after
	// merging, followed by automatic parameters without a manual override.
	Parameters []Parameter `yaml:"parameters" json:"parameters"`

	// ReturnType is the declared result type, when known
	ReturnType string `yaml:"returnType,omitempty" json:"returnType,omitempty"`

	// Async indicates the host executes this operation asynchronously
	Async bool `yaml:"async,omitempty" json:"async,omitempty"`

	// Confidence summarizes how trustworthy the signature is as a whole.
	// High iff at least one parameter is manual, otherwise the best
	// automatic source decides (types: medium, docs/heuristic: low).
	Confidence Confidence `yaml:"confidence" json:"confidence"`

	// Sources lists the distinct parameter sources that contributed
	Sources []ParameterSource `yaml:"sources,omitempty" json:"sources,omitempty"`

	// ResearchedAt records when this signature was last assembled
	ResearchedAt time.Time `yaml:"researchedAt" json:"researchedAt"`
}

// FeedEntry is one raw record from a discovery feed before it is turned
// into an Operation. Metadata keys the catalog understands: "label",
// "description", "risk", "subcategory", "returnType", "async", and
// "parameters" (typed hints).
type FeedEntry struct {
	// ID is the operation identifier as the feed reports it
	ID string `yaml:"id" json:"id"`

	// Category is the feed-supplied grouping, derived from the id when empty
	Category string `yaml:"category,omitempty" json:"category,omitempty"`

	// Metadata carries optional descriptive fields from the feed
	Metadata map[string]interface{} `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// IngestReport summarizes the outcome of one discovery pass.
type IngestReport struct {
	// Added lists ids first seen in this pass
	Added []string `json:"added"`

	// Updated lists existing ids whose metadata was refreshed
	Updated []string `json:"updated"`

	// Skipped lists feed entries that could not be ingested, with reasons
	Skipped map[string]string `json:"skipped,omitempty"`

	// Total is the catalog size after the pass
	Total int `json:"total"`
}

// CatalogStats summarizes the catalog for status displays and the
// persisted discovery snapshot.
type CatalogStats struct {
	Total        int            `json:"total"`
	ByCategory   map[string]int `json:"byCategory"`
	ByRisk       map[string]int `json:"byRisk"`
	WithSig      int            `json:"withSignature"`
	DiscoveredAt time.Time      `json:"discoveredAt"`
}

// CatalogHandler provides access to the operation catalog: discovery,
// lookup, and search. Implemented by the catalog package's adapter.
type CatalogHandler interface {
	// ListOperations returns all known operations in a stable order
	ListOperations() []Operation

	// GetOperation returns one operation by id.
	// Returns a NotFoundError when the id is unknown.
	GetOperation(id string) (*Operation, error)

	// SearchOperations runs a full-text query over id, label, description,
	// and category, returning matches ranked by relevance
	SearchOperations(query string, limit int) ([]Operation, error)

	// IngestFeed merges a batch of feed entries into the catalog
	IngestFeed(ctx context.Context, entries []FeedEntry) (*IngestReport, error)

	// DiscoverFromHost enumerates operations from the connected host
	// and merges them into the catalog
	DiscoverFromHost(ctx context.Context) (*IngestReport, error)

	// Stats returns catalog summary counters
	Stats() CatalogStats
}
