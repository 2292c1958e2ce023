package api

import (
	"context"
	"time"
)

// ManualEntry is a researcher-authored note about one parameter of one
// operation. Entries override whatever inference produced for the same
// parameter name and carry optional validation rules and usage examples.
type ManualEntry struct {
	// OperationID identifies the operation this entry belongs to
	OperationID string `yaml:"operationId" json:"operationId"`

	// Parameter is the argument name the entry documents.
	// A later entry for the same (operation, parameter) pair replaces
	// the earlier one.
	Parameter string `yaml:"parameter" json:"parameter"`

	// Type is the researcher-confirmed argument type
	Type ParameterType `yaml:"type" json:"type"`

	// Required indicates whether callers must provide this argument
	Required bool `yaml:"required" json:"required"`

	// Description documents the argument
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Default is the value assumed when the argument is omitted
	Default interface{} `yaml:"default,omitempty" json:"default,omitempty"`

	// Notes holds free-form research notes that do not belong in the
	// generated documentation
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty"`

	// Examples are known-good values for this argument
	Examples []interface{} `yaml:"examples,omitempty" json:"examples,omitempty"`

	// Rules are validation rule strings evaluated by the validator,
	// e.g. "nonEmpty", "min:1", "oneOf:json|yaml"
	Rules []string `yaml:"rules,omitempty" json:"rules,omitempty"`

	// CreatedAt records when the entry was first saved
	CreatedAt time.Time `yaml:"createdAt" json:"createdAt"`

	// ModifiedAt records the last update
	ModifiedAt time.Time `yaml:"modifiedAt" json:"modifiedAt"`
}

// ResearchHandler manages manual signature entries and exposes the merged
// view of an operation (inferred signature + manual overrides).
// Implemented by the research package's adapter.
type ResearchHandler interface {
	// SaveEntry stores a manual entry, replacing any existing entry for
	// the same operation and parameter name
	SaveEntry(ctx context.Context, entry ManualEntry) error

	// RemoveEntry deletes the entry for the given operation and parameter.
	// Returns a NotFoundError when no such entry exists.
	RemoveEntry(ctx context.Context, operationID, parameter string) error

	// ListEntries returns the stored entries for one operation, or all
	// entries when operationID is empty
	ListEntries(ctx context.Context, operationID string) ([]ManualEntry, error)

	// MergedOperation returns the operation with manual entries merged
	// into its signature. Returns a NotFoundError for unknown ids.
	MergedOperation(ctx context.Context, operationID string) (*Operation, error)
}
