package api

import (
	"context"
	"time"
)

// TypeChange records a parameter whose declared type changed between two
// catalog versions.
type TypeChange struct {
	Parameter string `json:"parameter"`
	OldType   string `json:"oldType"`
	NewType   string `json:"newType"`
}

// SignatureChange records the structural signature differences of one
// operation between two catalog versions.
type SignatureChange struct {
	OperationID       string       `json:"operationId"`
	ParametersAdded   []string     `json:"parametersAdded,omitempty"`
	ParametersRemoved []string     `json:"parametersRemoved,omitempty"`
	TypeChanges       []TypeChange `json:"typeChanges,omitempty"`
}

// ChangeSummary captures what changed relative to a previously generated
// documentation package. Removed ids appear in CommandsRemoved and nowhere
// else in the package.
type ChangeSummary struct {
	// PreviousVersion is the version string of the package diffed against
	PreviousVersion string `json:"previousVersion"`

	// CommandsAdded lists ids present now but not before
	CommandsAdded []string `json:"commandsAdded,omitempty"`

	// CommandsRemoved lists ids present before but not now
	CommandsRemoved []string `json:"commandsRemoved,omitempty"`

	// CommandsModified lists ids whose signature, risk, or description changed
	CommandsModified []string `json:"commandsModified,omitempty"`

	// SignatureChanges details the structural differences per modified id
	SignatureChanges []SignatureChange `json:"signatureChanges,omitempty"`
}

// PackageMetadata describes a generated documentation package.
type PackageMetadata struct {
	Version      string         `json:"version"`
	GeneratedAt  time.Time      `json:"generatedAt"`
	CommandCount int            `json:"commandCount"`
	TestedCount  int            `json:"testedCount"`
	Author       string         `json:"author,omitempty"`
	Organization string         `json:"organization,omitempty"`
	Changes      *ChangeSummary `json:"changes,omitempty"`
}

// SchemaProperty describes one property inside a schema definition.
type SchemaProperty struct {
	Type        string        `json:"type"`
	Description string        `json:"description,omitempty"`
	Default     interface{}   `json:"default,omitempty"`
	Enum        []string      `json:"enum,omitempty"`
	Examples    []interface{} `json:"examples,omitempty"`
}

// SchemaDefinition describes the shape of one documented concept.
type SchemaDefinition struct {
	Type        string                    `json:"type"`
	Description string                    `json:"description,omitempty"`
	Properties  map[string]SchemaProperty `json:"properties,omitempty"`
	Required    []string                  `json:"required,omitempty"`
	Examples    []interface{}             `json:"examples,omitempty"`
}

// SchemaDocument is the machine-readable schema of the documented surface.
type SchemaDocument struct {
	// Schema is the document identifier, "assay/v1"
	Schema      string                      `json:"$schema"`
	Title       string                      `json:"title"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Definitions map[string]SchemaDefinition `json:"definitions"`
}

// FieldDefinition is one field of a generated type definition.
type FieldDefinition struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// TypeDefinition describes one domain concept in a language-neutral form.
type TypeDefinition struct {
	Name        string            `json:"name"`
	Kind        string            `json:"kind"` // "struct", "enum", "envelope"
	Description string            `json:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields,omitempty"`
	Values      []string          `json:"values,omitempty"`
}

// APIResponse documents one possible response of an API path.
type APIResponse struct {
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	SchemaRef   string `json:"schemaRef,omitempty"`
}

// APIPath documents one interaction of the remote protocol.
type APIPath struct {
	Path        string        `json:"path"`
	Kind        string        `json:"kind"`
	Description string        `json:"description,omitempty"`
	Example     interface{}   `json:"example,omitempty"`
	Responses   []APIResponse `json:"responses,omitempty"`
}

// APIDescription documents the remote invocation protocol.
type APIDescription struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Transport string    `json:"transport"`
	Paths     []APIPath `json:"paths"`
}

// QualityReport scores the completeness of a documentation package.
// The score never gates export; it is advisory only.
type QualityReport struct {
	// OverallScore is round(40*desc + 40*sig + 20*example), 0-100
	OverallScore int `json:"overallScore"`

	// DescriptionCoverage is the fraction of operations with a description
	DescriptionCoverage float64 `json:"descriptionCoverage"`

	// SignatureCoverage is the fraction of operations with a signature
	SignatureCoverage float64 `json:"signatureCoverage"`

	// ExampleCoverage is the fraction of operations with a successful result
	ExampleCoverage float64 `json:"exampleCoverage"`

	// Recommendations suggests what to improve
	Recommendations []string `json:"recommendations,omitempty"`
}

// DocumentationPackage is the complete generated documentation bundle.
type DocumentationPackage struct {
	Metadata        PackageMetadata  `json:"metadata"`
	Operations      []Operation      `json:"operations"`
	Results         []TestResult     `json:"results,omitempty"`
	Schema          SchemaDocument   `json:"schema"`
	TypeDefinitions []TypeDefinition `json:"typeDefinitions"`
	API             APIDescription   `json:"api"`
	Quality         QualityReport    `json:"quality"`
}

// GenerateOptions controls documentation package generation.
type GenerateOptions struct {
	// Version stamps the package metadata; empty selects the configured default
	Version string `json:"version,omitempty"`

	// Author and Organization are carried into the package metadata
	Author       string `json:"author,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// ExportReport summarizes one export run. Every declared format yields at
// least one artifact or a recorded warning.
type ExportReport struct {
	// Artifacts lists the files written, relative to the export directory
	Artifacts []string `json:"artifacts"`

	// Warnings lists per-format generation failures
	Warnings []string `json:"warnings,omitempty"`
}

// DocsHandler generates and exports documentation packages.
// Implemented by the docgen package's adapter.
type DocsHandler interface {
	// GeneratePackage assembles a documentation package from the current
	// catalog and result store, diffing against the most recent persisted
	// package when one exists
	GeneratePackage(ctx context.Context, opts GenerateOptions) (*DocumentationPackage, error)

	// ExportPackage renders the package in the given formats under dir.
	// Per-format failures become warnings; the export fails only when no
	// artifact could be produced at all.
	ExportPackage(ctx context.Context, pkg *DocumentationPackage, dir string, formats []string) (*ExportReport, error)
}
