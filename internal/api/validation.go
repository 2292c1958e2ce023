package api

import "context"

// ValidationError describes one failed check for one parameter.
type ValidationError struct {
	// Parameter is the argument name the error refers to
	Parameter string `json:"parameter"`

	// Message explains what failed
	Message string `json:"message"`
}

// ValidationResult is the aggregate outcome of validating a set of
// arguments against a signature. All checks run; Errors collects every
// failure rather than stopping at the first one.
type ValidationResult struct {
	// Valid is true iff Errors is empty
	Valid bool `json:"valid"`

	// Errors lists every failed check
	Errors []ValidationError `json:"errors,omitempty"`
}

// ExecutionContext describes the environment an operation would run in.
// Precondition checks and "context:" validation rules consult it.
type ExecutionContext struct {
	// WorkspacePath is the directory the engine snapshots and observes
	WorkspacePath string `yaml:"workspacePath" json:"workspacePath"`

	// Capabilities maps capability names to their availability
	Capabilities map[string]bool `yaml:"capabilities,omitempty" json:"capabilities,omitempty"`

	// Env carries environment values rules may reference
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// ValidationHandler validates proposed arguments against an operation's
// merged signature. Implemented by the validate package's adapter.
type ValidationHandler interface {
	// ValidateArgs checks args against the merged signature of the given
	// operation, aggregating all errors. Returns a NotFoundError when the
	// operation id is unknown.
	ValidateArgs(ctx context.Context, operationID string, args map[string]interface{}) (*ValidationResult, error)
}
