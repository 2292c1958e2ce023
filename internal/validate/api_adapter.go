package validate

import (
	"context"

	"assay/internal/api"
	"assay/pkg/logging"
)

// ContextProvider supplies the execution context consulted by
// precondition checks and "context:" rules. The app wires one in at
// bootstrap so capability availability reflects the actual deployment.
type ContextProvider func() api.ExecutionContext

// Adapter provides the API adapter for argument validation
type Adapter struct {
	contextProvider ContextProvider
}

// NewAdapter creates a new validation adapter
func NewAdapter(contextProvider ContextProvider) *Adapter {
	if contextProvider == nil {
		contextProvider = func() api.ExecutionContext { return api.ExecutionContext{} }
	}
	return &Adapter{
		contextProvider: contextProvider,
	}
}

// Register registers this adapter with the API layer
func (a *Adapter) Register() {
	api.RegisterValidation(a)
	logging.Debug("ValidateAdapter", "Registered validation adapter with API layer")
}

// ValidateArgs checks args against the merged signature of the operation,
// aggregating all errors
func (a *Adapter) ValidateArgs(ctx context.Context, operationID string, args map[string]interface{}) (*api.ValidationResult, error) {
	research := api.GetResearch()
	if research == nil {
		return nil, api.ErrResearchNotRegistered
	}

	op, err := research.MergedOperation(ctx, operationID)
	if err != nil {
		return nil, err
	}

	result := Validate(op.Signature, args, a.contextProvider())
	return &result, nil
}
