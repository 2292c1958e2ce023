package execute

import (
	"context"

	"assay/internal/api"
)

// Adapter exposes the execution engine through the central API layer.
type Adapter struct {
	engine *Engine
}

// NewAdapter creates an execution adapter.
func NewAdapter(engine *Engine) *Adapter {
	return &Adapter{engine: engine}
}

// Register registers the adapter with the central API layer.
func (a *Adapter) Register() {
	api.RegisterExecution(a)
}

// Execute resolves the operation through the catalog and runs it under
// the engine's safety rails.
func (a *Adapter) Execute(ctx context.Context, operationID string, args map[string]interface{}, opts api.ExecuteOptions) (*api.ExecutionOutcome, error) {
	catalog := api.GetCatalog()
	if catalog == nil {
		return nil, api.ErrCatalogNotRegistered
	}

	op, err := catalog.GetOperation(operationID)
	if err != nil {
		return nil, err
	}

	outcome, err := a.engine.Execute(ctx, *op, args, opts)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
