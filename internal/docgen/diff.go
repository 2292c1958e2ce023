package docgen

import (
	"sort"

	"assay/internal/api"
)

// computeChangeSummary diffs the current operation set against a
// previously generated package. Returns nil on the first generation.
// A removed id appears in CommandsRemoved and nowhere else.
func computeChangeSummary(prev *api.DocumentationPackage, ops []api.Operation) *api.ChangeSummary {
	if prev == nil {
		return nil
	}

	prevOps := make(map[string]api.Operation, len(prev.Operations))
	for _, op := range prev.Operations {
		prevOps[op.ID] = op
	}
	currentOps := make(map[string]api.Operation, len(ops))
	for _, op := range ops {
		currentOps[op.ID] = op
	}

	summary := &api.ChangeSummary{PreviousVersion: prev.Metadata.Version}

	for id := range currentOps {
		if _, existed := prevOps[id]; !existed {
			summary.CommandsAdded = append(summary.CommandsAdded, id)
		}
	}
	for id := range prevOps {
		if _, exists := currentOps[id]; !exists {
			summary.CommandsRemoved = append(summary.CommandsRemoved, id)
		}
	}

	for id, current := range currentOps {
		previous, existed := prevOps[id]
		if !existed {
			continue
		}

		sigChange := diffSignatures(id, previous.Signature, current.Signature)
		if sigChange == nil &&
			previous.RiskLevel == current.RiskLevel &&
			previous.Description == current.Description {
			continue
		}

		summary.CommandsModified = append(summary.CommandsModified, id)
		if sigChange != nil {
			summary.SignatureChanges = append(summary.SignatureChanges, *sigChange)
		}
	}

	sort.Strings(summary.CommandsAdded)
	sort.Strings(summary.CommandsRemoved)
	sort.Strings(summary.CommandsModified)
	sort.Slice(summary.SignatureChanges, func(i, j int) bool {
		return summary.SignatureChanges[i].OperationID < summary.SignatureChanges[j].OperationID
	})

	return summary
}

// diffSignatures computes the structural differences between two
// signatures of the same operation. Returns nil when structurally equal.
func diffSignatures(operationID string, previous, current *api.Signature) *api.SignatureChange {
	prevParams := signatureParams(previous)
	currentParams := signatureParams(current)

	change := &api.SignatureChange{OperationID: operationID}

	for name := range currentParams {
		if _, existed := prevParams[name]; !existed {
			change.ParametersAdded = append(change.ParametersAdded, name)
		}
	}
	for name, prevParam := range prevParams {
		currentParam, exists := currentParams[name]
		if !exists {
			change.ParametersRemoved = append(change.ParametersRemoved, name)
			continue
		}
		if prevParam.Type != currentParam.Type {
			change.TypeChanges = append(change.TypeChanges, api.TypeChange{
				Parameter: name,
				OldType:   string(prevParam.Type),
				NewType:   string(currentParam.Type),
			})
		}
	}

	if len(change.ParametersAdded) == 0 && len(change.ParametersRemoved) == 0 && len(change.TypeChanges) == 0 {
		return nil
	}

	sort.Strings(change.ParametersAdded)
	sort.Strings(change.ParametersRemoved)
	sort.Slice(change.TypeChanges, func(i, j int) bool {
		return change.TypeChanges[i].Parameter < change.TypeChanges[j].Parameter
	})
	return change
}

func signatureParams(sig *api.Signature) map[string]api.Parameter {
	params := make(map[string]api.Parameter)
	if sig == nil {
		return params
	}
	for _, param := range sig.Parameters {
		params[param.Name] = param
	}
	return params
}
