package research

import (
	"time"

	"assay/internal/api"
)

// Merge combines an operation's inferred signature with manual research
// entries into a single merged view. It is a pure projection: the input
// operation is never mutated, the result depends only on the inputs, and
// applying Merge twice with the same entries yields the same result.
//
// Manual parameters come first, in entry order (a later entry for the same
// parameter name replaces the earlier one in place). Automatic parameters
// whose names have no manual counterpart follow in their original order;
// an automatic parameter is never dropped just because nobody researched it.
//
// Signature confidence is high iff at least one parameter is manual.
// Otherwise the best automatic source decides: typed metadata yields
// medium, doc scraping and heuristics yield low. A signature without
// parameters stays at low.
func Merge(op api.Operation, entries []api.ManualEntry) api.Operation {
	merged := op

	if len(entries) == 0 && op.Signature == nil {
		return merged
	}

	// Collapse entries by parameter name, keeping first-seen order and
	// letting later entries replace earlier ones in place.
	var manualOrder []string
	manualByName := make(map[string]api.ManualEntry)
	for _, entry := range entries {
		if entry.Parameter == "" {
			continue
		}
		if _, seen := manualByName[entry.Parameter]; !seen {
			manualOrder = append(manualOrder, entry.Parameter)
		}
		manualByName[entry.Parameter] = entry
	}

	var params []api.Parameter
	for _, name := range manualOrder {
		params = append(params, manualParameter(manualByName[name]))
	}

	var researchedAt time.Time
	returnType := ""
	async := false
	if op.Signature != nil {
		returnType = op.Signature.ReturnType
		async = op.Signature.Async
		researchedAt = op.Signature.ResearchedAt
		for _, p := range op.Signature.Parameters {
			if _, overridden := manualByName[p.Name]; overridden {
				continue
			}
			params = append(params, p)
		}
	}

	// ResearchedAt is derived from the inputs so the merge stays
	// deterministic: the newest entry modification wins over the
	// inferred signature's timestamp.
	for _, entry := range manualByName {
		if entry.ModifiedAt.After(researchedAt) {
			researchedAt = entry.ModifiedAt
		}
	}

	merged.Signature = &api.Signature{
		Parameters:   params,
		ReturnType:   returnType,
		Async:        async,
		Confidence:   signatureConfidence(params),
		Sources:      distinctSources(params),
		ResearchedAt: researchedAt,
	}

	return merged
}

// manualParameter projects a manual entry onto the parameter it documents.
func manualParameter(entry api.ManualEntry) api.Parameter {
	paramType := entry.Type
	if paramType == "" {
		paramType = api.TypeUnknown
	}
	return api.Parameter{
		Name:        entry.Parameter,
		Type:        paramType,
		Required:    entry.Required,
		Description: entry.Description,
		Default:     entry.Default,
		Source:      api.SourceManual,
		Rules:       entry.Rules,
	}
}

// signatureConfidence derives the overall confidence from the parameter
// sources: high iff any manual, otherwise the best automatic source.
func signatureConfidence(params []api.Parameter) api.Confidence {
	best := api.ConfidenceLow
	for _, p := range params {
		switch p.Source {
		case api.SourceManual:
			return api.ConfidenceHigh
		case api.SourceTypes:
			best = api.ConfidenceMedium
		}
	}
	return best
}

// distinctSources lists the parameter sources present, in a stable order.
func distinctSources(params []api.Parameter) []api.ParameterSource {
	order := []api.ParameterSource{
		api.SourceManual,
		api.SourceTypes,
		api.SourceDocs,
		api.SourceHeuristic,
	}
	present := make(map[api.ParameterSource]bool, len(params))
	for _, p := range params {
		present[p.Source] = true
	}

	var sources []api.ParameterSource
	for _, s := range order {
		if present[s] {
			sources = append(sources, s)
		}
	}
	return sources
}
