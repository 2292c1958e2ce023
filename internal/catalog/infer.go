package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"assay/internal/api"
)

var (
	backtickedName = regexp.MustCompile("`([a-zA-Z][a-zA-Z0-9_]*)`")
	angledName     = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9_]*)>`)
)

// inferSignature assembles an automatic signature for a newly discovered
// operation. Typed hints from the feed win; otherwise parameter names are
// scraped from the description; otherwise id naming conventions are the
// last resort. Returns nil when nothing could be inferred.
func inferSignature(id, description string, metadata map[string]interface{}) *api.Signature {
	params := typedParameters(metadata)
	if len(params) == 0 {
		params = docParameters(description)
	}
	if len(params) == 0 {
		params = heuristicParameters(id)
	}

	returnType, _ := metadata["returnType"].(string)
	async, _ := metadata["async"].(bool)

	if len(params) == 0 && returnType == "" && !async {
		return nil
	}

	sig := &api.Signature{
		Parameters:   params,
		ReturnType:   returnType,
		Async:        async,
		Confidence:   api.ConfidenceLow,
		ResearchedAt: time.Now(),
	}

	seen := make(map[api.ParameterSource]bool)
	for _, param := range params {
		if !seen[param.Source] {
			seen[param.Source] = true
			sig.Sources = append(sig.Sources, param.Source)
		}
		if param.Source == api.SourceTypes {
			sig.Confidence = api.ConfidenceMedium
		}
	}

	return sig
}

// typedParameters reads structured parameter hints from feed metadata.
// Each hint is a map with at least a "name"; "type", "required",
// "description" and "default" are honored when present.
func typedParameters(metadata map[string]interface{}) []api.Parameter {
	raw, ok := metadata["parameters"].([]interface{})
	if !ok {
		return nil
	}

	var params []api.Parameter
	seen := make(map[string]int)
	for _, item := range raw {
		hint, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := hint["name"].(string)
		if name == "" {
			continue
		}

		param := api.Parameter{
			Name:   name,
			Type:   api.TypeUnknown,
			Source: api.SourceTypes,
		}
		if t, ok := hint["type"].(string); ok && api.ParameterType(t).IsValid() {
			param.Type = api.ParameterType(t)
		}
		if required, ok := hint["required"].(bool); ok {
			param.Required = required
		}
		if desc, ok := hint["description"].(string); ok {
			param.Description = desc
		}
		param.Default = hint["default"]

		// Same name twice in one feed entry: the later hint replaces
		// the earlier one
		if idx, dup := seen[name]; dup {
			params[idx] = param
			continue
		}
		seen[name] = len(params)
		params = append(params, param)
	}
	return params
}

// docParameters scrapes parameter names from prose: backticked words and
// <angle-bracketed> placeholders both count. Types are guessed from the
// name since prose carries no type information.
func docParameters(description string) []api.Parameter {
	if description == "" {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, match := range backtickedName.FindAllStringSubmatch(description, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	for _, match := range angledName.FindAllStringSubmatch(description, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}

	var params []api.Parameter
	for _, name := range names {
		params = append(params, api.Parameter{
			Name:        name,
			Type:        guessTypeFromName(name),
			Source:      api.SourceDocs,
			Description: fmt.Sprintf("mentioned in the operation description as %q", name),
		})
	}
	return params
}

// heuristicParameters guesses arguments from id naming conventions:
// file-ish verbs imply a path, write-ish verbs imply content, search-ish
// verbs imply a query. A miss returns nothing rather than a bad guess.
func heuristicParameters(id string) []api.Parameter {
	tokens := make(map[string]bool)
	for _, token := range tokenize(id) {
		tokens[token] = true
	}

	var params []api.Parameter
	add := func(name string, t api.ParameterType, required bool) {
		params = append(params, api.Parameter{
			Name:     name,
			Type:     t,
			Required: required,
			Source:   api.SourceHeuristic,
		})
	}

	switch {
	case tokens["read"] || tokens["open"] || tokens["load"]:
		add("path", api.TypeString, true)
	case tokens["write"] || tokens["save"] || tokens["append"]:
		add("path", api.TypeString, true)
		add("content", api.TypeString, true)
	case tokens["search"] || tokens["find"] || tokens["query"]:
		add("query", api.TypeString, true)
	case tokens["delete"] || tokens["remove"]:
		add("path", api.TypeString, true)
	}
	return params
}

// guessTypeFromName maps common parameter name shapes to types.
func guessTypeFromName(name string) api.ParameterType {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "path") || strings.Contains(lower, "file") ||
		strings.Contains(lower, "name") || strings.Contains(lower, "text") ||
		strings.Contains(lower, "content") || strings.Contains(lower, "query"):
		return api.TypeString
	case strings.Contains(lower, "count") || strings.Contains(lower, "limit") ||
		strings.Contains(lower, "size") || strings.Contains(lower, "index") ||
		strings.Contains(lower, "timeout"):
		return api.TypeNumber
	case strings.HasPrefix(lower, "is") || strings.HasPrefix(lower, "has") ||
		strings.Contains(lower, "enable") || strings.Contains(lower, "force") ||
		strings.Contains(lower, "recursive"):
		return api.TypeBoolean
	default:
		return api.TypeUnknown
	}
}
