package catalog

import (
	"strings"
	"unicode"

	"assay/internal/api"
	"assay/internal/config"
)

// idSegments splits an operation id into its grouping segments. Dotted
// ids ("workbench.action.openSettings") split on dots; flat ids fall
// back to underscores ("fs_read").
func idSegments(id string) []string {
	if strings.Contains(id, ".") {
		return strings.Split(id, ".")
	}
	return strings.Split(id, "_")
}

// tokenize breaks an identifier into lowercase word tokens, splitting on
// separators and camelCase boundaries. "openSettingsJson" becomes
// ["open", "settings", "json"].
func tokenize(identifier string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range identifier {
		switch {
		case r == '.' || r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// humanizeLabel derives a display label from the trailing id segment.
// "openSettings" becomes "Open Settings", "read_file" becomes "Read File".
func humanizeLabel(segment string) string {
	tokens := tokenize(segment)
	if len(tokens) == 0 {
		return segment
	}
	for i, token := range tokens {
		tokens[i] = strings.ToUpper(token[:1]) + token[1:]
	}
	return strings.Join(tokens, " ")
}

// deriveGrouping computes category and subcategory from the id when the
// feed does not provide them. The first segment is the category, the
// second is the subcategory when at least three segments exist.
func deriveGrouping(id string) (category, subcategory string) {
	segments := idSegments(id)
	switch {
	case len(segments) >= 3:
		return segments[0], segments[1]
	case len(segments) == 2:
		return segments[0], ""
	default:
		return "general", ""
	}
}

// classifyRisk assigns a risk level from keyword lists applied to the id
// and label tokens. Destructive keywords win over moderate ones; anything
// unmatched is safe. An explicit feed override bypasses this entirely.
func classifyRisk(id, label string, risk config.RiskConfig) api.RiskLevel {
	tokens := make(map[string]bool)
	for _, token := range tokenize(id) {
		tokens[token] = true
	}
	for _, token := range tokenize(label) {
		tokens[token] = true
	}

	for _, keyword := range risk.Destructive {
		if tokens[strings.ToLower(keyword)] {
			return api.RiskDestructive
		}
	}
	for _, keyword := range risk.Moderate {
		if tokens[strings.ToLower(keyword)] {
			return api.RiskModerate
		}
	}
	return api.RiskSafe
}
