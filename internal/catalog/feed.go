package catalog

import (
	"fmt"
	"time"

	"assay/internal/api"

	"sigs.k8s.io/yaml"
)

// feedDocument is the on-disk shape of a discovery feed. YAML and JSON
// are both accepted; JSON is a subset of YAML here.
type feedDocument struct {
	Commands    []api.FeedEntry `json:"commands"`
	GeneratedAt time.Time       `json:"generatedAt,omitempty"`
}

// ParseFeed reads a discovery feed document. The documented shape is
// {commands: [{id, category, metadata}], generatedAt}; a bare entry list
// is accepted as a convenience.
func ParseFeed(data []byte) ([]api.FeedEntry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("feed is empty")
	}

	var doc feedDocument
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Commands != nil {
		return doc.Commands, nil
	}

	var entries []api.FeedEntry
	if err := yaml.Unmarshal(data, &entries); err == nil && entries != nil {
		return entries, nil
	}

	return nil, fmt.Errorf("feed is not a commands document or an entry list")
}
