package catalog

import (
	"fmt"
	"strings"

	"assay/internal/api"

	"github.com/blevesearch/bleve/v2"
)

// searchIndex is the in-memory full-text index over the catalog. It is
// rebuilt from the persisted snapshot on startup and updated as
// discovery passes land.
type searchIndex struct {
	index bleve.Index
}

func newSearchIndex() (*searchIndex, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}
	return &searchIndex{index: index}, nil
}

// indexOperation adds or refreshes one operation in the index.
func (s *searchIndex) indexOperation(op api.Operation) error {
	return s.index.Index(op.ID, map[string]interface{}{
		"id":          op.ID,
		"label":       op.Label,
		"description": op.Description,
		"category":    op.Category,
	})
}

// removeOperation drops one operation from the index.
func (s *searchIndex) removeOperation(id string) error {
	return s.index.Delete(id)
}

// search returns matching operation ids ranked by relevance.
func (s *searchIndex) search(query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	// Word matches rank by relevance; the prefix clause catches partial
	// ids like "fs_re"
	match := bleve.NewMatchQuery(query)
	prefix := bleve.NewPrefixQuery(strings.ToLower(query))
	union := bleve.NewDisjunctionQuery(match, prefix)

	request := bleve.NewSearchRequestOptions(union, limit, 0, false)
	result, err := s.index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (s *searchIndex) close() error {
	return s.index.Close()
}
