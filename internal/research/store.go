package research

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/pkg/logging"

	"gopkg.in/yaml.v3"
)

// entriesDocument is the persisted form of all manual entries for one
// operation: one YAML document per operation id under research/.
type entriesDocument struct {
	OperationID string            `yaml:"operationId"`
	Entries     []api.ManualEntry `yaml:"entries"`
}

// Store keeps manual signature entries in memory and persists them through
// the storage collaborator. Entries are keyed by (operation id, parameter
// name); saving an entry for an existing pair replaces it.
type Store struct {
	mu      sync.RWMutex
	storage *config.Storage
	entries map[string][]api.ManualEntry // operation id -> entries in save order
}

// NewStore creates a manual-entries store backed by the given storage.
func NewStore(storage *config.Storage) *Store {
	return &Store{
		storage: storage,
		entries: make(map[string][]api.ManualEntry),
	}
}

// Load reads all persisted entry documents into memory. Documents that
// fail to parse are skipped with a warning so one corrupt file does not
// take down the rest of the research data.
func (s *Store) Load() error {
	names, err := s.storage.List(config.EntityResearch)
	if err != nil {
		return fmt.Errorf("failed to list research entries: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]api.ManualEntry)
	for _, name := range names {
		data, err := s.storage.Load(config.EntityResearch, name)
		if err != nil {
			logging.Warn("Research", "Failed to load entry document %s: %v", name, err)
			continue
		}

		var doc entriesDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			logging.Warn("Research", "Skipping malformed entry document %s: %v", name, err)
			continue
		}
		if doc.OperationID == "" {
			logging.Warn("Research", "Skipping entry document %s without operation id", name)
			continue
		}
		s.entries[doc.OperationID] = doc.Entries
	}

	logging.Info("Research", "Loaded manual entries for %d operations", len(s.entries))
	return nil
}

// SaveEntry stores an entry, replacing any existing entry for the same
// operation and parameter name. CreatedAt is preserved on replacement;
// ModifiedAt is always refreshed.
func (s *Store) SaveEntry(entry api.ManualEntry) error {
	if entry.OperationID == "" {
		return fmt.Errorf("operation id cannot be empty")
	}
	if entry.Parameter == "" {
		return fmt.Errorf("parameter name cannot be empty")
	}
	if entry.Type != "" && !entry.Type.IsValid() {
		return fmt.Errorf("invalid parameter type %q", entry.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry.ModifiedAt = now
	entry.CreatedAt = now

	existing := s.entries[entry.OperationID]
	replaced := false
	for i, e := range existing {
		if e.Parameter == entry.Parameter {
			entry.CreatedAt = e.CreatedAt
			existing[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		existing = append(existing, entry)
	}
	s.entries[entry.OperationID] = existing

	if err := s.persist(entry.OperationID); err != nil {
		return err
	}

	logging.Debug("Research", "Saved manual entry %s/%s", entry.OperationID, entry.Parameter)
	return nil
}

// RemoveEntry deletes the entry for the given operation and parameter.
func (s *Store) RemoveEntry(operationID, parameter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[operationID]
	if !ok {
		return api.NewManualEntryNotFoundError(operationID + "/" + parameter)
	}

	found := -1
	for i, e := range existing {
		if e.Parameter == parameter {
			found = i
			break
		}
	}
	if found < 0 {
		return api.NewManualEntryNotFoundError(operationID + "/" + parameter)
	}

	existing = append(existing[:found], existing[found+1:]...)
	if len(existing) == 0 {
		delete(s.entries, operationID)
		if err := s.storage.Delete(config.EntityResearch, operationID); err != nil {
			return fmt.Errorf("failed to delete entry document for %s: %w", operationID, err)
		}
		return nil
	}

	s.entries[operationID] = existing
	return s.persist(operationID)
}

// ListEntries returns the entries for one operation in save order, or all
// entries (grouped by operation, operations sorted by id) when operationID
// is empty.
func (s *Store) ListEntries(operationID string) []api.ManualEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if operationID != "" {
		return append([]api.ManualEntry(nil), s.entries[operationID]...)
	}

	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var all []api.ManualEntry
	for _, id := range ids {
		all = append(all, s.entries[id]...)
	}
	return all
}

// persist writes the entry document for one operation. Callers must hold
// the write lock.
func (s *Store) persist(operationID string) error {
	doc := entriesDocument{
		OperationID: operationID,
		Entries:     s.entries[operationID],
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal entries for %s: %w", operationID, err)
	}
	if err := s.storage.Save(config.EntityResearch, operationID, data); err != nil {
		return fmt.Errorf("failed to persist entries for %s: %w", operationID, err)
	}
	return nil
}
