package results

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"assay/internal/api"
	"assay/internal/config"
	"assay/pkg/logging"

	"github.com/google/uuid"
)

// storedResult is the persisted form of one test result. The sequence
// number restores insertion order on reload; file listing order is not
// reliable across filesystems.
type storedResult struct {
	Seq    uint64         `json:"seq"`
	Result api.TestResult `json:"result"`
}

// Store is the append-only record of probe outcomes. Results are kept in
// insertion order in memory and persisted one JSON document per result
// through the storage collaborator. Once appended, a result is never
// modified; Purge exists for administrative cleanup only.
type Store struct {
	mu      sync.RWMutex
	storage *config.Storage
	results []storedResult
	byID    map[string]int // result id -> index into results
	nextSeq uint64
}

// NewStore creates a result store backed by the given storage.
func NewStore(storage *config.Storage) *Store {
	return &Store{
		storage: storage,
		byID:    make(map[string]int),
	}
}

// Load reads all persisted results and restores insertion order from
// their sequence numbers. Corrupt documents are skipped with a warning.
func (s *Store) Load() error {
	names, err := s.storage.List(config.EntityResults)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = nil
	s.byID = make(map[string]int)
	s.nextSeq = 1

	for _, name := range names {
		data, err := s.storage.Load(config.EntityResults, name)
		if err != nil {
			logging.Warn("Results", "Failed to load result %s: %v", name, err)
			continue
		}

		var stored storedResult
		if err := json.Unmarshal(data, &stored); err != nil {
			logging.Warn("Results", "Skipping malformed result %s: %v", name, err)
			continue
		}
		if stored.Result.ID == "" {
			logging.Warn("Results", "Skipping result %s without id", name)
			continue
		}
		s.results = append(s.results, stored)
	}

	sort.Slice(s.results, func(i, j int) bool {
		return s.results[i].Seq < s.results[j].Seq
	})

	for i, stored := range s.results {
		s.byID[stored.Result.ID] = i
		if stored.Seq >= s.nextSeq {
			s.nextSeq = stored.Seq + 1
		}
	}

	logging.Info("Results", "Loaded %d recorded results", len(s.results))
	return nil
}

// Append records a result. The result is defensively completed (id,
// timestamp) but never modified afterwards.
func (s *Store) Append(result *api.TestResult) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}
	if result.OperationID == "" {
		return fmt.Errorf("result operation id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := *result
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if _, exists := s.byID[record.ID]; exists {
		return fmt.Errorf("result %s already recorded", record.ID)
	}

	stored := storedResult{Seq: s.nextSeq, Result: record}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result %s: %w", record.ID, err)
	}
	if err := s.storage.Save(config.EntityResults, record.ID, data); err != nil {
		return fmt.Errorf("failed to persist result %s: %w", record.ID, err)
	}

	s.results = append(s.results, stored)
	s.byID[record.ID] = len(s.results) - 1
	s.nextSeq++

	// Reflect the assigned identity back to the caller
	result.ID = record.ID
	result.Timestamp = record.Timestamp

	logging.Debug("Results", "Recorded result %s for operation %s (success=%v)",
		record.ID, record.OperationID, record.Outcome.Success)
	return nil
}

// Query returns results for one operation in insertion order, or all
// results when operationID is empty.
func (s *Store) Query(operationID string) []api.TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []api.TestResult
	for _, stored := range s.results {
		if operationID == "" || stored.Result.OperationID == operationID {
			out = append(out, stored.Result)
		}
	}
	return out
}

// Get returns one result by id.
func (s *Store) Get(id string) (*api.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return nil, api.NewTestResultNotFoundError(id)
	}
	result := s.results[idx].Result
	return &result, nil
}

// Purge removes all results for an operation and returns how many were
// removed. This is administrative only; normal operation never deletes.
func (s *Store) Purge(operationID string) (int, error) {
	if operationID == "" {
		return 0, fmt.Errorf("operation id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []storedResult
	removed := 0
	for _, stored := range s.results {
		if stored.Result.OperationID != operationID {
			kept = append(kept, stored)
			continue
		}
		if err := s.storage.Delete(config.EntityResults, stored.Result.ID); err != nil {
			logging.Warn("Results", "Failed to delete persisted result %s: %v", stored.Result.ID, err)
		}
		removed++
	}

	s.results = kept
	s.byID = make(map[string]int, len(kept))
	for i, stored := range kept {
		s.byID[stored.Result.ID] = i
	}

	if removed > 0 {
		logging.Info("Results", "Purged %d results for operation %s", removed, operationID)
	}
	return removed, nil
}
