package storage

import (
	"sort"
	"sync"

	"sunswarm/internal/model"
)

// MemoryStore keeps diagnostics in process memory. It is the default store
// and the one tests exercise.
type MemoryStore struct {
	mu        sync.RWMutex
	reports   map[string]map[int]model.EpochReport
	summaries map[string]model.RunSummary
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports:   make(map[string]map[int]model.EpochReport),
		summaries: make(map[string]model.RunSummary),
	}
}

func (s *MemoryStore) Init() error { return nil }

func (s *MemoryStore) SaveEpochReport(runID string, report model.EpochReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byEpoch, ok := s.reports[runID]
	if !ok {
		byEpoch = make(map[int]model.EpochReport)
		s.reports[runID] = byEpoch
	}
	byEpoch[report.Epoch] = report
	return nil
}

func (s *MemoryStore) GetEpochReports(runID string) ([]model.EpochReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byEpoch, ok := s.reports[runID]
	if !ok {
		return nil, ErrNotFound
	}
	reports := make([]model.EpochReport, 0, len(byEpoch))
	for _, r := range byEpoch {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Epoch < reports[j].Epoch })
	return reports, nil
}

func (s *MemoryStore) SaveRunSummary(summary model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.RunID] = summary
	return nil
}

func (s *MemoryStore) GetRunSummary(runID string) (model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[runID]
	if !ok {
		return model.RunSummary{}, ErrNotFound
	}
	return summary, nil
}

func (s *MemoryStore) ListRuns() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.summaries)+len(s.reports))
	for id := range s.summaries {
		seen[id] = true
	}
	for id := range s.reports {
		seen[id] = true
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
