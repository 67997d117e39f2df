package storage

import (
	"sort"
	"sync"

	"github.com/ectool/lpscorer/internal/models"
)

// ScoreStore keeps the scoring results produced by this process
type ScoreStore struct {
	records map[string]*models.ScoreRecord
	mu      sync.RWMutex
}

func New() *ScoreStore {
	return &ScoreStore{
		records: make(map[string]*models.ScoreRecord),
	}
}

func (s *ScoreStore) Get(id string) (*models.ScoreRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, exists := s.records[id]
	return record, exists
}

func (s *ScoreStore) Add(record *models.ScoreRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
}

// List returns all records, newest first
func (s *ScoreStore) List() []*models.ScoreRecord {
	s.mu.RLock()
	result := make([]*models.ScoreRecord, 0, len(s.records))
	for _, v := range s.records {
		result = append(result, v)
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *ScoreStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.records[id]
	delete(s.records, id)
	return exists
}

func (s *ScoreStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
