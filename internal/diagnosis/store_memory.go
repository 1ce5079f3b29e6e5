package diagnosis

import (
	"context"
	"fmt"
	"sync"

	"clinica/internal/sentinel"
	"clinica/pkg/domain"
)

// InMemoryStore keeps the catalog in memory, preserving insertion order for
// stable listings.
type InMemoryStore struct {
	mu     sync.RWMutex
	order  []domain.DiagnosisCode
	byCode map[domain.DiagnosisCode]Diagnosis
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byCode: make(map[domain.DiagnosisCode]Diagnosis)}
}

func (s *InMemoryStore) List(_ context.Context) ([]Diagnosis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Diagnosis, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.byCode[code])
	}
	return out, nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, code domain.DiagnosisCode) (Diagnosis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.byCode[code]
	if !ok {
		return Diagnosis{}, sentinel.ErrNotFound
	}
	return d, nil
}

// Save inserts a catalog row; duplicate codes conflict.
func (s *InMemoryStore) Save(_ context.Context, d Diagnosis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byCode[d.Code]; exists {
		return fmt.Errorf("diagnosis code %s: %w", d.Code, sentinel.ErrConflict)
	}
	s.order = append(s.order, d.Code)
	s.byCode[d.Code] = d
	return nil
}
