package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"clinica/internal/patient/models"
	"clinica/internal/sentinel"
	"clinica/pkg/domain"
)

// ErrNotFound is returned when a patient is not found.
var ErrNotFound = sentinel.ErrNotFound

// InMemory holds the process-lifetime patient collection. A single mutex
// guards every operation: Create must keep its scan-for-max-id and insert in
// one critical section, and AppendEntry its lookup and append, or concurrent
// writers could mint duplicate IDs or lose appends.
type InMemory struct {
	mu       sync.Mutex
	patients []*models.Patient
	byID     map[domain.PatientID]*models.Patient
}

// NewInMemory creates an empty in-memory patient store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID: make(map[domain.PatientID]*models.Patient),
	}
}

// List returns all patient records in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Patient, len(s.patients))
	for i, p := range s.patients {
		out[i] = snapshot(p)
	}
	return out, nil
}

// FindByID retrieves a patient by ID.
func (s *InMemory) FindByID(_ context.Context, id domain.PatientID) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.byID[id]; ok {
		return snapshot(p), nil
	}
	return nil, ErrNotFound
}

// Create assigns the next free numeric ID and inserts a new record with an
// empty entry list. The ID is one greater than the largest existing numeric
// ID; non-numeric IDs (seed data) are ignored, so an empty or purely seeded
// store starts at "1".
func (s *InMemory) Create(_ context.Context, fields models.NewPatientFields) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.NewPatient(s.nextID(), fields)
	s.patients = append(s.patients, p)
	s.byID[p.ID] = p
	return snapshot(p), nil
}

// Insert adds a pre-built record under its own ID. Used by the seeder; the
// generated-ID path is Create.
func (s *InMemory) Insert(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; exists {
		return fmt.Errorf("patient id %s: %w", p.ID, sentinel.ErrConflict)
	}
	s.patients = append(s.patients, p)
	s.byID[p.ID] = p
	return nil
}

// AppendEntry assigns the entry a fresh unique ID, appends it to the end of
// the patient's entry list, and returns the updated record.
func (s *InMemory) AppendEntry(_ context.Context, id domain.PatientID, entry models.Entry) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	entry.Base().ID = domain.EntryID(uuid.NewString())
	p.Entries = append(p.Entries, entry)
	return snapshot(p), nil
}

// snapshot copies a record so callers never share the live Entries slice
// with writers holding the lock. Entries are immutable once appended, so a
// shallow slice copy is enough. Caller must hold s.mu.
func snapshot(p *models.Patient) *models.Patient {
	out := *p
	out.Entries = make(models.Entries, len(p.Entries))
	copy(out.Entries, p.Entries)
	return &out
}

// nextID scans all existing IDs, parses each as an integer, and returns the
// maximum plus one as a decimal string. Caller must hold s.mu.
func (s *InMemory) nextID() domain.PatientID {
	max := 0
	for _, p := range s.patients {
		if n, err := strconv.Atoi(string(p.ID)); err == nil && n > max {
			max = n
		}
	}
	return domain.PatientID(strconv.Itoa(max + 1))
}
