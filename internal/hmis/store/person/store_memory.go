package person

import (
	"context"
	"slices"
	"strings"
	"sync"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

// InMemory keeps persons in maps guarded by a single lock. The full-SSN index
// is checked and written under the same write lock as the record itself.
type InMemory struct {
	mu      sync.RWMutex
	persons map[id.PersonalID]*models.Person
	fullSSN map[string]id.PersonalID
}

func NewInMemory() *InMemory {
	return &InMemory{
		persons: make(map[id.PersonalID]*models.Person),
		fullSSN: make(map[string]id.PersonalID),
	}
}

func (s *InMemory) Create(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.persons[p.PersonalID]; ok {
		return ErrPersonalIDTaken
	}
	if ssn := p.FullSSN(); ssn != "" {
		if _, taken := s.fullSSN[ssn]; taken {
			return ErrFullSSNTaken
		}
		s.fullSSN[ssn] = p.PersonalID
	}
	s.persons[p.PersonalID] = p.Clone()
	return nil
}

// Update replaces a stored person, moving its full-SSN index entry when the
// SSN or its type changed.
func (s *InMemory) Update(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.persons[p.PersonalID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if ssn := p.FullSSN(); ssn != "" {
		if owner, taken := s.fullSSN[ssn]; taken && owner != p.PersonalID {
			return ErrFullSSNTaken
		}
	}
	if ssn := old.FullSSN(); ssn != "" {
		delete(s.fullSSN, ssn)
	}
	if ssn := p.FullSSN(); ssn != "" {
		s.fullSSN[ssn] = p.PersonalID
	}
	s.persons[p.PersonalID] = p.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, personalID id.PersonalID) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.persons[personalID]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByFullSSN finds the one person whose full SSN equals ssn. Partial,
// unknown and refused SSNs are not indexed.
func (s *InMemory) FindByFullSSN(_ context.Context, ssn string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.fullSSN[ssn]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.persons[owner].Clone(), nil
}

// List returns every stored person ordered by personal_id.
func (s *InMemory) List(_ context.Context) ([]*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Person, 0, len(s.persons))
	for _, p := range s.persons {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Person) int {
		return strings.Compare(a.PersonalID.String(), b.PersonalID.String())
	})
	return out, nil
}

func (s *InMemory) Delete(_ context.Context, personalID id.PersonalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[personalID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if ssn := p.FullSSN(); ssn != "" {
		delete(s.fullSSN, ssn)
	}
	delete(s.persons, personalID)
	return nil
}
