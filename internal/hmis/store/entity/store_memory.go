// Package entity stores the open collections (CoC, organization, form,
// question, users) and resolves CoC references.
package entity

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

type InMemory struct {
	mu       sync.RWMutex
	entities map[models.EntityKind]map[uuid.UUID]*models.Entity
}

func NewInMemory() *InMemory {
	return &InMemory{entities: make(map[models.EntityKind]map[uuid.UUID]*models.Entity)}
}

// Save inserts or replaces e within its collection.
func (s *InMemory) Save(_ context.Context, e *models.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.entities[e.Kind]
	if !ok {
		byID = make(map[uuid.UUID]*models.Entity)
		s.entities[e.Kind] = byID
	}
	byID[e.ID] = e.Clone()
	return nil
}

func (s *InMemory) Find(_ context.Context, kind models.EntityKind, entityID uuid.UUID) (*models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.entities[kind][entityID]; ok {
		return e.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// FindCoC resolves a Person's coc_id reference.
func (s *InMemory) FindCoC(ctx context.Context, cocID id.CoCID) (*models.Entity, error) {
	return s.Find(ctx, models.EntityCoC, uuid.UUID(cocID))
}

// List returns a collection ordered by id.
func (s *InMemory) List(_ context.Context, kind models.EntityKind) ([]*models.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Entity, 0, len(s.entities[kind]))
	for _, e := range s.entities[kind] {
		out = append(out, e.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Entity) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
