// Package household stores households and answers membership queries.
package household

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

// ErrHouseholdIDTaken matches sentinel.ErrAlreadyUsed.
var ErrHouseholdIDTaken = fmt.Errorf("household_id %w", sentinel.ErrAlreadyUsed)

type InMemory struct {
	mu         sync.RWMutex
	households map[id.HouseholdID]*models.Household
}

func NewInMemory() *InMemory {
	return &InMemory{households: make(map[id.HouseholdID]*models.Household)}
}

func (s *InMemory) Create(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[h.HouseholdID]; ok {
		return ErrHouseholdIDTaken
	}
	s.households[h.HouseholdID] = h.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, h *models.Household) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[h.HouseholdID]; !ok {
		return sentinel.ErrNotFound
	}
	s.households[h.HouseholdID] = h.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, householdID id.HouseholdID) (*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h, ok := s.households[householdID]; ok {
		return h.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByMember returns every household listing personalID, ordered by
// household_id. An empty result is not an error.
func (s *InMemory) FindByMember(_ context.Context, personalID id.PersonalID) ([]*models.Household, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Household
	for _, h := range s.households {
		if h.HasMember(personalID) {
			out = append(out, h.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Household) int {
		return strings.Compare(a.HouseholdID.String(), b.HouseholdID.String())
	})
	return out, nil
}

func (s *InMemory) Delete(_ context.Context, householdID id.HouseholdID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.households[householdID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.households, householdID)
	return nil
}
