package ssnindex

import (
	"context"
	"sync"

	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

type InMemory struct {
	mu     sync.Mutex
	owners map[string]id.PersonalID
}

func NewInMemory() *InMemory {
	return &InMemory{owners: make(map[string]id.PersonalID)}
}

// Claim records owner as the holder of ssn. Claiming again for the same owner
// is a no-op.
func (x *InMemory) Claim(_ context.Context, ssn string, owner id.PersonalID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	key := fingerprint(ssn)
	if held, ok := x.owners[key]; ok && held != owner {
		return ErrClaimed
	}
	x.owners[key] = owner
	return nil
}

// Release drops the claim if owner holds it.
func (x *InMemory) Release(_ context.Context, ssn string, owner id.PersonalID) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	key := fingerprint(ssn)
	if held, ok := x.owners[key]; ok && held == owner {
		delete(x.owners, key)
	}
	return nil
}

func (x *InMemory) Owner(_ context.Context, ssn string) (id.PersonalID, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if held, ok := x.owners[fingerprint(ssn)]; ok {
		return held, nil
	}
	return id.PersonalID{}, sentinel.ErrNotFound
}
