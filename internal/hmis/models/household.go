package models

import (
	"slices"

	id "placemaker/pkg/domain"
	dErrors "placemaker/pkg/domain-errors"
)

// Household groups persons sharing a household identifier (UDE 3.14).
// Members are references: removing a household never removes its persons.
//
// Invariants:
//   - Members holds each PersonalID at most once, in insertion order
//   - at most one member is head of household (checked by the service, which
//     can see the member records)
type Household struct {
	HouseholdID id.HouseholdID  `json:"household_id"`
	Members     []id.PersonalID `json:"members"`
	Extensions  Extensions      `json:"extensions,omitempty"`
}

func (h *Household) HasMember(personalID id.PersonalID) bool {
	return slices.Contains(h.Members, personalID)
}

// AddMember appends personalID to the member list.
func (h *Household) AddMember(personalID id.PersonalID) error {
	if personalID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "member personal_id cannot be nil")
	}
	if h.HasMember(personalID) {
		return dErrors.New(dErrors.CodeInvariantViolation, "person is already a household member")
	}
	h.Members = append(h.Members, personalID)
	return nil
}

// RemoveMember drops personalID while keeping the order of the others.
func (h *Household) RemoveMember(personalID id.PersonalID) error {
	i := slices.Index(h.Members, personalID)
	if i < 0 {
		return dErrors.New(dErrors.CodeNotFound, "person is not a household member")
	}
	h.Members = slices.Delete(h.Members, i, i+1)
	return nil
}

func (h *Household) Clone() *Household {
	if h == nil {
		return nil
	}
	c := *h
	c.Members = slices.Clone(h.Members)
	c.Extensions = h.Extensions.Clone()
	return &c
}
