package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"placemaker/internal/audit"
	"placemaker/internal/hmis/models"
	"placemaker/internal/hmis/validation"
	id "placemaker/pkg/domain"
	dErrors "placemaker/pkg/domain-errors"
	"placemaker/pkg/platform/sentinel"
)

const recordHousehold = "household"

// CreateHousehold validates a household field mapping, resolves every member
// and stores it. At most one member may be head of household.
func (s *Service) CreateHousehold(ctx context.Context, record map[string]any) (*models.Household, error) {
	h, vs := s.validator.ValidateHousehold(record)
	if len(vs) > 0 {
		s.metrics.ObserveValidation(recordHousehold, vs)
		s.logRejected(ctx, recordHousehold, vs)
		return nil, rejected(vs, recordHousehold)
	}
	vs, err := s.composition(ctx, h.Members, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveValidation(recordHousehold, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordHousehold, vs)
		return nil, rejected(vs, recordHousehold)
	}
	if h.HouseholdID.IsNil() {
		h.HouseholdID = id.NewHouseholdID()
	}

	start := time.Now()
	err = s.households.Create(ctx, h)
	s.observeStore("household_create", start)
	if err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, conflict(validation.PathHouseholdID, "household_id is already registered", h.HouseholdID.String())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save household")
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionHouseholdCreated, HouseholdID: h.HouseholdID},
		"household_id", h.HouseholdID.String(),
		"members", len(h.Members),
	)
	return h.Clone(), nil
}

// AddHouseholdMember appends a stored person to a stored household.
func (s *Service) AddHouseholdMember(ctx context.Context, householdID id.HouseholdID, personalID id.PersonalID) (*models.Household, error) {
	h, err := s.loadHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	next := h.Clone()
	if next.HasMember(personalID) {
		vs := validation.Violations{{
			Path:    memberPath(len(next.Members)),
			Kind:    validation.UniquenessViolation,
			Value:   personalID.String(),
			Message: "person is already a household member",
		}}
		s.metrics.ObserveValidation(recordHousehold, vs)
		return nil, rejected(vs, recordHousehold)
	}
	if err := next.AddMember(personalID); err != nil {
		return nil, err
	}
	vs, err := s.composition(ctx, next.Members, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveValidation(recordHousehold, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordHousehold, vs)
		return nil, rejected(vs, recordHousehold)
	}

	start := time.Now()
	err = s.households.Update(ctx, next)
	s.observeStore("household_update", start)
	if err != nil {
		return nil, notFoundOr(err, "household")
	}

	s.logAudit(ctx, audit.Event{
		Action:      audit.ActionHouseholdMemberAdded,
		PersonalID:  personalID,
		HouseholdID: householdID,
	}, "household_id", householdID.String(), "personal_id", personalID.String())
	return next.Clone(), nil
}

// RemoveHouseholdMember drops a person from a stored household, keeping the
// order of the remaining members.
func (s *Service) RemoveHouseholdMember(ctx context.Context, householdID id.HouseholdID, personalID id.PersonalID) (*models.Household, error) {
	h, err := s.loadHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}
	next := h.Clone()
	if err := next.RemoveMember(personalID); err != nil {
		return nil, err
	}

	start := time.Now()
	err = s.households.Update(ctx, next)
	s.observeStore("household_update", start)
	if err != nil {
		return nil, notFoundOr(err, "household")
	}

	s.logAudit(ctx, audit.Event{
		Action:      audit.ActionHouseholdMemberRemoved,
		PersonalID:  personalID,
		HouseholdID: householdID,
	}, "household_id", householdID.String(), "personal_id", personalID.String())
	return next.Clone(), nil
}

// DeleteHousehold removes a household. Its members stay registered.
func (s *Service) DeleteHousehold(ctx context.Context, householdID id.HouseholdID) error {
	start := time.Now()
	err := s.households.Delete(ctx, householdID)
	s.observeStore("household_delete", start)
	if err != nil {
		return notFoundOr(err, "household")
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionHouseholdDeleted, HouseholdID: householdID},
		"household_id", householdID.String(),
	)
	return nil
}

func (s *Service) GetHousehold(ctx context.Context, householdID id.HouseholdID) (*models.Household, error) {
	return s.loadHousehold(ctx, householdID)
}

// HouseholdsOf lists the households personalID belongs to.
func (s *Service) HouseholdsOf(ctx context.Context, personalID id.PersonalID) ([]*models.Household, error) {
	out, err := s.households.FindByMember(ctx, personalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load households")
	}
	return out, nil
}

func (s *Service) loadHousehold(ctx context.Context, householdID id.HouseholdID) (*models.Household, error) {
	start := time.Now()
	h, err := s.households.FindByID(ctx, householdID)
	s.observeStore("household_find", start)
	if err != nil {
		return nil, notFoundOr(err, "household")
	}
	return h, nil
}

// composition resolves each member and reports unknown persons and extra
// heads of household. A non-nil pending person stands in for the stored
// record with the same personal_id. Duplicates are caught by the validator.
func (s *Service) composition(ctx context.Context, members []id.PersonalID, pending *models.Person) (validation.Violations, error) {
	var vs validation.Violations
	head := -1
	for i, m := range members {
		p, err := s.member(ctx, m, pending)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			vs = append(vs, validation.Violation{
				Path:    memberPath(i),
				Kind:    validation.ReferenceViolation,
				Value:   m.String(),
				Message: "no person with this personal_id",
			})
			continue
		case err != nil:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve household member")
		}
		if !p.IsHeadOfHousehold() {
			continue
		}
		if head >= 0 {
			vs = append(vs, validation.Violation{
				Path:    memberPath(i),
				Kind:    validation.UniquenessViolation,
				Value:   m.String(),
				Message: fmt.Sprintf("second head of household; %s is head", memberPath(head)),
			})
			continue
		}
		head = i
	}
	return vs, nil
}

func (s *Service) member(ctx context.Context, personalID id.PersonalID, pending *models.Person) (*models.Person, error) {
	if pending != nil && pending.PersonalID == personalID {
		return pending, nil
	}
	start := time.Now()
	p, err := s.persons.FindByID(ctx, personalID)
	s.observeStore("person_find", start)
	return p, err
}

// headConflict reports next becoming a second head of household in any
// household it already belongs to.
func (s *Service) headConflict(ctx context.Context, existing, next *models.Person) (validation.Violations, error) {
	if !next.IsHeadOfHousehold() || existing.IsHeadOfHousehold() {
		return nil, nil
	}
	households, err := s.households.FindByMember(ctx, next.PersonalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load households")
	}
	for _, h := range households {
		hv, err := s.composition(ctx, h.Members, next)
		if err != nil {
			return nil, err
		}
		if hv.CountByKind()[validation.UniquenessViolation] == 0 {
			continue
		}
		return validation.Violations{{
			Path:    validation.PathHouseholdHeadRelationship,
			Kind:    validation.UniquenessViolation,
			Value:   string(next.HouseholdHeadRelationship),
			Message: fmt.Sprintf("household %s already has a head of household", h.HouseholdID),
		}}, nil
	}
	return nil, nil
}

func memberPath(i int) string {
	return validation.PathMembers + "[" + strconv.Itoa(i) + "]"
}
