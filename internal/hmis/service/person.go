package service

import (
	"context"
	"errors"
	"time"

	"placemaker/internal/audit"
	"placemaker/internal/hmis/models"
	personstore "placemaker/internal/hmis/store/person"
	"placemaker/internal/hmis/validation"
	id "placemaker/pkg/domain"
	dErrors "placemaker/pkg/domain-errors"
	"placemaker/pkg/platform/sentinel"
)

const recordPerson = "person"

// RegisterPerson validates a person field mapping and stores it. A missing
// personal_id is assigned. A referenced CoC must exist, and a Full SSN
// reported record claims its SSN before insertion.
func (s *Service) RegisterPerson(ctx context.Context, record map[string]any) (*models.Person, error) {
	p, vs := s.validator.ValidatePerson(record)
	s.metrics.ObserveValidation(recordPerson, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordPerson, vs)
		return nil, rejected(vs, recordPerson)
	}
	if p.PersonalID.IsNil() {
		p.PersonalID = id.NewPersonalID()
	}
	if err := s.resolveCoC(ctx, p); err != nil {
		return nil, err
	}

	ssn := p.FullSSN()
	if err := s.claimSSN(ctx, ssn, p.PersonalID); err != nil {
		return nil, err
	}
	start := time.Now()
	err := s.persons.Create(ctx, p)
	s.observeStore("person_create", start)
	if err != nil {
		s.releaseSSN(ctx, ssn, p.PersonalID)
		return nil, s.mapPersonWriteErr(err, "failed to save person")
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionPersonRegistered, PersonalID: p.PersonalID},
		"personal_id", p.PersonalID.String(),
	)
	return p.Clone(), nil
}

// UpdatePerson replaces a stored person with p after checking it. Changing a
// full SSN moves the claim, and becoming head of household is refused when a
// household of p already has a head.
func (s *Service) UpdatePerson(ctx context.Context, p *models.Person) (*models.Person, error) {
	if p == nil || p.PersonalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "personal_id is required")
	}
	vs := s.validator.CheckPerson(p)
	if len(vs) > 0 {
		s.metrics.ObserveValidation(recordPerson, vs)
		s.logRejected(ctx, recordPerson, vs)
		return nil, rejected(vs, recordPerson)
	}
	existing, err := s.loadPerson(ctx, p.PersonalID)
	if err != nil {
		return nil, err
	}
	next := p.Clone()
	vs, err = s.headConflict(ctx, existing, next)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveValidation(recordPerson, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordPerson, vs)
		return nil, rejected(vs, recordPerson)
	}
	if err := s.resolveCoC(ctx, next); err != nil {
		return nil, err
	}
	if err := s.replace(ctx, existing, next); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionPersonUpdated, PersonalID: next.PersonalID},
		"personal_id", next.PersonalID.String(),
	)
	return next.Clone(), nil
}

// RecordExit sets the exit date and destination of a stored person. The
// updated record must still pass validation, so an exit before entry is
// rejected with a DateOrderViolation.
func (s *Service) RecordExit(ctx context.Context, personalID id.PersonalID, exitDate time.Time, destination models.DestinationInfo) (*models.Person, error) {
	existing, err := s.loadPerson(ctx, personalID)
	if err != nil {
		return nil, err
	}
	next := existing.Clone()
	next.ApplyExit(exitDate, destination)
	vs := s.validator.CheckPerson(next)
	s.metrics.ObserveValidation(recordPerson, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordPerson, vs)
		return nil, rejected(vs, recordPerson)
	}
	if err := s.replace(ctx, existing, next); err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.Event{
		Action:     audit.ActionPersonExited,
		PersonalID: personalID,
		Detail:     string(destination.Destination),
	}, "personal_id", personalID.String())
	return next.Clone(), nil
}

func (s *Service) GetPerson(ctx context.Context, personalID id.PersonalID) (*models.Person, error) {
	return s.loadPerson(ctx, personalID)
}

// FindPersonByFullSSN looks up the person holding a Full SSN reported ssn.
func (s *Service) FindPersonByFullSSN(ctx context.Context, ssn string) (*models.Person, error) {
	if !validation.IsFullSSN(ssn) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "ssn must be exactly 9 digits")
	}
	start := time.Now()
	p, err := s.persons.FindByFullSSN(ctx, ssn)
	s.observeStore("person_find_ssn", start)
	if err != nil {
		return nil, notFoundOr(err, "person")
	}
	return p, nil
}

// DeletePerson removes a person who belongs to no household and releases the
// SSN claim.
func (s *Service) DeletePerson(ctx context.Context, personalID id.PersonalID) error {
	existing, err := s.loadPerson(ctx, personalID)
	if err != nil {
		return err
	}
	households, err := s.households.FindByMember(ctx, personalID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load households")
	}
	if len(households) > 0 {
		return dErrors.New(dErrors.CodeConflict, "person is a household member")
	}

	start := time.Now()
	err = s.persons.Delete(ctx, personalID)
	s.observeStore("person_delete", start)
	if err != nil {
		return notFoundOr(err, "person")
	}
	s.releaseSSN(ctx, existing.FullSSN(), personalID)

	s.logAudit(ctx, audit.Event{Action: audit.ActionPersonDeleted, PersonalID: personalID},
		"personal_id", personalID.String(),
	)
	return nil
}

func (s *Service) loadPerson(ctx context.Context, personalID id.PersonalID) (*models.Person, error) {
	start := time.Now()
	p, err := s.persons.FindByID(ctx, personalID)
	s.observeStore("person_find", start)
	if err != nil {
		return nil, notFoundOr(err, "person")
	}
	return p, nil
}

// replace writes next over existing, moving the SSN claim when the full SSN
// changed.
func (s *Service) replace(ctx context.Context, existing, next *models.Person) error {
	oldSSN, newSSN := existing.FullSSN(), next.FullSSN()
	moved := oldSSN != newSSN
	if moved {
		if err := s.claimSSN(ctx, newSSN, next.PersonalID); err != nil {
			return err
		}
	}
	start := time.Now()
	err := s.persons.Update(ctx, next)
	s.observeStore("person_update", start)
	if err != nil {
		if moved {
			s.releaseSSN(ctx, newSSN, next.PersonalID)
		}
		return s.mapPersonWriteErr(err, "failed to update person")
	}
	if moved {
		s.releaseSSN(ctx, oldSSN, next.PersonalID)
	}
	return nil
}

// resolveCoC checks that a referenced CoC exists.
func (s *Service) resolveCoC(ctx context.Context, p *models.Person) error {
	if p.CoCID == nil {
		return nil
	}
	_, err := s.entities.FindCoC(ctx, *p.CoCID)
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		vs := validation.Violations{{
			Path:    validation.PathCoCID,
			Kind:    validation.ReferenceViolation,
			Value:   p.CoCID.String(),
			Message: "no CoC with this coc_id",
		}}
		s.metrics.ObserveValidation(recordPerson, vs)
		return rejected(vs, recordPerson)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve coc_id")
}

func (s *Service) claimSSN(ctx context.Context, ssn string, owner id.PersonalID) error {
	if ssn == "" || s.ssnIndex == nil {
		return nil
	}
	err := s.ssnIndex.Claim(ctx, ssn, owner)
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return conflict(validation.PathSSN, "full SSN is already registered", nil)
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to claim SSN")
}

// releaseSSN is best effort; a stale claim only blocks reuse of the SSN.
func (s *Service) releaseSSN(ctx context.Context, ssn string, owner id.PersonalID) {
	if ssn == "" || s.ssnIndex == nil {
		return
	}
	if err := s.ssnIndex.Release(ctx, ssn, owner); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to release SSN claim",
			"personal_id", owner.String(),
			"error", err,
		)
	}
}

func (s *Service) mapPersonWriteErr(err error, msg string) error {
	switch {
	case errors.Is(err, personstore.ErrFullSSNTaken):
		return conflict(validation.PathSSN, "full SSN is already registered", nil)
	case errors.Is(err, personstore.ErrPersonalIDTaken):
		return conflict(validation.PathPersonalID, "personal_id is already registered", nil)
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

// logRejected logs the violation count and paths. Values are left out so
// SSNs never reach the log.
func (s *Service) logRejected(ctx context.Context, record string, vs validation.Violations) {
	if s.logger == nil {
		return
	}
	paths := make([]string, len(vs))
	for i, v := range vs {
		paths[i] = v.Path
	}
	s.logger.InfoContext(ctx, "record rejected",
		"record", record,
		"violations", len(vs),
		"paths", paths,
	)
}
