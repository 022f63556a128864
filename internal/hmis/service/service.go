// Package service runs intake and case-management operations over validated
// HMIS records: registration, updates, exits, households and open entities.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"placemaker/internal/audit"
	hmismetrics "placemaker/internal/hmis/metrics"
	"placemaker/internal/hmis/models"
	"placemaker/internal/hmis/validation"
	id "placemaker/pkg/domain"
	dErrors "placemaker/pkg/domain-errors"
	"placemaker/pkg/platform/sentinel"
)

type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	Update(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, personalID id.PersonalID) (*models.Person, error)
	FindByFullSSN(ctx context.Context, ssn string) (*models.Person, error)
	Delete(ctx context.Context, personalID id.PersonalID) error
}

type HouseholdStore interface {
	Create(ctx context.Context, h *models.Household) error
	Update(ctx context.Context, h *models.Household) error
	FindByID(ctx context.Context, householdID id.HouseholdID) (*models.Household, error)
	FindByMember(ctx context.Context, personalID id.PersonalID) ([]*models.Household, error)
	Delete(ctx context.Context, householdID id.HouseholdID) error
}

// CoCLookup resolves coc_id references. A missing CoC is
// sentinel.ErrNotFound.
type CoCLookup interface {
	FindCoC(ctx context.Context, cocID id.CoCID) (*models.Entity, error)
}

// EntityStore holds the open collections.
type EntityStore interface {
	CoCLookup
	Save(ctx context.Context, e *models.Entity) error
	Find(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) (*models.Entity, error)
}

// SSNIndex claims full SSNs across processes. Stores enforce the same rule
// locally; the index extends it to deployments with several writers.
type SSNIndex interface {
	Claim(ctx context.Context, ssn string, owner id.PersonalID) error
	Release(ctx context.Context, ssn string, owner id.PersonalID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service orchestrates record intake.
type Service struct {
	persons        PersonStore
	households     HouseholdStore
	entities       EntityStore
	validator      *validation.Validator
	ssnIndex       SSNIndex
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *hmismetrics.Metrics
	now            func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *hmismetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithSSNIndex(index SSNIndex) Option {
	return func(s *Service) {
		s.ssnIndex = index
	}
}

func WithValidator(v *validation.Validator) Option {
	return func(s *Service) {
		s.validator = v
	}
}

// WithClock sets the clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service. Without WithValidator it validates with default
// options.
func New(persons PersonStore, households HouseholdStore, entities EntityStore, opts ...Option) (*Service, error) {
	if persons == nil {
		return nil, errors.New("person store is required")
	}
	if households == nil {
		return nil, errors.New("household store is required")
	}
	if entities == nil {
		return nil, errors.New("entity store is required")
	}
	s := &Service{
		persons:    persons,
		households: households,
		entities:   entities,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validator == nil {
		s.validator = validation.New()
	}
	return s, nil
}

// rejected reports a record that failed validation. The Violations stay in
// the chain for validation.AsViolations.
func rejected(vs validation.Violations, what string) error {
	return dErrors.Wrap(vs, dErrors.CodeValidation, what+" record rejected")
}

// conflict reports a uniqueness collision as a single violation.
func conflict(path, msg string, value any) error {
	vs := validation.Violations{{Path: path, Kind: validation.UniquenessViolation, Value: value, Message: msg}}
	return dErrors.Wrap(vs, dErrors.CodeConflict, msg)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

func (s *Service) logAudit(ctx context.Context, event audit.Event, attributes ...any) {
	args := append(attributes, "event", string(event.Action), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action), args...)
	}
	s.metrics.IncrementLifecycle(string(event.Action))
	if s.auditPublisher == nil {
		return
	}
	event.Timestamp = s.now()
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", string(event.Action), "error", err)
	}
}

func (s *Service) observeStore(op string, start time.Time) {
	s.metrics.ObserveStoreLatency(op, time.Since(start))
}
