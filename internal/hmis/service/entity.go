package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"placemaker/internal/audit"
	"placemaker/internal/hmis/models"
	dErrors "placemaker/pkg/domain-errors"
)

const recordEntity = "entity"

// RegisterEntity validates and upserts an open entity of kind. A missing
// identifier is assigned.
func (s *Service) RegisterEntity(ctx context.Context, kind models.EntityKind, record map[string]any) (*models.Entity, error) {
	e, vs := s.validator.ValidateEntity(kind, record)
	s.metrics.ObserveValidation(recordEntity, vs)
	if len(vs) > 0 {
		s.logRejected(ctx, recordEntity, vs)
		return nil, rejected(vs, recordEntity)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	start := time.Now()
	err := s.entities.Save(ctx, e)
	s.observeStore("entity_save", start)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save entity")
	}

	s.logAudit(ctx, audit.Event{Action: audit.ActionEntitySaved, Detail: string(kind) + ":" + e.ID.String()},
		"kind", string(kind),
		"id", e.ID.String(),
	)
	return e.Clone(), nil
}

func (s *Service) GetEntity(ctx context.Context, kind models.EntityKind, entityID uuid.UUID) (*models.Entity, error) {
	if !kind.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown entity collection")
	}
	start := time.Now()
	e, err := s.entities.Find(ctx, kind, entityID)
	s.observeStore("entity_find", start)
	if err != nil {
		return nil, notFoundOr(err, string(kind))
	}
	return e, nil
}
