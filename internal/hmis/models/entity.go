package models

import (
	"slices"

	"github.com/google/uuid"

	id "placemaker/pkg/domain"
	dErrors "placemaker/pkg/domain-errors"
)

// EntityKind names a collection of open records.
type EntityKind string

const (
	EntityCoC          EntityKind = "coc"
	EntityOrganization EntityKind = "organization"
	EntityForm         EntityKind = "form"
	EntityQuestion     EntityKind = "question"
	EntityUser         EntityKind = "users"
)

var entityKinds = []EntityKind{EntityCoC, EntityOrganization, EntityForm, EntityQuestion, EntityUser}

func ParseEntityKind(s string) (EntityKind, error) {
	return parseChoice(s, entityKinds, "entity kind")
}

func (k EntityKind) IsValid() bool { return slices.Contains(entityKinds, k) }

// IDField is the document key holding the identifier of an entity of kind k.
func (k EntityKind) IDField() string {
	if k == EntityCoC {
		return "coc_id"
	}
	return "id"
}

// Entity is an identifier-bearing container with no declared structure
// beyond its typed extensions: CoC, Organization, Form, Question and Users.
type Entity struct {
	Kind       EntityKind `json:"kind"`
	ID         uuid.UUID  `json:"id"`
	Extensions Extensions `json:"extensions,omitempty"`
}

// CoCID returns the entity identifier typed as a Continuum of Care reference.
func (e *Entity) CoCID() (id.CoCID, error) {
	if e.Kind != EntityCoC {
		return id.CoCID{}, dErrors.New(dErrors.CodeInvariantViolation, "entity is not a CoC")
	}
	return id.CoCID(e.ID), nil
}

func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	c := *e
	c.Extensions = e.Extensions.Clone()
	return &c
}
