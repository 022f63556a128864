package domain

import (
	"fmt"

	"github.com/google/uuid"

	dErrors "placemaker/pkg/domain-errors"
)

// Typed identifiers keep person, household and CoC IDs from being passed
// where another kind is expected. All are UUID-backed. Open entities other than
// CoC use plain uuid.UUID keyed by their collection.
//
// Usage: construct via the Parse* functions at trust boundaries (decoded
// records, CLI input). Direct casting from uuid.UUID bypasses the nil check.
type (
	PersonalID  uuid.UUID
	HouseholdID uuid.UUID
	CoCID       uuid.UUID
)

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid %s format", field))
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}

func ParsePersonalID(s string) (PersonalID, error) {
	u, err := parseUUID(s, "personal_id")
	return PersonalID(u), err
}

func ParseHouseholdID(s string) (HouseholdID, error) {
	u, err := parseUUID(s, "household_id")
	return HouseholdID(u), err
}

func ParseCoCID(s string) (CoCID, error) {
	u, err := parseUUID(s, "coc_id")
	return CoCID(u), err
}

func NewPersonalID() PersonalID   { return PersonalID(uuid.New()) }
func NewHouseholdID() HouseholdID { return HouseholdID(uuid.New()) }
func NewCoCID() CoCID             { return CoCID(uuid.New()) }

func (id PersonalID) String() string  { return uuid.UUID(id).String() }
func (id HouseholdID) String() string { return uuid.UUID(id).String() }
func (id CoCID) String() string       { return uuid.UUID(id).String() }

func (id PersonalID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id HouseholdID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id CoCID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }

// Text encoding lets the IDs appear as plain strings in JSON documents.

func (id PersonalID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *PersonalID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id HouseholdID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *HouseholdID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id CoCID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id *CoCID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
