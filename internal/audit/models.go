package audit

import (
	"time"

	id "placemaker/pkg/domain"
)

// Action names a record lifecycle change.
type Action string

const (
	ActionPersonRegistered       Action = "person_registered"
	ActionPersonUpdated          Action = "person_updated"
	ActionPersonExited           Action = "person_exited"
	ActionPersonDeleted          Action = "person_deleted"
	ActionHouseholdCreated       Action = "household_created"
	ActionHouseholdMemberAdded   Action = "household_member_added"
	ActionHouseholdMemberRemoved Action = "household_member_removed"
	ActionHouseholdDeleted       Action = "household_deleted"
	ActionEntitySaved            Action = "entity_saved"
)

// Event is emitted from domain logic to capture key actions. It never
// carries SSNs or other person fields, only identifiers.
type Event struct {
	Timestamp   time.Time
	Action      Action
	PersonalID  id.PersonalID
	HouseholdID id.HouseholdID
	Detail      string
}
