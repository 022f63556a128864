package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// and the intake service translates them into domain errors.
//
//   - ErrNotFound: no record with the requested identifier
//   - ErrAlreadyUsed: a unique key (personal_id, full SSN, household_id) is taken
//   - ErrInvalidState: record cannot take the requested change
//   - ErrUnavailable: backing store unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
