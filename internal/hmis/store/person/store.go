// Package person stores validated Person records and enforces identity and
// scoped SSN uniqueness at insertion time.
package person

import (
	"fmt"

	"placemaker/pkg/platform/sentinel"
)

// Uniqueness failures. Both match sentinel.ErrAlreadyUsed with errors.Is.
var (
	ErrPersonalIDTaken = fmt.Errorf("personal_id %w", sentinel.ErrAlreadyUsed)
	ErrFullSSNTaken    = fmt.Errorf("full SSN %w", sentinel.ErrAlreadyUsed)
)
