// Package ssnindex claims full SSNs for a single person across processes.
// Only full SSNs are ever claimed; partial, unknown and refused values are
// exempt from uniqueness.
package ssnindex

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"placemaker/pkg/platform/sentinel"
)

// ErrClaimed reports that another person holds the SSN. It matches
// sentinel.ErrAlreadyUsed.
var ErrClaimed = fmt.Errorf("full SSN %w", sentinel.ErrAlreadyUsed)

// fingerprint keeps raw SSNs out of index keys.
func fingerprint(ssn string) string {
	sum := sha256.Sum256([]byte(ssn))
	return hex.EncodeToString(sum[:])
}
