package models

import (
	"slices"

	dErrors "placemaker/pkg/domain-errors"
)

// Choice is implemented by every closed enumeration in the schema.
type Choice interface {
	~string
	IsValid() bool
}

// parseChoice accepts s only when it equals one of values exactly. No case
// folding or whitespace trimming is applied.
func parseChoice[T ~string](s string, values []T, field string) (T, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	v := T(s)
	if !slices.Contains(values, v) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	return v, nil
}

// ChoiceStrings renders an enumeration's declared values in declaration order.
func ChoiceStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
