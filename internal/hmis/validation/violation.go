package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a field-level violation.
type Kind string

const (
	MissingRequiredField      Kind = "missing_required_field"
	TypeMismatch              Kind = "type_mismatch"
	InvalidEnumValue          Kind = "invalid_enum_value"
	InvalidFormat             Kind = "invalid_format"
	OutOfRange                Kind = "out_of_range"
	ConditionalFieldViolation Kind = "conditional_field_violation"
	UniquenessViolation       Kind = "uniqueness_violation"
	DateOrderViolation        Kind = "date_order_violation"
	ReferenceViolation        Kind = "reference_violation"
)

// Violation is one problem found in a candidate record. Path is the dotted
// field path (gender_info.gender_specify, members[2]); Value is the offending
// input, nil when the field was absent.
type Violation struct {
	Path    string `json:"path"`
	Kind    Kind   `json:"kind"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s at %s: %s", v.Kind, v.Path, v.Message)
}

// Violations is the complete, ordered result of validating a record. A
// non-empty Violations is also an error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(vs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", vs[i].Kind, vs[i].Path)
	}
	if len(vs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(vs))
	}
	return b.String()
}

// Has reports whether a violation of kind exists at path.
func (vs Violations) Has(path string, kind Kind) bool {
	for _, v := range vs {
		if v.Path == path && v.Kind == kind {
			return true
		}
	}
	return false
}

// At returns the violations recorded for path.
func (vs Violations) At(path string) Violations {
	var out Violations
	for _, v := range vs {
		if v.Path == path {
			out = append(out, v)
		}
	}
	return out
}

// CountByKind tallies violations per kind.
func (vs Violations) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, v := range vs {
		out[v.Kind]++
	}
	return out
}

// AsViolations extracts Violations from an error chain.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}
