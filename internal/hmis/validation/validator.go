package validation

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"placemaker/internal/hmis/models"
)

// Validator checks candidate records against the HMIS schema. It holds only
// options and is safe for concurrent use.
type Validator struct {
	now                      func() time.Time
	enforceDisabilitySpecify bool
	enforceResidenceSubtype  bool
}

type Option func(*Validator)

// WithClock sets the clock used for the project_entry_date default.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithDisabilitySpecifyRule makes disability_condition_specify required when
// disabling_condition is Yes and forbidden otherwise.
func WithDisabilitySpecifyRule(enabled bool) Option {
	return func(v *Validator) {
		v.enforceDisabilitySpecify = enabled
	}
}

// WithResidenceSubtypeRule requires residence_subtype and
// prior_residence_subtype to be one of the subtypes grouped under their
// residence type.
func WithResidenceSubtypeRule(enabled bool) Option {
	return func(v *Validator) {
		v.enforceResidenceSubtype = enabled
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidatePerson decodes and checks a person field mapping. The typed record
// is returned only when no violation was found.
func (v *Validator) ValidatePerson(record map[string]any) (*models.Person, Violations) {
	d := newDecoder(v.now)
	p := d.person(record)
	c := v.checker(d.flagged, func(path string, _ bool) bool { return d.present[path] })
	c.person(p)
	vs := finish(d.vs, c.vs)
	if len(vs) > 0 {
		return nil, vs
	}
	return p, nil
}

// CheckPerson applies the field and cross-field rules to a typed record. A
// section is treated as absent when all of its fields are zero.
func (v *Validator) CheckPerson(p *models.Person) Violations {
	if p == nil {
		p = &models.Person{}
	}
	c := v.checker(make(map[string]bool), func(_ string, zero bool) bool { return !zero })
	c.person(p)
	return finish(c.vs)
}

// ValidateHousehold decodes and checks a household field mapping.
func (v *Validator) ValidateHousehold(record map[string]any) (*models.Household, Violations) {
	d := newDecoder(v.now)
	h := d.household(record)
	c := v.checker(d.flagged, func(path string, _ bool) bool { return d.present[path] })
	c.household(h)
	vs := finish(d.vs, c.vs)
	if len(vs) > 0 {
		return nil, vs
	}
	return h, nil
}

func (v *Validator) CheckHousehold(h *models.Household) Violations {
	if h == nil {
		return nil
	}
	c := v.checker(make(map[string]bool), func(_ string, zero bool) bool { return !zero })
	c.household(h)
	return finish(c.vs)
}

// ValidateEntity decodes an open entity. Only the identifier field is typed;
// every other key becomes an extension.
func (v *Validator) ValidateEntity(kind models.EntityKind, record map[string]any) (*models.Entity, Violations) {
	d := newDecoder(v.now)
	if !kind.IsValid() {
		d.add("kind", InvalidEnumValue, string(kind), "unknown entity collection")
		return nil, finish(d.vs)
	}
	e := d.entity(kind, record)
	if len(d.vs) > 0 {
		return nil, finish(d.vs)
	}
	return e, nil
}

func (v *Validator) checker(flagged map[string]bool, present func(string, bool) bool) *checker {
	return &checker{
		flagged:                  flagged,
		present:                  present,
		enforceDisabilitySpecify: v.enforceDisabilitySpecify,
		enforceResidenceSubtype:  v.enforceResidenceSubtype,
	}
}

// finish merges violation lists and orders them by field declaration order.
// Paths outside the schema (extensions) sort after declared fields by name.
func finish(lists ...Violations) Violations {
	var out Violations
	for _, l := range lists {
		out = append(out, l...)
	}
	if len(out) == 0 {
		return nil
	}
	slices.SortStableFunc(out, func(a, b Violation) int {
		ra, rb := rank(a.Path), rank(b.Path)
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		if ra == len(fieldOrder) {
			return strings.Compare(a.Path, b.Path)
		}
		return 0
	})
	return out
}

func rank(path string) int {
	if i := strings.IndexByte(path, '['); i >= 0 {
		path = path[:i]
	}
	if r, ok := fieldOrder[path]; ok {
		return r
	}
	return len(fieldOrder)
}
