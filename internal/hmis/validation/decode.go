package validation

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"placemaker/internal/hmis/models"
	id "placemaker/pkg/domain"
)

// Document keys of each section. Anything else lands in Extensions.
var (
	personKeys = []string{
		"personal_id", "name_info", "ssn_info", "dob_info", "race", "ethnicity",
		"gender_info", "veteran", "disabling_condition_info", "living_situation_info",
		"project_entry_date", "project_exit_date", "destination_info",
		"household_head_relationship", "coc_id",
	}
	nameKeys        = []string{"first_name", "middle_name", "last_name", "suffix", "name_type"}
	ssnKeys         = []string{"ssn", "ssn_type"}
	dobKeys         = []string{"dob", "dob_type"}
	genderKeys      = []string{"gender", "gender_specify"}
	disablingKeys   = []string{"disabling_condition", "disability_condition_specify"}
	destinationKeys = []string{"destination", "destination_specify"}
	livingKeys      = []string{
		"residence_type", "residence_subtype", "current_length_of_stay",
		"current_approx_start_date", "total_count", "total_months",
		"prior_residence_type", "prior_residence_subtype", "prior_approx_start_date",
	}
	householdKeys = []string{"household_id", "members"}
)

// decoder converts a loosely typed field mapping into schema structs. It only
// reports shape problems (wrong Go type, unparsable dates and UUIDs, bad
// extension values); presence and domain rules belong to the checker.
type decoder struct {
	now     func() time.Time
	vs      Violations
	flagged map[string]bool
	present map[string]bool
}

func newDecoder(now func() time.Time) *decoder {
	return &decoder{
		now:     now,
		flagged: make(map[string]bool),
		present: make(map[string]bool),
	}
}

func (d *decoder) add(path string, kind Kind, value any, msg string) {
	if path == PathSSN {
		value = nil
	}
	d.vs = append(d.vs, Violation{Path: path, Kind: kind, Value: value, Message: msg})
	d.flagged[path] = true
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func lookup(obj map[string]any, key string) (any, bool) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

func (d *decoder) section(obj map[string]any, key string) map[string]any {
	raw, ok := lookup(obj, key)
	if !ok {
		return nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		d.add(key, TypeMismatch, raw, "expected an object")
		return nil
	}
	d.present[key] = true
	return m
}

func (d *decoder) text(obj map[string]any, prefix, key string) string {
	raw, ok := lookup(obj, key)
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.add(join(prefix, key), TypeMismatch, raw, "expected a string")
		return ""
	}
	return s
}

func (d *decoder) date(obj map[string]any, prefix, key string) *time.Time {
	raw, ok := lookup(obj, key)
	if !ok {
		return nil
	}
	path := join(prefix, key)
	switch v := raw.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v.IsZero() {
			return nil
		}
		t := *v
		return &t
	case string:
		if v == "" {
			return nil
		}
		t, err := parseDate(v)
		if err != nil {
			d.add(path, InvalidFormat, v, "expected an RFC 3339 timestamp or YYYY-MM-DD date")
			return nil
		}
		return &t
	default:
		d.add(path, TypeMismatch, raw, "expected a date")
		return nil
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}

type int64er interface {
	Int64() (int64, error)
}

type float64er interface {
	Float64() (float64, error)
}

// integer reports the decoded value and whether the key carried one.
func (d *decoder) integer(obj map[string]any, prefix, key string) (int, bool) {
	raw, ok := lookup(obj, key)
	if !ok {
		return 0, false
	}
	path := join(prefix, key)
	n, err := toInt(raw)
	switch {
	case errors.Is(err, errIntRange):
		d.add(path, OutOfRange, raw, "outside the integer range")
		return 0, true
	case err != nil:
		d.add(path, TypeMismatch, raw, "expected an integer")
		return 0, true
	}
	return n, true
}

var (
	errNotInt   = errors.New("not an integer")
	errIntRange = errors.New("integer out of range")
)

const (
	minIntFloat = float64(math.MinInt)
	maxIntFloat = -minIntFloat // exclusive
)

func toInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return uintToInt(uint64(v))
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return uintToInt(uint64(v))
	case uint64:
		return uintToInt(v)
	case uintptr:
		return uintToInt(uint64(v))
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case int64er:
		n, err := v.Int64()
		if err == nil {
			return toInt(n)
		}
		// Int64 fails for exponents and overflow alike; the float form
		// tells an integral out-of-range value from a fraction.
		if f, ok := raw.(float64er); ok {
			if x, ferr := f.Float64(); ferr == nil || math.IsInf(x, 0) {
				return floatToInt(x)
			}
		}
		return 0, errNotInt
	default:
		return 0, errNotInt
	}
}

func uintToInt(u uint64) (int, error) {
	if u > math.MaxInt {
		return 0, errIntRange
	}
	return int(u), nil
}

func floatToInt(f float64) (int, error) {
	switch {
	case math.IsNaN(f):
		return 0, errNotInt
	case math.IsInf(f, 0) || f < minIntFloat || f >= maxIntFloat:
		return 0, errIntRange
	case f != math.Trunc(f):
		return 0, errNotInt
	}
	return int(f), nil
}

func (d *decoder) uuid(obj map[string]any, prefix, key string) (uuid.UUID, bool) {
	raw, ok := lookup(obj, key)
	if !ok {
		return uuid.Nil, false
	}
	return d.uuidValue(join(prefix, key), raw)
}

func (d *decoder) uuidValue(path string, raw any) (uuid.UUID, bool) {
	var u uuid.UUID
	switch v := raw.(type) {
	case uuid.UUID:
		u = v
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			d.add(path, InvalidFormat, v, "expected a UUID")
			return uuid.Nil, false
		}
		u = parsed
	default:
		d.add(path, TypeMismatch, raw, "expected a UUID string")
		return uuid.Nil, false
	}
	if u == uuid.Nil {
		d.add(path, InvalidFormat, raw, "UUID cannot be nil")
		return uuid.Nil, false
	}
	return u, true
}

// extensions collects keys outside the declared schema, sorted by name.
func (d *decoder) extensions(obj map[string]any, prefix string, known []string) models.Extensions {
	var extra []string
	for k := range obj {
		if !slices.Contains(known, k) {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	slices.Sort(extra)
	out := make(models.Extensions, len(extra))
	for _, k := range extra {
		if v, ok := extensionValue(obj[k]); ok {
			out[k] = v
			continue
		}
		if _, err := toInt(obj[k]); errors.Is(err, errIntRange) {
			d.add(join(prefix, k), OutOfRange, obj[k], "outside the integer range")
			continue
		}
		d.add(join(prefix, k), TypeMismatch, obj[k], "extension values must be a string, number, bool or date")
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func extensionValue(raw any) (models.ExtensionValue, bool) {
	switch v := raw.(type) {
	case string:
		return models.StringExt(v), true
	case bool:
		return models.BoolExt(v), true
	case time.Time:
		return models.DateExt(v), true
	case float64:
		return models.NumberExt(v), true
	case float32:
		return models.NumberExt(float64(v)), true
	case float64er:
		f, err := v.Float64()
		if err != nil {
			return models.ExtensionValue{}, false
		}
		return models.NumberExt(f), true
	}
	if n, err := toInt(raw); err == nil {
		return models.NumberExt(float64(n)), true
	}
	return models.ExtensionValue{}, false
}

func (d *decoder) person(raw map[string]any) *models.Person {
	p := &models.Person{}
	if u, ok := d.uuid(raw, "", "personal_id"); ok {
		p.PersonalID = id.PersonalID(u)
	}
	if m := d.section(raw, "name_info"); m != nil {
		p.NameInfo = models.NameInfo{
			FirstName:  d.text(m, PathNameInfo, "first_name"),
			MiddleName: d.text(m, PathNameInfo, "middle_name"),
			LastName:   d.text(m, PathNameInfo, "last_name"),
			Suffix:     d.text(m, PathNameInfo, "suffix"),
			NameType:   models.NameType(d.text(m, PathNameInfo, "name_type")),
			Extensions: d.extensions(m, PathNameInfo, nameKeys),
		}
	}
	if m := d.section(raw, "ssn_info"); m != nil {
		p.SSNInfo = models.SSNInfo{
			SSN:        d.text(m, PathSSNInfo, "ssn"),
			SSNType:    models.SSNType(d.text(m, PathSSNInfo, "ssn_type")),
			Extensions: d.extensions(m, PathSSNInfo, ssnKeys),
		}
	}
	if m := d.section(raw, "dob_info"); m != nil {
		p.DOBInfo = models.DOBInfo{
			DOBType:    models.DOBType(d.text(m, PathDOBInfo, "dob_type")),
			Extensions: d.extensions(m, PathDOBInfo, dobKeys),
		}
		if t := d.date(m, PathDOBInfo, "dob"); t != nil {
			p.DOBInfo.DOB = *t
		}
	}
	p.Race = models.Race(d.text(raw, "", "race"))
	p.Ethnicity = models.Ethnicity(d.text(raw, "", "ethnicity"))
	if m := d.section(raw, "gender_info"); m != nil {
		p.GenderInfo = models.GenderInfo{
			Gender:        models.Gender(d.text(m, PathGenderInfo, "gender")),
			GenderSpecify: d.text(m, PathGenderInfo, "gender_specify"),
			Extensions:    d.extensions(m, PathGenderInfo, genderKeys),
		}
	}
	p.Veteran = models.VeteranStatus(d.text(raw, "", "veteran"))
	if m := d.section(raw, "disabling_condition_info"); m != nil {
		p.DisablingConditionInfo = models.DisablingConditionInfo{
			DisablingCondition:         models.DisablingCondition(d.text(m, PathDisablingConditionInfo, "disabling_condition")),
			DisabilityConditionSpecify: d.text(m, PathDisablingConditionInfo, "disability_condition_specify"),
			Extensions:                 d.extensions(m, PathDisablingConditionInfo, disablingKeys),
		}
	}
	if m := d.section(raw, "living_situation_info"); m != nil {
		p.LivingSituationInfo = d.livingSituation(m)
	}
	if t := d.date(raw, "", "project_entry_date"); t != nil {
		p.ProjectEntryDate = *t
	} else if !d.flagged[PathProjectEntryDate] {
		p.ProjectEntryDate = d.now()
	}
	p.ProjectExitDate = d.date(raw, "", "project_exit_date")
	if m := d.section(raw, "destination_info"); m != nil {
		p.DestinationInfo = models.DestinationInfo{
			Destination:        models.Destination(d.text(m, PathDestinationInfo, "destination")),
			DestinationSpecify: d.text(m, PathDestinationInfo, "destination_specify"),
			Extensions:         d.extensions(m, PathDestinationInfo, destinationKeys),
		}
	}
	p.HouseholdHeadRelationship = models.HouseholdRelationship(d.text(raw, "", "household_head_relationship"))
	if u, ok := d.uuid(raw, "", "coc_id"); ok {
		coc := id.CoCID(u)
		p.CoCID = &coc
	}
	p.Extensions = d.extensions(raw, "", personKeys)
	return p
}

func (d *decoder) livingSituation(m map[string]any) models.LivingSituationInfo {
	const prefix = PathLivingSituationInfo
	ls := models.LivingSituationInfo{
		ResidenceType:         models.ResidenceType(d.text(m, prefix, "residence_type")),
		ResidenceSubtype:      models.ResidenceSubtype(d.text(m, prefix, "residence_subtype")),
		CurrentLengthOfStay:   models.LengthOfStay(d.text(m, prefix, "current_length_of_stay")),
		TotalCount:            models.EpisodeCount(d.text(m, prefix, "total_count")),
		PriorResidenceType:    models.ResidenceType(d.text(m, prefix, "prior_residence_type")),
		PriorResidenceSubtype: models.ResidenceSubtype(d.text(m, prefix, "prior_residence_subtype")),
		PriorApproxStartDate:  d.date(m, prefix, "prior_approx_start_date"),
		Extensions:            d.extensions(m, prefix, livingKeys),
	}
	if t := d.date(m, prefix, "current_approx_start_date"); t != nil {
		ls.CurrentApproxStartDate = *t
	}
	n, ok := d.integer(m, prefix, "total_months")
	if !ok {
		d.add(PathTotalMonths, MissingRequiredField, nil, "field is required")
	}
	ls.TotalMonths = n
	return ls
}

func (d *decoder) household(raw map[string]any) *models.Household {
	h := &models.Household{}
	if u, ok := d.uuid(raw, "", "household_id"); ok {
		h.HouseholdID = id.HouseholdID(u)
	}
	if list, ok := lookup(raw, "members"); ok {
		h.Members = d.members(list)
	}
	h.Extensions = d.extensions(raw, "", householdKeys)
	return h
}

// members keeps one slot per input element so indexes in violation paths
// line up with the caller's list; undecodable slots stay nil.
func (d *decoder) members(raw any) []id.PersonalID {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case []id.PersonalID:
		return slices.Clone(v)
	default:
		d.add(PathMembers, TypeMismatch, raw, "expected a list of personal IDs")
		return nil
	}
	out := make([]id.PersonalID, len(items))
	for i, item := range items {
		if item == nil {
			d.add(memberPath(i), TypeMismatch, nil, "expected a UUID string")
			continue
		}
		if u, ok := d.uuidValue(memberPath(i), item); ok {
			out[i] = id.PersonalID(u)
		}
	}
	return out
}

func memberPath(i int) string {
	return PathMembers + "[" + strconv.Itoa(i) + "]"
}

func (d *decoder) entity(kind models.EntityKind, raw map[string]any) *models.Entity {
	e := &models.Entity{Kind: kind}
	if u, ok := d.uuid(raw, "", kind.IDField()); ok {
		e.ID = u
	}
	e.Extensions = d.extensions(raw, "", []string{kind.IDField()})
	return e
}
