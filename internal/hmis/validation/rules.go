package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"placemaker/internal/hmis/models"
)

// checker applies presence, enumeration, format and cross-field rules to a
// typed record. Paths already flagged (by the decoder or an earlier rule)
// are not evaluated again, so each defect produces one violation.
type checker struct {
	vs      Violations
	flagged map[string]bool
	present func(path string, zero bool) bool

	enforceDisabilitySpecify bool
	enforceResidenceSubtype  bool
}

func (c *checker) add(path string, kind Kind, value any, msg string) {
	c.vs = append(c.vs, Violation{Path: path, Kind: kind, Value: value, Message: msg})
	c.flagged[path] = true
}

func isZero(v any) bool {
	return reflect.ValueOf(v).IsZero()
}

func (c *checker) section(path string, value any) bool {
	if c.flagged[path] {
		return false
	}
	if !c.present(path, isZero(value)) {
		c.add(path, MissingRequiredField, nil, "section is required")
		return false
	}
	return true
}

func (c *checker) requiredText(path, s string) bool {
	if c.flagged[path] {
		return false
	}
	if s == "" {
		c.add(path, MissingRequiredField, nil, "field is required")
		return false
	}
	return true
}

func (c *checker) requiredDate(path string, t time.Time) bool {
	if c.flagged[path] {
		return false
	}
	if t.IsZero() {
		c.add(path, MissingRequiredField, nil, "field is required")
		return false
	}
	return true
}

// checkChoice reports whether v holds a valid declared value. An absent
// optional value returns false without a violation.
func checkChoice[T models.Choice](c *checker, path string, v T, required bool) bool {
	if c.flagged[path] {
		return false
	}
	if v == "" {
		if required {
			c.add(path, MissingRequiredField, nil, "field is required")
		}
		return false
	}
	if !v.IsValid() {
		c.add(path, InvalidEnumValue, string(v), fmt.Sprintf("%q is not a declared value", string(v)))
		return false
	}
	return true
}

// specify enforces an "Other - please specify" style companion field: text
// is required when wanted and must be empty otherwise.
func (c *checker) specify(path string, wanted bool, text, trigger string) {
	if c.flagged[path] {
		return
	}
	switch {
	case wanted && strings.TrimSpace(text) == "":
		c.add(path, ConditionalFieldViolation, nil, "required when "+trigger)
	case !wanted && text != "":
		c.add(path, ConditionalFieldViolation, text, "only allowed when "+trigger)
	}
}

func (c *checker) person(p *models.Person) {
	if c.section(PathNameInfo, p.NameInfo) {
		c.requiredText(PathFirstName, p.NameInfo.FirstName)
		checkChoice(c, PathNameType, p.NameInfo.NameType, true)
	}
	if c.section(PathSSNInfo, p.SSNInfo) {
		typeOK := checkChoice(c, PathSSNType, p.SSNInfo.SSNType, true)
		c.ssn(p.SSNInfo, typeOK)
	}
	if c.section(PathDOBInfo, p.DOBInfo) {
		c.requiredDate(PathDOB, p.DOBInfo.DOB)
		checkChoice(c, PathDOBType, p.DOBInfo.DOBType, true)
	}
	checkChoice(c, PathRace, p.Race, true)
	checkChoice(c, PathEthnicity, p.Ethnicity, true)
	if c.section(PathGenderInfo, p.GenderInfo) {
		if checkChoice(c, PathGender, p.GenderInfo.Gender, true) {
			c.specify(PathGenderSpecify, p.GenderInfo.Gender == models.GenderOther,
				p.GenderInfo.GenderSpecify, fmt.Sprintf("gender is %q", models.GenderOther))
		}
	}
	checkChoice(c, PathVeteran, p.Veteran, true)
	if c.section(PathDisablingConditionInfo, p.DisablingConditionInfo) {
		info := p.DisablingConditionInfo
		if checkChoice(c, PathDisablingCondition, info.DisablingCondition, true) && c.enforceDisabilitySpecify {
			c.specify(PathDisabilitySpecify, info.DisablingCondition == models.DisablingConditionYes,
				info.DisabilityConditionSpecify, fmt.Sprintf("disabling_condition is %q", models.DisablingConditionYes))
		}
	}
	if c.section(PathLivingSituationInfo, p.LivingSituationInfo) {
		c.livingSituation(p.LivingSituationInfo)
	}
	entryOK := c.requiredDate(PathProjectEntryDate, p.ProjectEntryDate)
	if entryOK && p.ProjectExitDate != nil && !c.flagged[PathProjectExitDate] &&
		p.ProjectExitDate.Before(p.ProjectEntryDate) {
		c.add(PathProjectExitDate, DateOrderViolation, *p.ProjectExitDate, "must not be before project_entry_date")
	}
	if c.section(PathDestinationInfo, p.DestinationInfo) {
		info := p.DestinationInfo
		if checkChoice(c, PathDestination, info.Destination, true) {
			c.specify(PathDestinationSpecify, info.Destination == models.DestinationOther,
				info.DestinationSpecify, fmt.Sprintf("destination is %q", models.DestinationOther))
		}
	}
	checkChoice(c, PathHouseholdHeadRelationship, p.HouseholdHeadRelationship, true)
	if p.CoCID != nil && !c.flagged[PathCoCID] && p.CoCID.IsNil() {
		c.add(PathCoCID, InvalidFormat, p.CoCID.String(), "UUID cannot be nil")
	}
}

func (c *checker) ssn(info models.SSNInfo, typeOK bool) {
	if c.flagged[PathSSN] {
		return
	}
	full := typeOK && info.SSNType == models.SSNTypeFull
	switch {
	case info.SSN == "":
		if full {
			c.add(PathSSN, ConditionalFieldViolation, nil, fmt.Sprintf("required when ssn_type is %q", models.SSNTypeFull))
		}
	case full && !IsFullSSN(info.SSN):
		c.add(PathSSN, InvalidFormat, nil, "a full SSN is exactly 9 digits")
	case !full && !isPartialSSN(info.SSN):
		c.add(PathSSN, InvalidFormat, nil, "at most 9 characters of digits, with x marking unknown digits")
	}
}

// IsFullSSN reports whether s is a complete SSN of 9 digits.
func IsFullSSN(s string) bool {
	if len(s) != 9 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isPartialSSN(s string) bool {
	if len(s) > 9 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != 'x' && r != 'X' {
			return false
		}
	}
	return true
}

func (c *checker) livingSituation(ls models.LivingSituationInfo) {
	typeOK := checkChoice(c, PathResidenceType, ls.ResidenceType, true)
	subOK := checkChoice(c, PathResidenceSubtype, ls.ResidenceSubtype, true)
	if c.enforceResidenceSubtype && typeOK && subOK {
		c.admits(PathResidenceSubtype, ls.ResidenceType, ls.ResidenceSubtype, "residence_type")
	}
	checkChoice(c, PathCurrentLengthOfStay, ls.CurrentLengthOfStay, true)
	c.requiredDate(PathCurrentApproxStartDate, ls.CurrentApproxStartDate)
	checkChoice(c, PathTotalCount, ls.TotalCount, true)
	if !c.flagged[PathTotalMonths] && ls.TotalMonths < 0 {
		c.add(PathTotalMonths, OutOfRange, ls.TotalMonths, "must not be negative")
	}

	priorTypeOK := checkChoice(c, PathPriorResidenceType, ls.PriorResidenceType, false)
	priorSubOK := checkChoice(c, PathPriorResidenceSubtype, ls.PriorResidenceSubtype, false)
	if c.enforceResidenceSubtype && priorTypeOK && priorSubOK {
		c.admits(PathPriorResidenceSubtype, ls.PriorResidenceType, ls.PriorResidenceSubtype, "prior_residence_type")
	}
	c.priorTriple(ls)
}

func (c *checker) admits(path string, t models.ResidenceType, sub models.ResidenceSubtype, field string) {
	if !t.Admits(sub) {
		c.add(path, ConditionalFieldViolation, string(sub), fmt.Sprintf("not a subtype of %s %q", field, t))
	}
}

// priorTriple requires the three prior residence fields to be set together.
func (c *checker) priorTriple(ls models.LivingSituationInfo) {
	paths := []string{PathPriorResidenceType, PathPriorResidenceSubtype, PathPriorApproxStartDate}
	for _, p := range paths {
		if c.flagged[p] {
			return
		}
	}
	set := []bool{ls.PriorResidenceType != "", ls.PriorResidenceSubtype != "", ls.PriorApproxStartDate != nil}
	n := 0
	for _, ok := range set {
		if ok {
			n++
		}
	}
	if n == 0 || n == len(set) {
		return
	}
	for i, ok := range set {
		if !ok {
			c.add(paths[i], ConditionalFieldViolation, nil,
				"prior_residence_type, prior_residence_subtype and prior_approx_start_date are set together")
		}
	}
}

func (c *checker) household(h *models.Household) {
	seen := make(map[string]int, len(h.Members))
	for i, m := range h.Members {
		path := memberPath(i)
		if c.flagged[path] {
			continue
		}
		if m.IsNil() {
			c.add(path, InvalidFormat, m.String(), "UUID cannot be nil")
			continue
		}
		key := m.String()
		if first, dup := seen[key]; dup {
			c.add(path, UniquenessViolation, key, fmt.Sprintf("duplicates %s", memberPath(first)))
			continue
		}
		seen[key] = i
	}
}
