package validation

import (
	"math"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"placemaker/internal/hmis/models"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type ValidatorSuite struct {
	suite.Suite
	v *Validator
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.v = New(WithClock(func() time.Time { return fixedNow }))
}

// minimalPerson is the smallest record that passes every rule.
func minimalPerson() map[string]any {
	return map[string]any{
		"name_info": map[string]any{
			"first_name": "Ada",
			"name_type":  "Full name reported",
		},
		"ssn_info": map[string]any{
			"ssn_type": "Client refused",
		},
		"dob_info": map[string]any{
			"dob":      "1980-04-12",
			"dob_type": "Full DOB reported",
		},
		"race":      "White",
		"ethnicity": "Non-Hispanic/Non-Latino",
		"gender_info": map[string]any{
			"gender": "Female",
		},
		"veteran": "No",
		"disabling_condition_info": map[string]any{
			"disabling_condition": "No",
		},
		"living_situation_info": map[string]any{
			"residence_type":            "Literally Homeless",
			"residence_subtype":         string(models.SubtypeEmergencyShelter),
			"current_length_of_stay":    "Two to six nights",
			"current_approx_start_date": "2024-02-20",
			"total_count":               "One Time",
			"total_months":              1,
		},
		"destination_info": map[string]any{
			"destination": "Deceased",
		},
		"household_head_relationship": "Self (head of household)",
	}
}

func section(rec map[string]any, name string) map[string]any {
	return rec[name].(map[string]any)
}

// set writes value at a dotted path of depth one or two.
func set(rec map[string]any, path string, value any) {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			section(rec, path[:i])[path[i+1:]] = value
			return
		}
	}
	rec[path] = value
}

func remove(rec map[string]any, path string) {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			delete(section(rec, path[:i]), path[i+1:])
			return
		}
	}
	delete(rec, path)
}

func (s *ValidatorSuite) TestMinimalValidPerson() {
	s.Run("accepts the minimal record", func() {
		p, vs := s.v.ValidatePerson(minimalPerson())
		s.Require().Empty(vs)
		s.Require().NotNil(p)
		s.Equal("Ada", p.NameInfo.FirstName)
		s.Equal(models.GenderFemale, p.GenderInfo.Gender)
		s.Equal(1, p.LivingSituationInfo.TotalMonths)
		s.Equal(time.Date(1980, 4, 12, 0, 0, 0, 0, time.UTC), p.DOBInfo.DOB)
		s.Nil(p.ProjectExitDate)
		s.Nil(p.CoCID)
	})

	s.Run("defaults project_entry_date to the clock", func() {
		p, vs := s.v.ValidatePerson(minimalPerson())
		s.Require().Empty(vs)
		s.Equal(fixedNow, p.ProjectEntryDate)
	})

	s.Run("keeps an explicit project_entry_date", func() {
		rec := minimalPerson()
		rec["project_entry_date"] = "2024-02-21T08:00:00Z"
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal(time.Date(2024, 2, 21, 8, 0, 0, 0, time.UTC), p.ProjectEntryDate)
	})

	s.Run("accepts time values and json numbers", func() {
		rec := minimalPerson()
		set(rec, PathDOB, time.Date(1975, 1, 2, 0, 0, 0, 0, time.UTC))
		set(rec, PathTotalMonths, json.Number("14"))
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal(14, p.LivingSituationInfo.TotalMonths)
		s.Equal(1975, p.DOBInfo.DOB.Year())
	})

	s.Run("accepts integral floats from decoded JSON", func() {
		rec := minimalPerson()
		set(rec, PathTotalMonths, float64(7))
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal(7, p.LivingSituationInfo.TotalMonths)
	})
}

func (s *ValidatorSuite) TestEnumMembership() {
	paths := []string{
		PathNameType, PathSSNType, PathDOBType, PathRace, PathEthnicity, PathGender,
		PathVeteran, PathDisablingCondition, PathResidenceType, PathResidenceSubtype,
		PathCurrentLengthOfStay, PathTotalCount, PathDestination, PathHouseholdHeadRelationship,
	}
	for _, path := range paths {
		s.Run("rejects undeclared value at "+path, func() {
			rec := minimalPerson()
			set(rec, path, "Not a declared value")
			p, vs := s.v.ValidatePerson(rec)
			s.Nil(p)
			s.Require().Len(vs, 1, vs.Error())
			s.Equal(path, vs[0].Path)
			s.Equal(InvalidEnumValue, vs[0].Kind)
			s.Equal("Not a declared value", vs[0].Value)
		})
	}

	s.Run("membership is case exact", func() {
		rec := minimalPerson()
		set(rec, PathGender, "female")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathGender, InvalidEnumValue))
	})

	s.Run("membership is whitespace exact", func() {
		rec := minimalPerson()
		set(rec, PathVeteran, " No")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathVeteran, InvalidEnumValue))
	})

	s.Run("invalid prior residence type yields one violation", func() {
		rec := minimalPerson()
		set(rec, PathPriorResidenceType, "Somewhere")
		set(rec, PathPriorResidenceSubtype, string(models.SubtypeHospital))
		set(rec, PathPriorApproxStartDate, "2023-01-01")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathPriorResidenceType, InvalidEnumValue))
	})
}

func (s *ValidatorSuite) TestRequiredFields() {
	leaves := []string{
		PathFirstName, PathNameType, PathSSNType, PathDOB, PathDOBType, PathRace,
		PathEthnicity, PathGender, PathVeteran, PathDisablingCondition,
		PathResidenceType, PathResidenceSubtype, PathCurrentLengthOfStay,
		PathCurrentApproxStartDate, PathTotalCount, PathTotalMonths, PathDestination,
		PathHouseholdHeadRelationship,
	}
	for _, path := range leaves {
		s.Run("reports missing "+path, func() {
			rec := minimalPerson()
			remove(rec, path)
			_, vs := s.v.ValidatePerson(rec)
			s.Require().Len(vs, 1, vs.Error())
			s.Equal(path, vs[0].Path)
			s.Equal(MissingRequiredField, vs[0].Kind)
			s.Nil(vs[0].Value)
		})
	}

	sections := []string{
		PathNameInfo, PathSSNInfo, PathDOBInfo, PathGenderInfo,
		PathDisablingConditionInfo, PathLivingSituationInfo, PathDestinationInfo,
	}
	for _, path := range sections {
		s.Run("reports missing section "+path, func() {
			rec := minimalPerson()
			delete(rec, path)
			_, vs := s.v.ValidatePerson(rec)
			s.Require().Len(vs, 1, vs.Error())
			s.True(vs.Has(path, MissingRequiredField))
		})
	}

	s.Run("empty string counts as missing", func() {
		rec := minimalPerson()
		set(rec, PathFirstName, "")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathFirstName, MissingRequiredField))
	})

	s.Run("null counts as missing", func() {
		rec := minimalPerson()
		rec[PathRace] = nil
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathRace, MissingRequiredField))
	})

	s.Run("reports every omission, not just the first", func() {
		rec := minimalPerson()
		delete(rec, PathRace)
		delete(rec, PathVeteran)
		remove(rec, PathFirstName)
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 3)
		s.Equal([]string{PathFirstName, PathRace, PathVeteran}, paths(vs))
	})

	s.Run("empty record reports each required top-level field", func() {
		_, vs := s.v.ValidatePerson(nil)
		s.Equal(11, vs.CountByKind()[MissingRequiredField])
		s.Len(vs, 11)
	})
}

func paths(vs Violations) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Path
	}
	return out
}

func (s *ValidatorSuite) TestIdempotence() {
	rec := minimalPerson()
	set(rec, PathGender, "Other - please specify")
	set(rec, PathTotalMonths, -4)
	rec["project_exit_date"] = "2020-01-01"

	_, first := s.v.ValidatePerson(rec)
	_, second := s.v.ValidatePerson(rec)
	s.Require().NotEmpty(first)
	s.Equal(first, second)

	p1, vs1 := s.v.ValidatePerson(minimalPerson())
	p2, vs2 := s.v.ValidatePerson(minimalPerson())
	s.Empty(vs1)
	s.Empty(vs2)
	s.Equal(p1, p2)
}

func (s *ValidatorSuite) TestSpecifyRules() {
	s.Run("gender Other requires gender_specify", func() {
		rec := minimalPerson()
		set(rec, PathGender, string(models.GenderOther))
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathGenderSpecify, ConditionalFieldViolation))
	})

	s.Run("gender Other with blank gender_specify is rejected", func() {
		rec := minimalPerson()
		set(rec, PathGender, string(models.GenderOther))
		set(rec, PathGenderSpecify, "   ")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathGenderSpecify, ConditionalFieldViolation))
	})

	s.Run("gender Other with gender_specify passes", func() {
		rec := minimalPerson()
		set(rec, PathGender, string(models.GenderOther))
		set(rec, PathGenderSpecify, "Two-spirit")
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal("Two-spirit", p.GenderInfo.GenderSpecify)
	})

	s.Run("gender_specify is forbidden for other genders", func() {
		rec := minimalPerson()
		set(rec, PathGenderSpecify, "anything")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathGenderSpecify, ConditionalFieldViolation))
		s.Equal("anything", vs[0].Value)
	})

	s.Run("invalid gender skips the specify rule", func() {
		rec := minimalPerson()
		set(rec, PathGender, "other")
		set(rec, PathGenderSpecify, "anything")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathGender, InvalidEnumValue))
	})

	s.Run("destination Other requires destination_specify", func() {
		rec := minimalPerson()
		set(rec, PathDestination, string(models.DestinationOther))
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathDestinationSpecify, ConditionalFieldViolation))

		set(rec, PathDestinationSpecify, "Moved abroad")
		_, vs = s.v.ValidatePerson(rec)
		s.Empty(vs)
	})

	s.Run("destination_specify is forbidden for other destinations", func() {
		rec := minimalPerson()
		set(rec, PathDestinationSpecify, "Moved abroad")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathDestinationSpecify, ConditionalFieldViolation))
	})

	s.Run("disability specify is not enforced by default", func() {
		rec := minimalPerson()
		set(rec, PathDisablingCondition, "Yes")
		_, vs := s.v.ValidatePerson(rec)
		s.Empty(vs)
	})

	s.Run("disability specify is enforced when enabled", func() {
		strict := New(WithClock(func() time.Time { return fixedNow }), WithDisabilitySpecifyRule(true))
		rec := minimalPerson()
		set(rec, PathDisablingCondition, "Yes")
		_, vs := strict.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathDisabilitySpecify, ConditionalFieldViolation))

		set(rec, PathDisabilitySpecify, "Mobility")
		_, vs = strict.ValidatePerson(rec)
		s.Empty(vs)

		set(rec, PathDisablingCondition, "No")
		_, vs = strict.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathDisabilitySpecify, ConditionalFieldViolation))
	})
}

func (s *ValidatorSuite) TestSSNRules() {
	s.Run("full SSN type requires an ssn", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypeFull))
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathSSN, ConditionalFieldViolation))
	})

	s.Run("full SSN must be nine digits", func() {
		for _, bad := range []string{"12345", "1234567890", "12345678x", "123-45-678"} {
			rec := minimalPerson()
			set(rec, PathSSNType, string(models.SSNTypeFull))
			set(rec, PathSSN, bad)
			_, vs := s.v.ValidatePerson(rec)
			s.Require().Len(vs, 1, bad)
			s.True(vs.Has(PathSSN, InvalidFormat), bad)
		}
	})

	s.Run("full SSN with nine digits passes", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypeFull))
		set(rec, PathSSN, "123456789")
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.True(p.HasFullSSN())
	})

	s.Run("partial SSN allows unknown digits", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypePartial))
		set(rec, PathSSN, "12xx")
		_, vs := s.v.ValidatePerson(rec)
		s.Empty(vs)
	})

	s.Run("partial SSN rejects other characters", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypePartial))
		set(rec, PathSSN, "12-4")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathSSN, InvalidFormat))
	})

	s.Run("format violations leave the ssn out", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypeFull))
		set(rec, PathSSN, "12345678x")
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.Equal(PathSSN, vs[0].Path)
		s.Nil(vs[0].Value)
		s.NotContains(vs.Error(), "12345678x")

		set(rec, PathSSNType, string(models.SSNTypePartial))
		set(rec, PathSSN, "12-4")
		_, vs = s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.Nil(vs[0].Value)
	})

	s.Run("type mismatch leaves the ssn out", func() {
		rec := minimalPerson()
		set(rec, PathSSNType, string(models.SSNTypeFull))
		set(rec, PathSSN, 123456789)
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathSSN, TypeMismatch))
		s.Nil(vs[0].Value)
	})

	s.Run("refused SSN may be empty", func() {
		rec := minimalPerson()
		set(rec, PathSSN, "")
		_, vs := s.v.ValidatePerson(rec)
		s.Empty(vs)
	})
}

func (s *ValidatorSuite) TestDateOrder() {
	s.Run("exit before entry is rejected", func() {
		rec := minimalPerson()
		rec["project_entry_date"] = "2024-02-10"
		rec["project_exit_date"] = "2024-02-09"
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathProjectExitDate, DateOrderViolation))
	})

	s.Run("exit on entry day is accepted", func() {
		rec := minimalPerson()
		rec["project_entry_date"] = "2024-02-10"
		rec["project_exit_date"] = "2024-02-10"
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.True(p.IsExited())
	})

	s.Run("exit before defaulted entry is rejected", func() {
		rec := minimalPerson()
		rec["project_exit_date"] = "2024-02-29"
		_, vs := s.v.ValidatePerson(rec)
		s.True(vs.Has(PathProjectExitDate, DateOrderViolation))
	})

	s.Run("unparsable entry date skips the ordering rule", func() {
		rec := minimalPerson()
		rec["project_entry_date"] = "tomorrow"
		rec["project_exit_date"] = "2024-02-09"
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathProjectEntryDate, InvalidFormat))
	})
}

func (s *ValidatorSuite) TestTypesAndFormats() {
	cases := []struct {
		name  string
		path  string
		value any
		kind  Kind
	}{
		{"number for text", PathFirstName, 42, TypeMismatch},
		{"bool for choice", PathRace, true, TypeMismatch},
		{"text for integer", PathTotalMonths, "ten", TypeMismatch},
		{"fraction for integer", PathTotalMonths, 3.5, TypeMismatch},
		{"number for date", PathDOB, 19800412, TypeMismatch},
		{"unparsable date", PathDOB, "12/04/1980", InvalidFormat},
		{"negative months", PathTotalMonths, -1, OutOfRange},
		{"float beyond int range", PathTotalMonths, 1e300, OutOfRange},
		{"float below int range", PathTotalMonths, -1e300, OutOfRange},
		{"uint64 beyond int range", PathTotalMonths, uint64(math.MaxUint64), OutOfRange},
		{"json number beyond int range", PathTotalMonths, json.Number("1e300"), OutOfRange},
		{"json number overflowing int64", PathTotalMonths, json.Number("99999999999999999999"), OutOfRange},
		{"json fraction for integer", PathTotalMonths, json.Number("3.5"), TypeMismatch},
		{"unparsable uuid", PathCoCID, "not-a-uuid", InvalidFormat},
		{"nil uuid", PathPersonalID, "00000000-0000-0000-0000-000000000000", InvalidFormat},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := minimalPerson()
			set(rec, tc.path, tc.value)
			_, vs := s.v.ValidatePerson(rec)
			s.Require().Len(vs, 1, vs.Error())
			s.True(vs.Has(tc.path, tc.kind), vs.Error())
		})
	}

	s.Run("accepts unsigned integers", func() {
		for _, v := range []any{uint(4), uint8(4), uint16(4), uint32(4), uint64(4), uintptr(4)} {
			rec := minimalPerson()
			set(rec, PathTotalMonths, v)
			p, vs := s.v.ValidatePerson(rec)
			s.Require().Empty(vs, "%T", v)
			s.Equal(4, p.LivingSituationInfo.TotalMonths, "%T", v)
		}
	})

	s.Run("out of range extension integer", func() {
		rec := minimalPerson()
		rec["site_count"] = uint64(math.MaxUint64)
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has("site_count", OutOfRange))
	})

	s.Run("non-object section reports one mismatch", func() {
		rec := minimalPerson()
		rec[PathNameInfo] = "Ada Lovelace"
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathNameInfo, TypeMismatch))
	})

	s.Run("decodes identifiers", func() {
		rec := minimalPerson()
		rec[PathPersonalID] = "6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c001"
		rec[PathCoCID] = "6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c002"
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal("6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c001", p.PersonalID.String())
		s.Require().NotNil(p.CoCID)
		s.Equal("6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c002", p.CoCID.String())
	})
}

func (s *ValidatorSuite) TestResidenceRules() {
	s.Run("subtype and residence type are independent by default", func() {
		rec := minimalPerson()
		set(rec, PathResidenceType, string(models.ResidenceInstitutional))
		set(rec, PathResidenceSubtype, string(models.SubtypeSafeHaven))
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal(models.SubtypeSafeHaven, p.LivingSituationInfo.ResidenceSubtype)
	})

	s.Run("subtype grouping is enforced when enabled", func() {
		strict := New(WithClock(func() time.Time { return fixedNow }), WithResidenceSubtypeRule(true))
		rec := minimalPerson()
		set(rec, PathResidenceSubtype, string(models.SubtypeHospital))
		_, vs := strict.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathResidenceSubtype, ConditionalFieldViolation))
	})

	s.Run("don't know subtype fits any type", func() {
		rec := minimalPerson()
		set(rec, PathResidenceType, string(models.ResidenceInstitutional))
		set(rec, PathResidenceSubtype, string(models.SubtypeClientDoesntKnow))
		_, vs := s.v.ValidatePerson(rec)
		s.Empty(vs)
	})

	s.Run("complete prior residence passes", func() {
		rec := minimalPerson()
		set(rec, PathPriorResidenceType, string(models.ResidenceTransitionalPermanent))
		set(rec, PathPriorResidenceSubtype, string(models.SubtypeRentalVASH))
		set(rec, PathPriorApproxStartDate, "2022-06-01")
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Require().NotNil(p.LivingSituationInfo.PriorApproxStartDate)
	})

	s.Run("partial prior residence reports each absent field", func() {
		rec := minimalPerson()
		set(rec, PathPriorResidenceType, string(models.ResidenceInstitutional))
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 2)
		s.True(vs.Has(PathPriorResidenceSubtype, ConditionalFieldViolation))
		s.True(vs.Has(PathPriorApproxStartDate, ConditionalFieldViolation))
	})

	s.Run("prior subtype and prior type are independent by default", func() {
		rec := minimalPerson()
		set(rec, PathPriorResidenceType, string(models.ResidenceInstitutional))
		set(rec, PathPriorResidenceSubtype, string(models.SubtypeRentalVASH))
		set(rec, PathPriorApproxStartDate, "2022-06-01")
		_, vs := s.v.ValidatePerson(rec)
		s.Empty(vs)
	})

	s.Run("prior subtype grouping is enforced when enabled", func() {
		strict := New(WithClock(func() time.Time { return fixedNow }), WithResidenceSubtypeRule(true))
		rec := minimalPerson()
		set(rec, PathPriorResidenceType, string(models.ResidenceInstitutional))
		set(rec, PathPriorResidenceSubtype, string(models.SubtypeRentalVASH))
		set(rec, PathPriorApproxStartDate, "2022-06-01")
		_, vs := strict.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathPriorResidenceSubtype, ConditionalFieldViolation))
	})
}

func (s *ValidatorSuite) TestExtensions() {
	s.Run("unknown keys become typed extensions", func() {
		rec := minimalPerson()
		rec["intake_notes"] = "walk-in"
		rec["has_pet"] = true
		rec["visits"] = float64(3)
		set(rec, "name_info.nickname", "Addy")
		p, vs := s.v.ValidatePerson(rec)
		s.Require().Empty(vs)
		s.Equal(models.StringExt("walk-in"), p.Extensions["intake_notes"])
		s.Equal(models.BoolExt(true), p.Extensions["has_pet"])
		s.Equal(models.NumberExt(3), p.Extensions["visits"])
		s.Equal(models.StringExt("Addy"), p.NameInfo.Extensions["nickname"])
	})

	s.Run("structured extension values are rejected", func() {
		rec := minimalPerson()
		rec["tags"] = []any{"a", "b"}
		set(rec, "gender_info.meta", map[string]any{"k": "v"})
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 2)
		s.True(vs.Has("tags", TypeMismatch))
		s.True(vs.Has("gender_info.meta", TypeMismatch))
	})

	s.Run("null extension values are rejected", func() {
		rec := minimalPerson()
		rec["referral"] = nil
		_, vs := s.v.ValidatePerson(rec)
		s.Require().Len(vs, 1)
		s.True(vs.Has("referral", TypeMismatch))
	})
}

func (s *ValidatorSuite) TestOrdering() {
	rec := minimalPerson()
	rec["zeta"] = []any{}
	rec["alpha"] = []any{}
	set(rec, PathHouseholdHeadRelationship, "Cousin")
	set(rec, PathTotalMonths, -2)
	remove(rec, PathFirstName)
	set(rec, PathGender, "?")

	_, vs := s.v.ValidatePerson(rec)
	s.Equal([]string{
		PathFirstName, PathGender, PathTotalMonths, PathHouseholdHeadRelationship, "alpha", "zeta",
	}, paths(vs))
}

func (s *ValidatorSuite) TestCheckPerson() {
	valid, vs := s.v.ValidatePerson(minimalPerson())
	s.Require().Empty(vs)

	s.Run("typed valid record passes", func() {
		s.Empty(s.v.CheckPerson(valid.Clone()))
	})

	s.Run("typed record reports zero sections as missing", func() {
		p := valid.Clone()
		p.DestinationInfo = models.DestinationInfo{}
		vs := s.v.CheckPerson(p)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathDestinationInfo, MissingRequiredField))
	})

	s.Run("typed record applies cross-field rules", func() {
		p := valid.Clone()
		exit := p.ProjectEntryDate.AddDate(0, 0, -1)
		p.ApplyExit(exit, models.DestinationInfo{Destination: models.DestinationOther})
		vs := s.v.CheckPerson(p)
		s.Require().Len(vs, 2)
		s.True(vs.Has(PathProjectExitDate, DateOrderViolation))
		s.True(vs.Has(PathDestinationSpecify, ConditionalFieldViolation))
	})

	s.Run("zero entry date is missing for typed records", func() {
		p := valid.Clone()
		p.ProjectEntryDate = time.Time{}
		vs := s.v.CheckPerson(p)
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathProjectEntryDate, MissingRequiredField))
	})
}

func (s *ValidatorSuite) TestHousehold() {
	const (
		a = "6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c0aa"
		b = "6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c0bb"
	)

	s.Run("accepts ordered members", func() {
		h, vs := s.v.ValidateHousehold(map[string]any{"members": []any{a, b}})
		s.Require().Empty(vs)
		s.Require().Len(h.Members, 2)
		s.Equal(a, h.Members[0].String())
		s.True(h.HouseholdID.IsNil())
	})

	s.Run("reports duplicates by position", func() {
		_, vs := s.v.ValidateHousehold(map[string]any{"members": []any{a, b, a}})
		s.Require().Len(vs, 1)
		s.True(vs.Has("members[2]", UniquenessViolation))
	})

	s.Run("reports malformed members", func() {
		_, vs := s.v.ValidateHousehold(map[string]any{"members": []any{a, "nope", 7}})
		s.Require().Len(vs, 2)
		s.True(vs.Has("members[1]", InvalidFormat))
		s.True(vs.Has("members[2]", TypeMismatch))
	})

	s.Run("members must be a list", func() {
		_, vs := s.v.ValidateHousehold(map[string]any{"members": a})
		s.Require().Len(vs, 1)
		s.True(vs.Has(PathMembers, TypeMismatch))
	})

	s.Run("household extensions", func() {
		h, vs := s.v.ValidateHousehold(map[string]any{"household_id": a, "site": "North"})
		s.Require().Empty(vs)
		s.Equal(a, h.HouseholdID.String())
		s.Equal(models.StringExt("North"), h.Extensions["site"])
	})
}

func (s *ValidatorSuite) TestEntity() {
	s.Run("CoC keys on coc_id", func() {
		e, vs := s.v.ValidateEntity(models.EntityCoC, map[string]any{
			"coc_id": "6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c0cc",
			"name":   "Metro CoC",
		})
		s.Require().Empty(vs)
		s.Equal("6f1c1f8e-8a8e-4b8f-9d55-0d1bb0a3c0cc", e.ID.String())
		s.Equal(models.StringExt("Metro CoC"), e.Extensions["name"])
	})

	s.Run("unknown collection is rejected", func() {
		_, vs := s.v.ValidateEntity(models.EntityKind("projects"), nil)
		s.Require().Len(vs, 1)
		s.Equal(InvalidEnumValue, vs[0].Kind)
	})
}
