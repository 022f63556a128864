package validation

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"placemaker/internal/hmis/models"
)

// Person field paths.
const (
	PathPersonalID = "personal_id"

	PathNameInfo   = "name_info"
	PathFirstName  = "name_info.first_name"
	PathMiddleName = "name_info.middle_name"
	PathLastName   = "name_info.last_name"
	PathSuffix     = "name_info.suffix"
	PathNameType   = "name_info.name_type"

	PathSSNInfo = "ssn_info"
	PathSSN     = "ssn_info.ssn"
	PathSSNType = "ssn_info.ssn_type"

	PathDOBInfo = "dob_info"
	PathDOB     = "dob_info.dob"
	PathDOBType = "dob_info.dob_type"

	PathRace      = "race"
	PathEthnicity = "ethnicity"

	PathGenderInfo    = "gender_info"
	PathGender        = "gender_info.gender"
	PathGenderSpecify = "gender_info.gender_specify"

	PathVeteran = "veteran"

	PathDisablingConditionInfo = "disabling_condition_info"
	PathDisablingCondition     = "disabling_condition_info.disabling_condition"
	PathDisabilitySpecify      = "disabling_condition_info.disability_condition_specify"

	PathLivingSituationInfo    = "living_situation_info"
	PathResidenceType          = "living_situation_info.residence_type"
	PathResidenceSubtype       = "living_situation_info.residence_subtype"
	PathCurrentLengthOfStay    = "living_situation_info.current_length_of_stay"
	PathCurrentApproxStartDate = "living_situation_info.current_approx_start_date"
	PathTotalCount             = "living_situation_info.total_count"
	PathTotalMonths            = "living_situation_info.total_months"
	PathPriorResidenceType     = "living_situation_info.prior_residence_type"
	PathPriorResidenceSubtype  = "living_situation_info.prior_residence_subtype"
	PathPriorApproxStartDate   = "living_situation_info.prior_approx_start_date"

	PathProjectEntryDate = "project_entry_date"
	PathProjectExitDate  = "project_exit_date"

	PathDestinationInfo    = "destination_info"
	PathDestination        = "destination_info.destination"
	PathDestinationSpecify = "destination_info.destination_specify"

	PathHouseholdHeadRelationship = "household_head_relationship"
	PathCoCID                     = "coc_id"
)

// Household field paths.
const (
	PathHouseholdID = "household_id"
	PathMembers     = "members"
)

// FieldKind is the declared storage type of a field.
type FieldKind string

const (
	KindText      FieldKind = "text"
	KindChoice    FieldKind = "choice"
	KindDate      FieldKind = "date"
	KindInteger   FieldKind = "integer"
	KindUUID      FieldKind = "uuid"
	KindSection   FieldKind = "section"
	KindReference FieldKind = "reference"
	KindList      FieldKind = "list"
)

// UniqueScope restricts a uniqueness constraint to records where Field equals
// Equals. A nil scope on a unique field means unconditional uniqueness.
type UniqueScope struct {
	Field  string `json:"field" yaml:"field"`
	Equals string `json:"equals" yaml:"equals"`
}

// Constraint is static metadata about one field, published for storage
// collaborators building indexes and for callers rendering forms.
type Constraint struct {
	Path       string       `json:"path" yaml:"path"`
	Kind       FieldKind    `json:"kind" yaml:"kind"`
	Required   bool         `json:"required" yaml:"required"`
	Default    string       `json:"default,omitempty" yaml:"default,omitempty"`
	MaxLength  int          `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Choices    []string     `json:"choices,omitempty" yaml:"choices,omitempty"`
	Unique     bool         `json:"unique,omitempty" yaml:"unique,omitempty"`
	UniqueWhen *UniqueScope `json:"unique_when,omitempty" yaml:"unique_when,omitempty"`
	References string       `json:"references,omitempty" yaml:"references,omitempty"`
	Note       string       `json:"note,omitempty" yaml:"note,omitempty"`
}

// DefaultNow marks a date field filled with the validation clock when absent.
const DefaultNow = "now"

func choice[T ~string](path string, required bool, values []T) Constraint {
	return Constraint{Path: path, Kind: KindChoice, Required: required, Choices: models.ChoiceStrings(values)}
}

var personConstraints = []Constraint{
	{Path: PathPersonalID, Kind: KindUUID, Unique: true, Note: "assigned at registration when absent"},
	{Path: PathNameInfo, Kind: KindSection, Required: true},
	{Path: PathFirstName, Kind: KindText, Required: true},
	{Path: PathMiddleName, Kind: KindText},
	{Path: PathLastName, Kind: KindText},
	{Path: PathSuffix, Kind: KindText},
	choice(PathNameType, true, models.NameTypeValues()),
	{Path: PathSSNInfo, Kind: KindSection, Required: true},
	{
		Path: PathSSN, Kind: KindText, MaxLength: 9, Unique: true,
		UniqueWhen: &UniqueScope{Field: PathSSNType, Equals: string(models.SSNTypeFull)},
		Note:       "required and exactly 9 digits when ssn_type is Full SSN reported",
	},
	choice(PathSSNType, true, models.SSNTypeValues()),
	{Path: PathDOBInfo, Kind: KindSection, Required: true},
	{Path: PathDOB, Kind: KindDate, Required: true},
	choice(PathDOBType, true, models.DOBTypeValues()),
	choice(PathRace, true, models.RaceValues()),
	choice(PathEthnicity, true, models.EthnicityValues()),
	{Path: PathGenderInfo, Kind: KindSection, Required: true},
	choice(PathGender, true, models.GenderValues()),
	{Path: PathGenderSpecify, Kind: KindText, Note: "required only when gender is Other - please specify"},
	choice(PathVeteran, true, models.VeteranStatusValues()),
	{Path: PathDisablingConditionInfo, Kind: KindSection, Required: true},
	choice(PathDisablingCondition, true, models.DisablingConditionValues()),
	{Path: PathDisabilitySpecify, Kind: KindText, Note: "required when disabling_condition is Yes if that rule is enabled"},
	{Path: PathLivingSituationInfo, Kind: KindSection, Required: true},
	choice(PathResidenceType, true, models.ResidenceTypeValues()),
	choice(PathResidenceSubtype, true, models.ResidenceSubtypeValues()),
	choice(PathCurrentLengthOfStay, true, models.LengthOfStayValues()),
	{Path: PathCurrentApproxStartDate, Kind: KindDate, Required: true},
	choice(PathTotalCount, true, models.EpisodeCountValues()),
	{Path: PathTotalMonths, Kind: KindInteger, Required: true},
	choice(PathPriorResidenceType, false, models.ResidenceTypeValues()),
	choice(PathPriorResidenceSubtype, false, models.ResidenceSubtypeValues()),
	{Path: PathPriorApproxStartDate, Kind: KindDate, Note: "set together with prior_residence_type and prior_residence_subtype"},
	{Path: PathProjectEntryDate, Kind: KindDate, Required: true, Default: DefaultNow},
	{Path: PathProjectExitDate, Kind: KindDate, Note: "not before project_entry_date"},
	{Path: PathDestinationInfo, Kind: KindSection, Required: true},
	choice(PathDestination, true, models.DestinationValues()),
	{Path: PathDestinationSpecify, Kind: KindText, Note: "required only when destination is Other - please specify"},
	choice(PathHouseholdHeadRelationship, true, models.HouseholdRelationshipValues()),
	{Path: PathCoCID, Kind: KindReference, References: string(models.EntityCoC)},
}

var householdConstraints = []Constraint{
	{Path: PathHouseholdID, Kind: KindUUID, Unique: true, Note: "assigned when absent"},
	{Path: PathMembers, Kind: KindList, References: "persons", Note: "ordered, no duplicates"},
}

// PersonConstraints returns the Person field metadata in declaration order.
func PersonConstraints() []Constraint {
	return cloneConstraints(personConstraints)
}

// HouseholdConstraints returns the Household field metadata.
func HouseholdConstraints() []Constraint {
	return cloneConstraints(householdConstraints)
}

func cloneConstraints(in []Constraint) []Constraint {
	out := make([]Constraint, len(in))
	for i, c := range in {
		c.Choices = append([]string(nil), c.Choices...)
		if c.UniqueWhen != nil {
			scope := *c.UniqueWhen
			c.UniqueWhen = &scope
		}
		out[i] = c
	}
	return out
}

// fieldOrder ranks each declared path so violations come back in declaration
// order regardless of which pass found them.
var fieldOrder = func() map[string]int {
	m := make(map[string]int, len(personConstraints)+len(householdConstraints))
	for i, c := range personConstraints {
		m[c.Path] = i
	}
	for i, c := range householdConstraints {
		m[c.Path] = i
	}
	return m
}()

// ConstraintDocument is the exported shape of the schema metadata.
type ConstraintDocument struct {
	Person    []Constraint `yaml:"person"`
	Household []Constraint `yaml:"household"`
}

// Constraints returns the static field metadata for every record type.
func Constraints() ConstraintDocument {
	return ConstraintDocument{Person: PersonConstraints(), Household: HouseholdConstraints()}
}

// MarshalConstraintsYAML renders all constraints for storage collaborators.
func MarshalConstraintsYAML() ([]byte, error) {
	out, err := yaml.Marshal(Constraints())
	if err != nil {
		return nil, fmt.Errorf("marshal constraints: %w", err)
	}
	return out, nil
}

// SSNIndexName is the name of the partial unique index on full SSNs.
func SSNIndexName(table string) string {
	return table + "_full_ssn_key"
}

// SSNIndexDDL renders the partial unique index that enforces SSN uniqueness
// only among records whose ssn_type is Full SSN reported. The table must have
// ssn and ssn_type columns.
func SSNIndexDDL(table string) string {
	scope := personConstraintAt(PathSSN).UniqueWhen
	return fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (ssn) WHERE ssn_type = '%s'",
		SSNIndexName(table), table, strings.ReplaceAll(scope.Equals, "'", "''"),
	)
}

func personConstraintAt(path string) Constraint {
	for _, c := range personConstraints {
		if c.Path == path {
			return c
		}
	}
	return Constraint{}
}
