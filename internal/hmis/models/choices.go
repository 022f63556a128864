package models

import "slices"

// NameType records the quality of the reported name (UDE 3.1).
type NameType string

const (
	NameTypeFull             NameType = "Full name reported"
	NameTypePartial          NameType = "Partial, street name, or code name reported"
	NameTypeClientDoesntKnow NameType = "Client doesn't know"
	NameTypeClientRefused    NameType = "Client refused"
)

var nameTypeValues = []NameType{
	NameTypeFull,
	NameTypePartial,
	NameTypeClientDoesntKnow,
	NameTypeClientRefused,
}

// NameTypeValues returns the declared values in order.
func NameTypeValues() []NameType { return slices.Clone(nameTypeValues) }

func ParseNameType(s string) (NameType, error) {
	return parseChoice(s, nameTypeValues, "name_type")
}

func (v NameType) IsValid() bool  { return slices.Contains(nameTypeValues, v) }
func (v NameType) String() string { return string(v) }

// SSNType records the quality of the reported SSN (UDE 3.2). Only
// SSNTypeFull makes the SSN subject to uniqueness.
type SSNType string

const (
	SSNTypeFull             SSNType = "Full SSN reported"
	SSNTypePartial          SSNType = "Approximate or partial SSN reported"
	SSNTypeClientDoesntKnow SSNType = "Client doesn't know"
	SSNTypeClientRefused    SSNType = "Client refused"
)

var ssnTypeValues = []SSNType{
	SSNTypeFull,
	SSNTypePartial,
	SSNTypeClientDoesntKnow,
	SSNTypeClientRefused,
}

// SSNTypeValues returns the declared values in order.
func SSNTypeValues() []SSNType { return slices.Clone(ssnTypeValues) }

func ParseSSNType(s string) (SSNType, error) {
	return parseChoice(s, ssnTypeValues, "ssn_type")
}

func (v SSNType) IsValid() bool  { return slices.Contains(ssnTypeValues, v) }
func (v SSNType) String() string { return string(v) }

// DOBType records the quality of the reported date of birth (UDE 3.3).
type DOBType string

const (
	DOBTypeFull             DOBType = "Full DOB reported"
	DOBTypePartial          DOBType = "Approximate or partial DOB reported"
	DOBTypeClientDoesntKnow DOBType = "Client doesn't know"
	DOBTypeClientRefused    DOBType = "Client refused"
)

var dobTypeValues = []DOBType{
	DOBTypeFull,
	DOBTypePartial,
	DOBTypeClientDoesntKnow,
	DOBTypeClientRefused,
}

// DOBTypeValues returns the declared values in order.
func DOBTypeValues() []DOBType { return slices.Clone(dobTypeValues) }

func ParseDOBType(s string) (DOBType, error) {
	return parseChoice(s, dobTypeValues, "dob_type")
}

func (v DOBType) IsValid() bool  { return slices.Contains(dobTypeValues, v) }
func (v DOBType) String() string { return string(v) }

// Race is modeled single-select (UDE 3.4).
type Race string

const (
	RaceAmericanIndian   Race = "American Indian or Alaska Native"
	RaceAsian            Race = "Asian"
	RaceBlack            Race = "Black or African American"
	RaceNativeHawaiian   Race = "Native Hawaiian or Other Pacific Islander"
	RaceWhite            Race = "White"
	RaceClientDoesntKnow Race = "Client doesn't know"
	RaceClientRefused    Race = "Client refused"
)

var raceValues = []Race{
	RaceAmericanIndian,
	RaceAsian,
	RaceBlack,
	RaceNativeHawaiian,
	RaceWhite,
	RaceClientDoesntKnow,
	RaceClientRefused,
}

// RaceValues returns the declared values in order.
func RaceValues() []Race { return slices.Clone(raceValues) }

func ParseRace(s string) (Race, error) {
	return parseChoice(s, raceValues, "race")
}

func (v Race) IsValid() bool  { return slices.Contains(raceValues, v) }
func (v Race) String() string { return string(v) }

type Ethnicity string

const (
	EthnicityNonHispanic      Ethnicity = "Non-Hispanic/Non-Latino"
	EthnicityHispanic         Ethnicity = "Hispanic/Latino"
	EthnicityClientDoesntKnow Ethnicity = "Client doesn't know"
	EthnicityClientRefused    Ethnicity = "Client refused"
)

var ethnicityValues = []Ethnicity{
	EthnicityNonHispanic,
	EthnicityHispanic,
	EthnicityClientDoesntKnow,
	EthnicityClientRefused,
}

// EthnicityValues returns the declared values in order.
func EthnicityValues() []Ethnicity { return slices.Clone(ethnicityValues) }

func ParseEthnicity(s string) (Ethnicity, error) {
	return parseChoice(s, ethnicityValues, "ethnicity")
}

func (v Ethnicity) IsValid() bool  { return slices.Contains(ethnicityValues, v) }
func (v Ethnicity) String() string { return string(v) }

// Gender (UDE 3.6). GenderOther requires a gender_specify text.
type Gender string

const (
	GenderFemale            Gender = "Female"
	GenderMale              Gender = "Male"
	GenderTransMaleToFemale Gender = "Transgender male to female"
	GenderTransFemaleToMale Gender = "Transgender female to male"
	GenderNonConforming     Gender = "Doesn't identify as male, female or transgender"
	GenderClientDoesntKnow  Gender = "Client doesn't know"
	GenderClientRefused     Gender = "Client refused"
	GenderOther             Gender = "Other - please specify"
)

var genderValues = []Gender{
	GenderFemale,
	GenderMale,
	GenderTransMaleToFemale,
	GenderTransFemaleToMale,
	GenderNonConforming,
	GenderClientDoesntKnow,
	GenderClientRefused,
	GenderOther,
}

// GenderValues returns the declared values in order.
func GenderValues() []Gender { return slices.Clone(genderValues) }

func ParseGender(s string) (Gender, error) {
	return parseChoice(s, genderValues, "gender")
}

func (v Gender) IsValid() bool  { return slices.Contains(genderValues, v) }
func (v Gender) String() string { return string(v) }

type VeteranStatus string

const (
	VeteranNo               VeteranStatus = "No"
	VeteranYes              VeteranStatus = "Yes"
	VeteranClientDoesntKnow VeteranStatus = "Client doesn't know"
	VeteranClientRefused    VeteranStatus = "Client refused"
)

var veteranStatusValues = []VeteranStatus{
	VeteranNo,
	VeteranYes,
	VeteranClientDoesntKnow,
	VeteranClientRefused,
}

// VeteranStatusValues returns the declared values in order.
func VeteranStatusValues() []VeteranStatus { return slices.Clone(veteranStatusValues) }

func ParseVeteranStatus(s string) (VeteranStatus, error) {
	return parseChoice(s, veteranStatusValues, "veteran")
}

func (v VeteranStatus) IsValid() bool  { return slices.Contains(veteranStatusValues, v) }
func (v VeteranStatus) String() string { return string(v) }

type DisablingCondition string

const (
	DisablingConditionNo               DisablingCondition = "No"
	DisablingConditionYes              DisablingCondition = "Yes"
	DisablingConditionClientDoesntKnow DisablingCondition = "Client doesn't know"
	DisablingConditionClientRefused    DisablingCondition = "Client refused"
)

var disablingConditionValues = []DisablingCondition{
	DisablingConditionNo,
	DisablingConditionYes,
	DisablingConditionClientDoesntKnow,
	DisablingConditionClientRefused,
}

// DisablingConditionValues returns the declared values in order.
func DisablingConditionValues() []DisablingCondition { return slices.Clone(disablingConditionValues) }

func ParseDisablingCondition(s string) (DisablingCondition, error) {
	return parseChoice(s, disablingConditionValues, "disabling_condition")
}

func (v DisablingCondition) IsValid() bool  { return slices.Contains(disablingConditionValues, v) }
func (v DisablingCondition) String() string { return string(v) }

// ResidenceType is the broad category of a living situation.
type ResidenceType string

const (
	ResidenceLiterallyHomeless     ResidenceType = "Literally Homeless"
	ResidenceInstitutional         ResidenceType = "Institutional Situation"
	ResidenceTransitionalPermanent ResidenceType = "Transitional & Permanent Housing Situation"
)

var residenceTypeValues = []ResidenceType{
	ResidenceLiterallyHomeless,
	ResidenceInstitutional,
	ResidenceTransitionalPermanent,
}

// ResidenceTypeValues returns the declared values in order.
func ResidenceTypeValues() []ResidenceType { return slices.Clone(residenceTypeValues) }

func ParseResidenceType(s string) (ResidenceType, error) {
	return parseChoice(s, residenceTypeValues, "residence_type")
}

func (v ResidenceType) IsValid() bool  { return slices.Contains(residenceTypeValues, v) }
func (v ResidenceType) String() string { return string(v) }

// ResidenceSubtype narrows a ResidenceType. See ResidenceType.Admits.
type ResidenceSubtype string

const (
	SubtypePlaceNotMeantForHabitation ResidenceSubtype = "Place not meant for habitation (e.g. a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"
	SubtypeEmergencyShelter           ResidenceSubtype = "Emergency shelter, including hotel or motel paid for with emergency"
	SubtypeShelterVoucher             ResidenceSubtype = "Shelter Voucher"
	SubtypeSafeHaven                  ResidenceSubtype = "Safe Haven"
	SubtypeFosterCare                 ResidenceSubtype = "Foster care home or foster care group home"
	SubtypeHospital                   ResidenceSubtype = "Hospital or other residential non-psychiatric medical facility"
	SubtypeLongTermCare               ResidenceSubtype = "Long-term care facility or nursing home"
	SubtypePsychiatric                ResidenceSubtype = "Psychiatric hospital or other psychiatric facility"
	SubtypeSubstanceAbuse             ResidenceSubtype = "Substance abuse treatment facility or detox center"
	SubtypeHotelWithoutVoucher        ResidenceSubtype = "Hotel or motel paid for without emergency shelter voucher"
	SubtypeOwnedNoSubsidy             ResidenceSubtype = "Owned by client, no ongoing housing subsidy"
	SubtypeOwnedWithSubsidy           ResidenceSubtype = "Owned by client, with ongoing housing subsidy"
	SubtypePermanentHousing           ResidenceSubtype = "Permanent housing for formerly homeless persons (such as: a CoC project; HUD legacy programs; or HOPWA PH)"
	SubtypeRentalNoSubsidy            ResidenceSubtype = "Rental by client, no ongoing housing subsidy"
	SubtypeRentalVASH                 ResidenceSubtype = "Rental by client, with VASH subsidy"
	SubtypeRentalGPDTIP               ResidenceSubtype = "Rental by client, with GPD TIP subsidy"
	SubtypeRentalOtherSubsidy         ResidenceSubtype = "Rental by client, with other ongoing housing subsidy"
	SubtypeResidentialProject         ResidenceSubtype = "Residential project or halfway house with no homeless criteria"
	SubtypeFamilyMember               ResidenceSubtype = "Staying or living in a family member's room, apartment or house"
	SubtypeFriend                     ResidenceSubtype = "Staying or living in a friend's room, apartment or house"
	SubtypeTransitionalHousing        ResidenceSubtype = "Transitional housing for homeless persons (including homeless youth)"
	SubtypeClientDoesntKnow           ResidenceSubtype = "Client doesn't know"
	SubtypeClientRefused              ResidenceSubtype = "Client refused"
)

var residenceSubtypeValues = []ResidenceSubtype{
	SubtypePlaceNotMeantForHabitation,
	SubtypeEmergencyShelter,
	SubtypeShelterVoucher,
	SubtypeSafeHaven,
	SubtypeFosterCare,
	SubtypeHospital,
	SubtypeLongTermCare,
	SubtypePsychiatric,
	SubtypeSubstanceAbuse,
	SubtypeHotelWithoutVoucher,
	SubtypeOwnedNoSubsidy,
	SubtypeOwnedWithSubsidy,
	SubtypePermanentHousing,
	SubtypeRentalNoSubsidy,
	SubtypeRentalVASH,
	SubtypeRentalGPDTIP,
	SubtypeRentalOtherSubsidy,
	SubtypeResidentialProject,
	SubtypeFamilyMember,
	SubtypeFriend,
	SubtypeTransitionalHousing,
	SubtypeClientDoesntKnow,
	SubtypeClientRefused,
}

// ResidenceSubtypeValues returns the declared values in order.
func ResidenceSubtypeValues() []ResidenceSubtype { return slices.Clone(residenceSubtypeValues) }

func ParseResidenceSubtype(s string) (ResidenceSubtype, error) {
	return parseChoice(s, residenceSubtypeValues, "residence_subtype")
}

func (v ResidenceSubtype) IsValid() bool  { return slices.Contains(residenceSubtypeValues, v) }
func (v ResidenceSubtype) String() string { return string(v) }

type LengthOfStay string

const (
	StayOneNightOrLess    LengthOfStay = "One night or less"
	StayTwoToSixNights    LengthOfStay = "Two to six nights"
	StayOneWeekToOneMonth LengthOfStay = "One week or more, but less than one month"
	StayOneMonthTo90Days  LengthOfStay = "One month or more, but less than 90 days"
	Stay90DaysToOneYear   LengthOfStay = "90 days or more, but less than one year"
	StayOneYearOrLonger   LengthOfStay = "One year or longer"
	StayClientDoesntKnow  LengthOfStay = "Client doesn't know"
	StayClientRefused     LengthOfStay = "Client refused"
)

var lengthOfStayValues = []LengthOfStay{
	StayOneNightOrLess,
	StayTwoToSixNights,
	StayOneWeekToOneMonth,
	StayOneMonthTo90Days,
	Stay90DaysToOneYear,
	StayOneYearOrLonger,
	StayClientDoesntKnow,
	StayClientRefused,
}

// LengthOfStayValues returns the declared values in order.
func LengthOfStayValues() []LengthOfStay { return slices.Clone(lengthOfStayValues) }

func ParseLengthOfStay(s string) (LengthOfStay, error) {
	return parseChoice(s, lengthOfStayValues, "current_length_of_stay")
}

func (v LengthOfStay) IsValid() bool  { return slices.Contains(lengthOfStayValues, v) }
func (v LengthOfStay) String() string { return string(v) }

// EpisodeCount is the number of times the person has been homeless.
type EpisodeCount string

const (
	EpisodesOne              EpisodeCount = "One Time"
	EpisodesTwo              EpisodeCount = "Two times"
	EpisodesThree            EpisodeCount = "Three times"
	EpisodesFourOrMore       EpisodeCount = "Four or more times"
	EpisodesClientDoesntKnow EpisodeCount = "Client doesn't know"
	EpisodesClientRefused    EpisodeCount = "Client refused"
)

var episodeCountValues = []EpisodeCount{
	EpisodesOne,
	EpisodesTwo,
	EpisodesThree,
	EpisodesFourOrMore,
	EpisodesClientDoesntKnow,
	EpisodesClientRefused,
}

// EpisodeCountValues returns the declared values in order.
func EpisodeCountValues() []EpisodeCount { return slices.Clone(episodeCountValues) }

func ParseEpisodeCount(s string) (EpisodeCount, error) {
	return parseChoice(s, episodeCountValues, "total_count")
}

func (v EpisodeCount) IsValid() bool  { return slices.Contains(episodeCountValues, v) }
func (v EpisodeCount) String() string { return string(v) }

// Destination is where the person went at project exit (UDE 3.12).
// DestinationOther requires a destination_specify text.
type Destination string

const (
	DestinationDeceased                   Destination = "Deceased"
	DestinationEmergencyShelter           Destination = "Emergency shelter, including hotel or motel paid for with emergency shelter voucher"
	DestinationFosterCare                 Destination = "Foster care home or foster care group home"
	DestinationHospital                   Destination = "Hospital or other residential non-psychiatric medical facility"
	DestinationHotelWithoutVoucher        Destination = "Hotel or motel paid for without emergency shelter voucher"
	DestinationJail                       Destination = "Jail, prison or juvenile detention facility"
	DestinationLongTermCare               Destination = "Long-term care facility or nursing home"
	DestinationHOPWAPH                    Destination = "Moved from one HOPWA funded project to HOPWA PH"
	DestinationHOPWATH                    Destination = "Moved from one HOPWA funded project to HOPWA TH"
	DestinationOwnedNoSubsidy             Destination = "Owned by client, no ongoing housing subsidy"
	DestinationOwnedWithSubsidy           Destination = "Owned by client, with ongoing housing subsidy"
	DestinationPermanentHousing           Destination = "Permanent housing for formerly homeless persons (such as: CoC project; or HUD legacy programs; or HOPWA PH)"
	DestinationPlaceNotMeantForHabitation Destination = "Place not meant for habitation (e.g., a vehicle, an abandoned building, bus/train/subway station/airport or anywhere outside)"
	DestinationPsychiatric                Destination = "Psychiatric hospital or other psychiatric facility"
	DestinationRentalNoSubsidy            Destination = "Rental by client, no ongoing housing subsidy"
	DestinationRentalVASH                 Destination = "Rental by client, with VASH housing subsidy"
	DestinationRentalGPDTIP               Destination = "Rental by client, with GPD TIP housing subsidy"
	DestinationRentalOtherSubsidy         Destination = "Rental by client, with other ongoing housing subsidy"
	DestinationResidentialProject         Destination = "Residential project or halfway house with no homeless criteria"
	DestinationSafeHaven                  Destination = "Safe Haven"
	DestinationFamilyPermanent            Destination = "Staying or living with family, permanent tenure"
	DestinationFamilyTemporary            Destination = "Staying or living with family, temporary tenure (e.g., room, apartment or house)"
	DestinationFriendsPermanent           Destination = "Staying or living with friends, permanent tenure"
	DestinationFriendsTemporary           Destination = "Staying or living with friends, temporary tenure (e.g., room apartment or house)"
	DestinationSubstanceAbuse             Destination = "Substance abuse treatment facility or detox center"
	DestinationTransitionalHousing        Destination = "Transitional housing for homeless persons (including homeless youth)"
	DestinationOther                      Destination = "Other - please specify"
	DestinationNoExitInterview            Destination = "No exit interview completed"
	DestinationClientDoesntKnow           Destination = "Client doesn't know"
	DestinationClientRefused              Destination = "Client refused"
)

var destinationValues = []Destination{
	DestinationDeceased,
	DestinationEmergencyShelter,
	DestinationFosterCare,
	DestinationHospital,
	DestinationHotelWithoutVoucher,
	DestinationJail,
	DestinationLongTermCare,
	DestinationHOPWAPH,
	DestinationHOPWATH,
	DestinationOwnedNoSubsidy,
	DestinationOwnedWithSubsidy,
	DestinationPermanentHousing,
	DestinationPlaceNotMeantForHabitation,
	DestinationPsychiatric,
	DestinationRentalNoSubsidy,
	DestinationRentalVASH,
	DestinationRentalGPDTIP,
	DestinationRentalOtherSubsidy,
	DestinationResidentialProject,
	DestinationSafeHaven,
	DestinationFamilyPermanent,
	DestinationFamilyTemporary,
	DestinationFriendsPermanent,
	DestinationFriendsTemporary,
	DestinationSubstanceAbuse,
	DestinationTransitionalHousing,
	DestinationOther,
	DestinationNoExitInterview,
	DestinationClientDoesntKnow,
	DestinationClientRefused,
}

// DestinationValues returns the declared values in order.
func DestinationValues() []Destination { return slices.Clone(destinationValues) }

func ParseDestination(s string) (Destination, error) {
	return parseChoice(s, destinationValues, "destination")
}

func (v Destination) IsValid() bool  { return slices.Contains(destinationValues, v) }
func (v Destination) String() string { return string(v) }

// HouseholdRelationship is the person's relation to their head of household.
type HouseholdRelationship string

const (
	RelationshipSelf          HouseholdRelationship = "Self (head of household)"
	RelationshipChild         HouseholdRelationship = "Head of household's child"
	RelationshipSpouse        HouseholdRelationship = "Head of household's spouse or partner"
	RelationshipOtherRelation HouseholdRelationship = "Head of household's other relation member (other relation to head of household)"
	RelationshipNonRelation   HouseholdRelationship = "Other: non-relation member"
)

var householdRelationshipValues = []HouseholdRelationship{
	RelationshipSelf,
	RelationshipChild,
	RelationshipSpouse,
	RelationshipOtherRelation,
	RelationshipNonRelation,
}

// HouseholdRelationshipValues returns the declared values in order.
func HouseholdRelationshipValues() []HouseholdRelationship {
	return slices.Clone(householdRelationshipValues)
}

func ParseHouseholdRelationship(s string) (HouseholdRelationship, error) {
	return parseChoice(s, householdRelationshipValues, "household_head_relationship")
}

func (v HouseholdRelationship) IsValid() bool  { return slices.Contains(householdRelationshipValues, v) }
func (v HouseholdRelationship) String() string { return string(v) }
