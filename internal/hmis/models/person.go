package models

import (
	"time"

	id "placemaker/pkg/domain"
)

// Person is the HMIS client record built from the Universal Data Elements.
//
// Invariants (enforced by the validation package, not by construction):
//   - every required section and categorical field is present and in domain
//   - a Full SSN reported record carries a 9 digit SSN, unique among full SSNs
//   - ProjectExitDate, when set, is not before ProjectEntryDate
//   - specify texts are present only when their category asks for them
//
// Embedded sections are owned values; they have no identity of their own.
type Person struct {
	PersonalID                id.PersonalID          `json:"personal_id"`
	NameInfo                  NameInfo               `json:"name_info"`
	SSNInfo                   SSNInfo                `json:"ssn_info"`
	DOBInfo                   DOBInfo                `json:"dob_info"`
	Race                      Race                   `json:"race"`
	Ethnicity                 Ethnicity              `json:"ethnicity"`
	GenderInfo                GenderInfo             `json:"gender_info"`
	Veteran                   VeteranStatus          `json:"veteran"`
	DisablingConditionInfo    DisablingConditionInfo `json:"disabling_condition_info"`
	LivingSituationInfo       LivingSituationInfo    `json:"living_situation_info"`
	ProjectEntryDate          time.Time              `json:"project_entry_date"`
	ProjectExitDate           *time.Time             `json:"project_exit_date,omitempty"`
	DestinationInfo           DestinationInfo        `json:"destination_info"`
	HouseholdHeadRelationship HouseholdRelationship  `json:"household_head_relationship"`
	CoCID                     *id.CoCID              `json:"coc_id,omitempty"`
	Extensions                Extensions             `json:"extensions,omitempty"`
}

// NameInfo is UDE 3.1.
type NameInfo struct {
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Suffix     string     `json:"suffix,omitempty"`
	NameType   NameType   `json:"name_type"`
	Extensions Extensions `json:"extensions,omitempty"`
}

// SSNInfo is UDE 3.2. SSN is empty when not collected.
type SSNInfo struct {
	SSN        string     `json:"ssn,omitempty"`
	SSNType    SSNType    `json:"ssn_type"`
	Extensions Extensions `json:"extensions,omitempty"`
}

// DOBInfo is UDE 3.3.
type DOBInfo struct {
	DOB        time.Time  `json:"dob"`
	DOBType    DOBType    `json:"dob_type"`
	Extensions Extensions `json:"extensions,omitempty"`
}

// GenderInfo is UDE 3.6.
type GenderInfo struct {
	Gender        Gender     `json:"gender"`
	GenderSpecify string     `json:"gender_specify,omitempty"`
	Extensions    Extensions `json:"extensions,omitempty"`
}

// DisablingConditionInfo is UDE 3.8.
type DisablingConditionInfo struct {
	DisablingCondition         DisablingCondition `json:"disabling_condition"`
	DisabilityConditionSpecify string             `json:"disability_condition_specify,omitempty"`
	Extensions                 Extensions         `json:"extensions,omitempty"`
}

// LivingSituationInfo captures the residence prior to project entry and the
// person's homelessness history. The prior residence fields travel together:
// all three are set or none is.
type LivingSituationInfo struct {
	ResidenceType          ResidenceType    `json:"residence_type"`
	ResidenceSubtype       ResidenceSubtype `json:"residence_subtype"`
	CurrentLengthOfStay    LengthOfStay     `json:"current_length_of_stay"`
	CurrentApproxStartDate time.Time        `json:"current_approx_start_date"`
	TotalCount             EpisodeCount     `json:"total_count"`
	TotalMonths            int              `json:"total_months"`
	PriorResidenceType     ResidenceType    `json:"prior_residence_type,omitempty"`
	PriorResidenceSubtype  ResidenceSubtype `json:"prior_residence_subtype,omitempty"`
	PriorApproxStartDate   *time.Time       `json:"prior_approx_start_date,omitempty"`
	Extensions             Extensions       `json:"extensions,omitempty"`
}

// DestinationInfo is UDE 3.12.
type DestinationInfo struct {
	Destination        Destination `json:"destination"`
	DestinationSpecify string      `json:"destination_specify,omitempty"`
	Extensions         Extensions  `json:"extensions,omitempty"`
}

// HasFullSSN reports whether the SSN participates in uniqueness.
func (p *Person) HasFullSSN() bool {
	return p.SSNInfo.SSNType == SSNTypeFull && p.SSNInfo.SSN != ""
}

// FullSSN returns the SSN when it is subject to uniqueness, or "".
func (p *Person) FullSSN() string {
	if !p.HasFullSSN() {
		return ""
	}
	return p.SSNInfo.SSN
}

func (p *Person) IsExited() bool {
	return p.ProjectExitDate != nil
}

func (p *Person) IsHeadOfHousehold() bool {
	return p.HouseholdHeadRelationship == RelationshipSelf
}

// ApplyExit records program exit. Call validation afterwards; the exit date is
// not checked against the entry date here.
func (p *Person) ApplyExit(exitDate time.Time, destination DestinationInfo) {
	p.ProjectExitDate = &exitDate
	p.DestinationInfo = destination
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	if p.ProjectExitDate != nil {
		t := *p.ProjectExitDate
		c.ProjectExitDate = &t
	}
	if p.CoCID != nil {
		coc := *p.CoCID
		c.CoCID = &coc
	}
	if p.LivingSituationInfo.PriorApproxStartDate != nil {
		t := *p.LivingSituationInfo.PriorApproxStartDate
		c.LivingSituationInfo.PriorApproxStartDate = &t
	}
	c.Extensions = p.Extensions.Clone()
	c.NameInfo.Extensions = p.NameInfo.Extensions.Clone()
	c.SSNInfo.Extensions = p.SSNInfo.Extensions.Clone()
	c.DOBInfo.Extensions = p.DOBInfo.Extensions.Clone()
	c.GenderInfo.Extensions = p.GenderInfo.Extensions.Clone()
	c.DisablingConditionInfo.Extensions = p.DisablingConditionInfo.Extensions.Clone()
	c.LivingSituationInfo.Extensions = p.LivingSituationInfo.Extensions.Clone()
	c.DestinationInfo.Extensions = p.DestinationInfo.Extensions.Clone()
	return &c
}
