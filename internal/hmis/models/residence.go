package models

// residenceGroups lists the subtypes each residence type admits, following the
// grouping of the living situation choice list. Unknown and refused subtypes
// are admitted by every type.
var residenceGroups = map[ResidenceType][]ResidenceSubtype{
	ResidenceLiterallyHomeless: {
		SubtypePlaceNotMeantForHabitation,
		SubtypeEmergencyShelter,
		SubtypeShelterVoucher,
		SubtypeSafeHaven,
	},
	ResidenceInstitutional: {
		SubtypeFosterCare,
		SubtypeHospital,
		SubtypeLongTermCare,
		SubtypePsychiatric,
		SubtypeSubstanceAbuse,
	},
	ResidenceTransitionalPermanent: {
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
	},
}

// Admits reports whether sub is a valid refinement of t.
func (t ResidenceType) Admits(sub ResidenceSubtype) bool {
	if sub == SubtypeClientDoesntKnow || sub == SubtypeClientRefused {
		return t.IsValid()
	}
	for _, s := range residenceGroups[t] {
		if s == sub {
			return true
		}
	}
	return false
}

// Subtypes returns the subtypes specific to t, excluding unknown and refused.
func (t ResidenceType) Subtypes() []ResidenceSubtype {
	return append([]ResidenceSubtype(nil), residenceGroups[t]...)
}
