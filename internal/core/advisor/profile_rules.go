package advisor

import (
	"slices"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

// RecommendForProfile picks at most one occupation branch, then adds the
// women's savings certificate for female profiles that did not already get
// the housewife scheme.
func RecommendForProfile(p domain.Profile) []domain.Scheme {
	schemes := occupationSchemes(p)

	if p.Gender == domain.GenderFemale && !slices.Contains(schemes, domain.SchemeMahilaSammanHome) {
		schemes = append(schemes, domain.SchemeMahilaSammanCertificate)
	}
	return schemes
}

func occupationSchemes(p domain.Profile) []domain.Scheme {
	schemes := make([]domain.Scheme, 0, 3)

	switch p.Occupation {
	case domain.OccupationFarmer:
		schemes = append(schemes, domain.SchemePMKisan)
		if p.Age < 40 {
			schemes = append(schemes, domain.SchemeFarmerCredit)
		}
	case domain.OccupationStudent:
		if p.Gender == domain.GenderFemale && p.Age <= 25 {
			schemes = append(schemes, domain.SchemeSukanyaForGirls)
		}
		schemes = append(schemes, domain.SchemeNationalScholarship)
	case domain.OccupationBusiness:
		schemes = append(schemes, domain.SchemeMSMELoan)
	case domain.OccupationRetired:
		// Retired profiles aged 60 or under get nothing from this axis.
		if p.Age > 60 {
			schemes = append(schemes, domain.SchemePension)
		}
	case domain.OccupationGovernmentEmployee:
		schemes = append(schemes, domain.SchemePostalLifeInsurance, domain.SchemeGeneralProvident)
	case domain.OccupationHousewife:
		schemes = append(schemes, domain.SchemeMahilaSammanHome)
	case domain.OccupationUnemployed:
		schemes = append(schemes, domain.SchemeJanDhan)
	case domain.OccupationPrivateEmployee:
		schemes = append(schemes, domain.SchemeTermInsurance)
	case domain.OccupationUnrecognized:
	}
	return schemes
}
