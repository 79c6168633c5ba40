package advisor

import "github.com/kirillkom/scheme-advisor/internal/core/domain"

type districtRule struct {
	scheme  domain.Scheme
	applies func(m domain.Metrics) bool
}

// districtRules are evaluated in order and are independent of each other.
var districtRules = []districtRule{
	{
		scheme: domain.SchemeSukanyaSamriddhi,
		applies: func(m domain.Metrics) bool {
			return m.FemalePercent > 50 && m.FemaleLiteracy > 60
		},
	},
	{
		scheme: domain.SchemeSeniorCitizenSavings,
		applies: func(m domain.Metrics) bool {
			return m.SeniorCitizenPercent > 15
		},
	},
	{
		scheme: domain.SchemeRuralPostalLife,
		applies: func(m domain.Metrics) bool {
			return m.FarmerPercent > 30 && m.RuralPercent > 60
		},
	},
	{
		scheme: domain.SchemeKisanVikasPatra,
		applies: func(m domain.Metrics) bool {
			return m.FarmerPercent > 40
		},
	},
	{
		scheme: domain.SchemeLowIncomeSavings,
		applies: func(m domain.Metrics) bool {
			return m.AvgIncomeGroup == domain.IncomeBelow90k || m.AvgIncomeGroup == domain.Income90kTo150k
		},
	},
	{
		scheme: domain.SchemeMahilaSammanDistrict,
		applies: func(m domain.Metrics) bool {
			return m.FemalePercent > 50 && m.AvgIncomeGroup == domain.IncomeBelow90k
		},
	},
}

// RecommendSchemes applies every district rule to m and returns the matching
// schemes in rule order. The result is never nil.
func RecommendSchemes(m domain.Metrics) []domain.Scheme {
	schemes := make([]domain.Scheme, 0, len(districtRules))
	for _, rule := range districtRules {
		if rule.applies(m) {
			schemes = append(schemes, rule.scheme)
		}
	}
	return schemes
}
