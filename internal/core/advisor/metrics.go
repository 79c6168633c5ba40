// Package advisor holds the pure recommendation engines: district metrics,
// district scheme rules and profile scheme rules. Nothing here performs I/O or
// keeps state, so every function is safe for concurrent use.
package advisor

import (
	"math"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

// ComputeMetrics derives percentages and the dominant income band for one
// district. A zero denominator yields 0 rather than NaN or Inf.
func ComputeMetrics(r domain.DistrictRecord) domain.Metrics {
	totalFarmers := r.CultivatorWorkers + r.AgriculturalWorkers
	distribution := incomeDistribution(r)

	return domain.Metrics{
		FemalePercent:        percent(r.Female, r.Population),
		MalePercent:          percent(r.Male, r.Population),
		FemaleLiteracy:       percent(r.FemaleLiterate, r.Female),
		MaleLiteracy:         percent(r.MaleLiterate, r.Male),
		FarmerPercent:        percent(totalFarmers, r.Workers),
		RuralPercent:         percent(r.RuralHouseholds, r.Households),
		SeniorCitizenPercent: percent(r.AgeGroup50Plus+r.AgeNotStated, r.Population),
		AvgIncomeGroup:       dominantBand(distribution),
		IncomeDistribution:   distribution,
	}
}

func incomeDistribution(r domain.DistrictRecord) domain.IncomeDistribution {
	return domain.IncomeDistribution{
		{Band: domain.IncomeBelow90k, Population: r.IncomeBelow45k + r.Income45kTo90k},
		{Band: domain.Income90kTo150k, Population: r.Income90kTo150k},
		{Band: domain.Income150kTo330k, Population: r.Income150kTo330k},
		{Band: domain.IncomeAbove330k, Population: r.IncomeAbove545k},
	}
}

// dominantBand returns the band with the largest population. Only a strictly
// larger count replaces the current pick, so ties go to the lower band.
func dominantBand(d domain.IncomeDistribution) domain.IncomeBand {
	best := d[0]
	for _, entry := range d[1:] {
		if entry.Population > best.Population {
			best = entry
		}
	}
	return best.Band
}

func percent(numerator, denominator int64) float64 {
	if denominator == 0 {
		return 0
	}
	return round2(float64(numerator) / float64(denominator) * 100)
}

// round2 rounds half to even at two decimals.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
