package domain

import (
	"bytes"
	"encoding/json"
)

// DistrictRecord is one census row. Counts are copied from the workbook as-is;
// the loader rejects negative values but does not cross-check totals.
type DistrictRecord struct {
	Name string

	Population          int64
	Male                int64
	Female              int64
	MaleLiterate        int64
	FemaleLiterate      int64
	Workers             int64
	CultivatorWorkers   int64
	AgriculturalWorkers int64
	RuralHouseholds     int64
	Households          int64
	AgeGroup50Plus      int64
	AgeNotStated        int64

	IncomeBelow45k   int64
	Income45kTo90k   int64
	Income90kTo150k  int64
	Income150kTo330k int64
	// IncomeAbove545k feeds the ">₹3,30,000" band. The source column is named
	// after a 5,45,000 threshold while the band label says 3,30,000; the mapping
	// is kept until the dataset owners confirm which one is right.
	IncomeAbove545k int64
}

type IncomeBand int

const (
	IncomeBelow90k IncomeBand = iota
	Income90kTo150k
	Income150kTo330k
	IncomeAbove330k
)

// IncomeBands lists the bands lowest to highest. Classification ties resolve
// to the earliest entry.
var IncomeBands = [...]IncomeBand{IncomeBelow90k, Income90kTo150k, Income150kTo330k, IncomeAbove330k}

func (b IncomeBand) Label() string {
	switch b {
	case IncomeBelow90k:
		return "<₹90,000"
	case Income90kTo150k:
		return "₹90,000 - ₹1,50,000"
	case Income150kTo330k:
		return "₹1,50,000 - ₹3,30,000"
	case IncomeAbove330k:
		return ">₹3,30,000"
	default:
		return "unknown"
	}
}

func (b IncomeBand) String() string {
	return b.Label()
}

func (b IncomeBand) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Label())
}

type IncomeBandCount struct {
	Band       IncomeBand
	Population int64
}

// IncomeDistribution keeps band order when encoded as a JSON object.
type IncomeDistribution []IncomeBandCount

func (d IncomeDistribution) Count(band IncomeBand) int64 {
	for _, entry := range d {
		if entry.Band == band {
			return entry.Population
		}
	}
	return 0
}

func (d IncomeDistribution) Total() int64 {
	var total int64
	for _, entry := range d {
		total += entry.Population
	}
	return total
}

func (d IncomeDistribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Band.Label())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(entry.Population)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type Metrics struct {
	FemalePercent        float64            `json:"female_percent"`
	MalePercent          float64            `json:"male_percent"`
	FemaleLiteracy       float64            `json:"female_literacy"`
	MaleLiteracy         float64            `json:"male_literacy"`
	FarmerPercent        float64            `json:"farmer_percent"`
	RuralPercent         float64            `json:"rural_percent"`
	SeniorCitizenPercent float64            `json:"senior_citizen_percent"`
	AvgIncomeGroup       IncomeBand         `json:"avg_income_group"`
	IncomeDistribution   IncomeDistribution `json:"income_distribution"`
}

type DistrictReport struct {
	District string   `json:"district"`
	Metrics  Metrics  `json:"metrics"`
	Schemes  []Scheme `json:"schemes"`
}
