package usecase

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

type districtLookupFake struct {
	records map[string]domain.DistrictRecord
	asked   string
}

func (f *districtLookupFake) FindDistrict(_ context.Context, name string) (domain.DistrictRecord, bool) {
	f.asked = name
	record, ok := f.records[strings.ToLower(name)]
	return record, ok
}

func TestDistrictRecommendReturnsMetricsAndSchemes(t *testing.T) {
	lookup := &districtLookupFake{records: map[string]domain.DistrictRecord{
		"nashik": {
			Name:                "Nashik",
			Population:          1000,
			Male:                400,
			Female:              600,
			MaleLiterate:        300,
			FemaleLiterate:      420,
			Workers:             500,
			CultivatorWorkers:   150,
			AgriculturalWorkers: 100,
			RuralHouseholds:     650,
			Households:          1000,
			AgeGroup50Plus:      100,
			AgeNotStated:        10,
			IncomeBelow45k:      400,
			Income45kTo90k:      100,
			Income90kTo150k:     200,
			Income150kTo330k:    100,
			IncomeAbove545k:     50,
		},
	}}
	uc := NewDistrictUseCase(lookup)

	report, err := uc.Recommend(context.Background(), "  Nashik ")
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if lookup.asked != "Nashik" {
		t.Fatalf("expected trimmed lookup name, got %q", lookup.asked)
	}
	if report.District != "Nashik" {
		t.Fatalf("expected district name from record, got %q", report.District)
	}
	if report.Metrics.FemalePercent != 60 || report.Metrics.FarmerPercent != 50 {
		t.Fatalf("unexpected metrics: %+v", report.Metrics)
	}

	want := []domain.Scheme{
		domain.SchemeSukanyaSamriddhi,
		domain.SchemeRuralPostalLife,
		domain.SchemeKisanVikasPatra,
		domain.SchemeLowIncomeSavings,
		domain.SchemeMahilaSammanDistrict,
	}
	if !slices.Equal(report.Schemes, want) {
		t.Fatalf("expected %v, got %v", want, report.Schemes)
	}
}

func TestDistrictRecommendNotFound(t *testing.T) {
	uc := NewDistrictUseCase(&districtLookupFake{})

	_, err := uc.Recommend(context.Background(), "Atlantis")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDistrictNotFound) {
		t.Fatalf("expected ErrDistrictNotFound, got %v", err)
	}
}
