package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/scheme-advisor/internal/core/advisor"
	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

type DistrictUseCase struct {
	lookup ports.DistrictLookup
}

func NewDistrictUseCase(lookup ports.DistrictLookup) *DistrictUseCase {
	return &DistrictUseCase{lookup: lookup}
}

func (uc *DistrictUseCase) Recommend(ctx context.Context, district string) (*domain.DistrictReport, error) {
	name := strings.TrimSpace(district)

	record, ok := uc.lookup.FindDistrict(ctx, name)
	if !ok {
		return nil, domain.WrapError(domain.ErrDistrictNotFound, "recommend district", fmt.Errorf("name=%q", name))
	}

	metrics := advisor.ComputeMetrics(record)
	return &domain.DistrictReport{
		District: record.Name,
		Metrics:  metrics,
		Schemes:  advisor.RecommendSchemes(metrics),
	}, nil
}
