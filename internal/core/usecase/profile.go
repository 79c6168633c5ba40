package usecase

import (
	"context"
	"time"

	"github.com/kirillkom/scheme-advisor/internal/core/advisor"
	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

const defaultPostalTimeout = 5 * time.Second

type ProfileUseCase struct {
	locator ports.PostOfficeLocator
	timeout time.Duration
}

func NewProfileUseCase(locator ports.PostOfficeLocator, timeout time.Duration) *ProfileUseCase {
	if timeout <= 0 {
		timeout = defaultPostalTimeout
	}
	return &ProfileUseCase{
		locator: locator,
		timeout: timeout,
	}
}

func (uc *ProfileUseCase) Recommend(ctx context.Context, input domain.ProfileInput) (*domain.ProfileReport, error) {
	profile := advisor.NormalizeProfile(input)
	schemes := advisor.RecommendForProfile(profile)
	lookup := uc.locateOffices(ctx, profile.Pincode)

	return &domain.ProfileReport{
		User:               profile.Echo(),
		RecommendedSchemes: schemes,
		NearbyPostOffices:  lookup.Lines(),
		PostOfficeLookup:   lookup.Status,
	}, nil
}

// locateOffices validates the pincode before any network call is made.
func (uc *ProfileUseCase) locateOffices(ctx context.Context, pincode string) domain.PostalLookup {
	if !domain.ValidPincode(pincode) {
		return domain.PostalLookup{Status: domain.PostalInvalidPincode}
	}
	if uc.locator == nil {
		return domain.PostalLookup{Status: domain.PostalFailed, Failure: domain.PostalFailureUnavailable}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return uc.locator.Locate(lookupCtx, pincode)
}
