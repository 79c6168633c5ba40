package ports

import (
	"context"
	"io"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

// DistrictAdvisor is the inbound contract for district-level recommendations.
type DistrictAdvisor interface {
	Recommend(ctx context.Context, district string) (*domain.DistrictReport, error)
}

// ProfileAdvisor is the inbound contract for individual recommendations.
type ProfileAdvisor interface {
	Recommend(ctx context.Context, input domain.ProfileInput) (*domain.ProfileReport, error)
}

// AccountService is the inbound contract for signup and login.
type AccountService interface {
	Register(ctx context.Context, input domain.SignupInput) (*domain.Account, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Session, error)
}

// CensusAdmin replaces and reloads the census workbook.
type CensusAdmin interface {
	Replace(ctx context.Context, body io.Reader) (int, error)
	RequestReload(ctx context.Context) error
}
