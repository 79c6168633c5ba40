package ports

import (
	"context"
	"io"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

// DistrictLookup finds a census row by name. A missing district is reported
// through the bool, not as an error.
type DistrictLookup interface {
	FindDistrict(ctx context.Context, name string) (domain.DistrictRecord, bool)
}

// PostOfficeLocator resolves a validated six digit pincode. It never returns
// an error; failures are described by the result.
type PostOfficeLocator interface {
	Locate(ctx context.Context, pincode string) domain.PostalLookup
}

// AccountRepository persists user accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// PasswordHasher hashes and verifies passwords with a salted one-way hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// ObjectStorage stores the census workbook.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// CensusParser reads district rows out of a census workbook.
type CensusParser interface {
	Parse(r io.Reader) ([]domain.DistrictRecord, error)
}

// CensusReloader rebuilds the in-memory census table from storage.
type CensusReloader interface {
	Reload(ctx context.Context) (int, error)
}

// ReloadBus fans census reload requests out to every API replica.
type ReloadBus interface {
	PublishCensusReload(ctx context.Context) error
	SubscribeCensusReload(ctx context.Context, handler func(context.Context) error) error
}
