package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
	"github.com/kirillkom/scheme-advisor/internal/core/ports"
)

type AccountUseCase struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
}

func NewAccountUseCase(repo ports.AccountRepository, hasher ports.PasswordHasher) *AccountUseCase {
	return &AccountUseCase{
		repo:   repo,
		hasher: hasher,
	}
}

func (uc *AccountUseCase) Register(ctx context.Context, input domain.SignupInput) (*domain.Account, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register account", errors.New("email and password are required"))
	}
	if len(input.Password) > domain.MaxPasswordBytes {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register account", domain.ErrPasswordTooLong)
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   hash,
		Username:       strings.TrimSpace(input.Username),
		FullName:       strings.TrimSpace(input.FullName),
		Phone:          strings.TrimSpace(input.Phone),
		Role:           strings.TrimSpace(input.Role),
		PostOfficeCode: strings.TrimSpace(input.PostOfficeCode),
		Address:        strings.TrimSpace(input.Address),
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

func (uc *AccountUseCase) Authenticate(ctx context.Context, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "authenticate", errors.New("email and password are required"))
	}

	account, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if err := uc.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidCredentials, "authenticate", err)
	}

	return &domain.Session{
		Email: account.Email,
		Role:  account.Role,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
