package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kirillkom/scheme-advisor/internal/core/domain"
)

const schemaLockKey int64 = 2026101801

var accountColumns = []string{
	"id", "email", "password_hash", "username", "full_name",
	"phone", "role", "post_office_code", "address", "created_at",
}

type AccountRepository struct {
	db   *sql.DB
	psql sq.StatementBuilderType
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AccountRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Replicas start together; serialize the DDL.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	username TEXT NOT NULL DEFAULT '',
	full_name TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	post_office_code TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Create inserts the account. The unique email constraint decides duplicates,
// so two concurrent signups cannot both succeed.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query, args, err := r.psql.Insert("users").
		Columns(accountColumns...).
		Values(
			account.ID, account.Email, account.PasswordHash, account.Username, account.FullName,
			account.Phone, account.Role, account.PostOfficeCode, account.Address, account.CreatedAt,
		).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert account: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert account rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrAccountExists, "insert account", fmt.Errorf("email %s", account.Email))
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query, args, err := r.psql.Select(accountColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select account: %w", err)
	}

	var account domain.Account
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &account.Username, &account.FullName,
		&account.Phone, &account.Role, &account.PostOfficeCode, &account.Address, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrAccountNotFound, "get account", fmt.Errorf("email %s", email))
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &account, nil
}
