package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ragwall/internal/app/db"
)

// Querier is the subset of pgxpool.Pool the store needs. Narrowing the
// dependency keeps the store testable without a live pool.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	q Querier
}

// NewPostgresStore returns a PostgresStore using the given Querier.
func NewPostgresStore(q Querier) *PostgresStore {
	return &PostgresStore{q: q}
}

// Create inserts a new account, generating its id when absent. A collision on
// the unique email index surfaces as ErrDuplicateEmail; the duplicate check
// is left entirely to the index so concurrent registrations cannot race past
// a read-then-insert gap.
func (s *PostgresStore) Create(ctx context.Context, acct *Account) error {
	if acct.ID == "" {
		acct.ID = uuid.New().String()
	}

	query := `INSERT INTO accounts (id, first_name, last_name, email, password_hash)
	          VALUES ($1::uuid, $2, $3, $4, $5)
	          RETURNING created_at`

	err := s.q.QueryRow(ctx, query,
		acct.ID, acct.FirstName, acct.LastName, acct.Email, acct.PasswordHash,
	).Scan(&acct.CreatedAt)

	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

// GetByEmail looks up an account by email, case-insensitively.
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT id::text, first_name, last_name, email, password_hash, created_at
	          FROM accounts
	          WHERE lower(email) = lower($1)`

	acct := &Account{}
	err := s.q.QueryRow(ctx, query, email).Scan(
		&acct.ID, &acct.FirstName, &acct.LastName, &acct.Email, &acct.PasswordHash, &acct.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select account by email: %w", err)
	}

	return acct, nil
}

// GetByID looks up an account by its uuid string. A malformed id cannot match
// any account and maps to ErrNotFound without touching the database.
func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	query := `SELECT id::text, first_name, last_name, email, password_hash, created_at
	          FROM accounts
	          WHERE id = $1::uuid`

	acct := &Account{}
	err := s.q.QueryRow(ctx, query, id).Scan(
		&acct.ID, &acct.FirstName, &acct.LastName, &acct.Email, &acct.PasswordHash, &acct.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select account by id: %w", err)
	}

	return acct, nil
}
