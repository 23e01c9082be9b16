/*
Package account contains the credential store: the persistent mapping from
email to account record used by registration, login, and query identity
checks.
*/
package account

import (
	"context"
	"errors"
	"time"
)

// Account is a persisted user identity record. The password never appears
// here in plaintext; only the bcrypt hash is stored.
type Account struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	// ErrNotFound is returned when no account matches the given email or id.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when creation hits the unique email index.
	ErrDuplicateEmail = errors.New("account email already exists")
)

// Store is the persistence contract for accounts. Creation must rely on the
// store's atomic uniqueness enforcement: two concurrent registrations for the
// same email yield exactly one created account and one ErrDuplicateEmail.
type Store interface {
	Create(ctx context.Context, acct *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}
