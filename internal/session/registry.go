// Package session enforces at most one valid session token per account.
// Issuing a new token invalidates the previous one the instant it is stored;
// there is no retained history and no revocation list.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrMissingClaim means the presented credential carried no session
	// claim at all.
	ErrMissingClaim = errors.New("session: credential carries no session claim")

	// ErrNoSuchAccount means the account the claim refers to does not exist.
	ErrNoSuchAccount = errors.New("session: account not found")

	// ErrStaleToken means the claim does not match the currently stored
	// token; a later login (possibly from another device) superseded it.
	ErrStaleToken = errors.New("session: token superseded by a newer login")
)

// TokenStore is the single-slot token storage keyed by account id.
type TokenStore interface {
	// Swap stores token as the account's only session token, discarding any
	// previous value in the same write. Concurrent swaps for one account
	// must leave exactly one winner, never a mixed value.
	Swap(ctx context.Context, accountID uuid.UUID, token string) error

	// Current returns the stored token. found is false when the account
	// does not exist; an account that never logged in reports "".
	Current(ctx context.Context, accountID uuid.UUID) (token string, found bool, err error)
}

// Registry issues and validates the single active session token per account.
type Registry struct {
	store TokenStore
}

func NewRegistry(store TokenStore) *Registry {
	return &Registry{store: store}
}

// Issue generates a fresh unguessable token and stores it as the account's
// sole session token. Last writer wins; every previously issued token for the
// account becomes permanently invalid.
func (r *Registry) Issue(ctx context.Context, accountID uuid.UUID) (string, error) {
	token := uuid.NewString()
	if err := r.store.Swap(ctx, accountID, token); err != nil {
		return "", err
	}
	return token, nil
}

// Validate checks a presented token against the account's stored token.
// Returns nil when valid, otherwise ErrMissingClaim, ErrNoSuchAccount, or
// ErrStaleToken.
func (r *Registry) Validate(ctx context.Context, accountID uuid.UUID, presented string) error {
	if presented == "" {
		return ErrMissingClaim
	}
	current, found, err := r.store.Current(ctx, accountID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNoSuchAccount
	}
	if current != presented {
		return ErrStaleToken
	}
	return nil
}
