package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueThenValidate(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())
	account := uuid.New()

	token, err := registry.Issue(context.Background(), account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, registry.Validate(context.Background(), account, token))
}

func TestSecondIssueInvalidatesFirst(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())
	account := uuid.New()

	t1, err := registry.Issue(context.Background(), account)
	require.NoError(t, err)
	t2, err := registry.Issue(context.Background(), account)
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	require.ErrorIs(t, registry.Validate(context.Background(), account, t1), ErrStaleToken)
	require.NoError(t, registry.Validate(context.Background(), account, t2))
}

func TestValidateMissingClaim(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())

	err := registry.Validate(context.Background(), uuid.New(), "")
	require.ErrorIs(t, err, ErrMissingClaim)
}

func TestValidateUnknownAccount(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())

	err := registry.Validate(context.Background(), uuid.New(), "some-token")
	require.ErrorIs(t, err, ErrNoSuchAccount)
}

func TestValidateNeverLoggedInAccount(t *testing.T) {
	store := NewMemoryStore()
	registry := NewRegistry(store)
	account := uuid.New()
	store.Register(account)

	err := registry.Validate(context.Background(), account, "guessed-token")
	require.ErrorIs(t, err, ErrStaleToken)
}

func TestIssueIsIndependentPerAccount(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())
	a, b := uuid.New(), uuid.New()

	ta, err := registry.Issue(context.Background(), a)
	require.NoError(t, err)
	tb, err := registry.Issue(context.Background(), b)
	require.NoError(t, err)

	require.NoError(t, registry.Validate(context.Background(), a, ta))
	require.NoError(t, registry.Validate(context.Background(), b, tb))
}

func TestConcurrentLoginsLeaveOneWinner(t *testing.T) {
	registry := NewRegistry(NewMemoryStore())
	account := uuid.New()

	const logins = 32
	tokens := make([]string, logins)
	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := registry.Issue(context.Background(), account)
			require.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	// Exactly one issued token is still valid; it is one of those handed
	// out, never a mixed value.
	valid := 0
	for _, token := range tokens {
		if registry.Validate(context.Background(), account, token) == nil {
			valid++
		}
	}
	require.Equal(t, 1, valid)
}
