package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/session"
)

type fakeAccountRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*model.Account
	byEmail map[string]uuid.UUID
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byID:    make(map[uuid.UUID]*model.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return r.byID[id], nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.byID[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return account, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) UpdatePassword(_ context.Context, accountID uuid.UUID, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.byID[accountID]
	if !ok {
		return errors.New("record not found")
	}
	account.Password = hashedPassword
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeAccountRepo, *session.MemoryStore) {
	t.Helper()
	repo := newFakeAccountRepo()
	tokens := session.NewMemoryStore()
	svc := NewAuthService(repo, session.NewRegistry(tokens))
	return svc, repo, tokens
}

func registerAccount(t *testing.T, svc AuthService, tokens *session.MemoryStore, repo *fakeAccountRepo, email, password string) *model.Account {
	t.Helper()
	resp, err := svc.Register(context.Background(), email, password, "Cuenta de Prueba")
	require.NoError(t, err)
	account, err := repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	tokens.Register(account.ID)
	return account
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")

	resp, err := svc.Login(context.Background(), "ana@example.com", "secreto123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "ana@example.com", resp.Account.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")

	_, err := svc.Register(context.Background(), "ana@example.com", "otro", "Otra Cuenta")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")

	_, err := svc.Login(context.Background(), "ana@example.com", "incorrecta")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "nadie@example.com", "lo-que-sea")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	account := registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")
	account.IsActive = false

	_, err := svc.Login(context.Background(), "ana@example.com", "secreto123")
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestSecondLoginInvalidatesFirstToken(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")
	ctx := context.Background()

	first, err := svc.Login(ctx, "ana@example.com", "secreto123")
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, first.Token)
	require.NoError(t, err)

	second, err := svc.Login(ctx, "ana@example.com", "secreto123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, first.Token)
	require.ErrorIs(t, err, session.ErrStaleToken)

	_, err = svc.ValidateToken(ctx, second.Token)
	require.NoError(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
}

func TestResetPasswordKeepsSessionAlive(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")
	ctx := context.Background()

	resp, err := svc.Login(ctx, "ana@example.com", "secreto123")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(ctx, "ana@example.com", "secreto123", "nuevo456"))

	// Session slot is untouched; only the credentials changed.
	_, err = svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "secreto123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "ana@example.com", "nuevo456")
	require.NoError(t, err)
}

func TestResetPasswordWrongCurrent(t *testing.T) {
	svc, repo, tokens := newAuthFixture(t)
	registerAccount(t, svc, tokens, repo, "ana@example.com", "secreto123")

	err := svc.ResetPassword(context.Background(), "ana@example.com", "incorrecta", "nuevo456")
	require.ErrorIs(t, err, ErrWrongPassword)
}
