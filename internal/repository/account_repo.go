package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
	UpdatePassword(ctx context.Context, accountID uuid.UUID, hashedPassword string) error
}

type accountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) AccountRepository {
	return &accountRepo{db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepo) UpdatePassword(ctx context.Context, accountID uuid.UUID, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", accountID).Update("password", hashedPassword).Error
}

// SessionTokenStore adapts the account row's single session_token column to
// session.TokenStore.
type SessionTokenStore struct {
	db *gorm.DB
}

func NewSessionTokenStore(db *gorm.DB) *SessionTokenStore {
	return &SessionTokenStore{db}
}

// Swap overwrites the slot in one UPDATE statement; concurrent logins for the
// same account leave exactly one winner.
func (s *SessionTokenStore) Swap(ctx context.Context, accountID uuid.UUID, token string) error {
	res := s.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", accountID).Update("session_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *SessionTokenStore) Current(ctx context.Context, accountID uuid.UUID) (string, bool, error) {
	var account model.Account
	err := s.db.WithContext(ctx).Select("session_token").First(&account, "id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return account.SessionToken, true, nil
}
