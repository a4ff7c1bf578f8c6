package service

import (
	"context"
	"errors"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/repository"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/session"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrEmailTaken         = errors.New("email is already registered")
)

type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*model.AccountResponse, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error
}

type LoginResponse struct {
	Token   string                `json:"token"`
	Account model.AccountResponse `json:"account"`
}

type TokenValidationResponse struct {
	Account model.AccountResponse `json:"account"`
}

type authService struct {
	accounts repository.AccountRepository
	sessions *session.Registry
}

func NewAuthService(accounts repository.AccountRepository, sessions *session.Registry) AuthService {
	return &authService{accounts: accounts, sessions: sessions}
}

func (s *authService) Register(ctx context.Context, email, password, fullName string) (*model.AccountResponse, error) {
	if existing, _ := s.accounts.FindByEmail(ctx, email); existing != nil {
		return nil, ErrEmailTaken
	}

	account := &model.Account{
		Email:    email,
		FullName: fullName,
		IsActive: true,
	}
	if err := account.SetPassword(password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	account.CreatedBy = email
	account.UpdatedBy = email

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	resp := account.ToResponse()
	return &resp, nil
}

// Login verifies credentials and issues a fresh session token. Issuance
// invalidates whatever session the account held before, so logging in on a
// second device logs the first one out.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	if !account.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	sessionToken, err := s.sessions.Issue(ctx, account.ID)
	if err != nil {
		return nil, errors.New("failed to update session")
	}

	token, err := jwt.GenerateToken(account.ID, account.Email, sessionToken)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:   token,
		Account: account.ToResponse(),
	}, nil
}

// ValidateToken checks the JWT signature and then the session claim inside it
// against the account's current session slot.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Validate(ctx, claims.AccountID, claims.SessionToken); err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	return &TokenValidationResponse{Account: account.ToResponse()}, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, oldPassword, newPassword string) error {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return ErrAccountNotFound
	}

	if !account.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := account.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return err
	}

	// A new password does not invalidate the current session; only a new
	// login moves the slot.
	return nil
}
