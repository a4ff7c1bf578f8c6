package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account represents an authenticated user account. Each account owns zero or
// more stores and holds at most one valid session token at any time.
type Account struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Single session slot. Overwritten on every login; a request is only
	// authenticated while its token matches this value.
	SessionToken string `gorm:"type:varchar(255);default:''" json:"-"`
}

// SetPassword hashes and sets the account's password
func (a *Account) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}

// AccountResponse is used for API responses (without sensitive data)
type AccountResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	IsActive bool      `json:"is_active"`
}

// ToResponse converts Account to AccountResponse
func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Email:    a.Email,
		FullName: a.FullName,
		IsActive: a.IsActive,
	}
}
