package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `gorm:"not null" json:"phone"`
	Address      string    `gorm:"not null" json:"address"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser builds a user record with a fresh id and a normalized email.
// The caller supplies an already-hashed password; plaintext never reaches a model.
func NewUser(name, email, passwordHash, phone, address string) *User {
	return &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(phone),
		Address:      strings.TrimSpace(address),
	}
}

// NormalizeEmail lowercases and trims an email so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
