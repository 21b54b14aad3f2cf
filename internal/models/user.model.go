package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleStaff Role = "staff"
	RoleVoter Role = "voter"
)

// Valid reports whether the role is one of the closed set of variants.
func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleVoter
}

type AuthProvider string

const (
	ProviderLocal     AuthProvider = "local"
	ProviderGoogle    AuthProvider = "google"
	ProviderMicrosoft AuthProvider = "microsoft"
)

type User struct {
	BaseUUIDModel
	Name         string       `gorm:"type:text;not null"              json:"name"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"  json:"email"`
	PasswordHash *string      `gorm:"type:text"                       json:"-"`
	Provider     AuthProvider `gorm:"type:text;default:'local'"       json:"provider"`
	ProviderID   *string      `gorm:"type:text"                       json:"-"`
	Role         Role         `gorm:"type:text;not null;default:'voter'" json:"role"`
	LastLoginAt  *time.Time   `gorm:"type:timestamp"                  json:"lastLoginAt,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email == "" {
		return gorm.ErrInvalidValue
	}
	if u.Provider == "" {
		u.Provider = ProviderLocal
	}
	if u.Role == "" {
		u.Role = RoleVoter
	}
	if !u.Role.Valid() {
		return gorm.ErrInvalidValue
	}
	// Local accounts carry a password hash, provider accounts an external ID.
	if u.Provider == ProviderLocal && u.PasswordHash == nil {
		return gorm.ErrInvalidValue
	}
	return nil
}
