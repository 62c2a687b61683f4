package model

import (
	"strings"
	"time"
)

// Account is a registered user or organization.
type Account struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         Role      `gorm:"column:role;type:text;not null" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Account) TableName() string {
	return "accounts"
}

// IsOrganization reports whether the account authors projects.
func (a *Account) IsOrganization() bool {
	return a.Role == RoleOrganization
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
