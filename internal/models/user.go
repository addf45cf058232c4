package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                       // Primary key
	Email        string    `json:"email" db:"email"`                 // Unique login email
	Name         string    `json:"name" db:"name"`                   // Display name
	PasswordHash string    `json:"-" db:"password_hash"`             // Bcrypt hash, never serialized
	IsActive     bool      `json:"is_active" db:"is_active"`         // Inactive users cannot obtain tokens
	IsStaff      bool      `json:"is_staff" db:"is_staff"`           // Staff flag
	IsSuperuser  bool      `json:"is_superuser" db:"is_superuser"`   // Superuser flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`       // Last update timestamp
}

// UserInput carries writable user fields. Nil pointers are left untouched on update.
type UserInput struct {
	Email    *string
	Name     *string
	Password *string
}

var domainLower = cases.Lower(language.Und)

// NormalizeEmail lowercases the domain part of an email address and keeps the
// local part as submitted.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + domainLower.String(email[at+1:])
}
