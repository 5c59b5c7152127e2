// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleOwner, RoleAdmin}

// ParseRole normalizes s into a Role. The empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.In(Roles...)
}

// In is the single authorization predicate: r must be a member of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// IsAdmin reports whether r carries override authority.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents an account holder.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(10);not null;default:'USER';index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public identity attached to listings and inquiries.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TableName maps UserSummary onto the users table.
func (UserSummary) TableName() string {
	return "users"
}

// Summary returns the public identity of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
