package domain

import (
	"strings"
	"time"
)

// Role controls what a user may do.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

// ParseRole upper-cases raw and defaults to CITIZEN when empty.
func ParseRole(raw string) (Role, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RoleCitizen, true
	}
	role := Role(strings.ToUpper(raw))
	return role, role.Valid()
}

// User is the domain model for registered accounts.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
