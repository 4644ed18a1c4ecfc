package models

import (
	"strings"
	"time"
)

// Role identifies what a logged-in account is allowed to do.
type Role string

const (
	RoleUser       Role = "USER"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// ParseRole normalizes a backend role string. Some auth responses carry a
// "ROLE_" prefix; both spellings map to the same Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_"))
	switch r {
	case RoleUser, RoleTechnician, RoleAdmin, RoleSuperAdmin:
		return r, true
	}
	return "", false
}

// IsTechnician is the single role predicate every view consults. Screens must
// not re-derive technician-ness from other fields.
func (r Role) IsTechnician() bool {
	return r == RoleTechnician
}

// User represents a customer account.
type User struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Technician represents a service provider profile.
type Technician struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Description   string    `json:"description"`
	Specialties   []string  `json:"specialties"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullName joins first and last name for display.
func (t Technician) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
