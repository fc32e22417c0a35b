package domain

import "time"

// Role enumerates the two access levels in the system.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeamMember Role = "team_member"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeamMember
}

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the actor has global scope.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// RoleSource records which link of the resolution chain produced a role.
type RoleSource string

const (
	RoleSourceProfile RoleSource = "profile"
	RoleSourceToken   RoleSource = "token"
	RoleSourceDefault RoleSource = "default"
)
