package models

import (
	"time"
)

// Role is a named capability checked before privileged operations
type Role string

const (
	RoleMinter Role = "MINTER"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether the role is one of the recognized capabilities
func (r Role) Valid() bool {
	return r == RoleMinter || r == RoleAdmin
}

// RoleGrant records a capability granted to an account
type RoleGrant struct {
	Account   string    `json:"account" db:"account"`
	Role      Role      `json:"role" db:"role"`
	GrantedBy string    `json:"granted_by" db:"granted_by"`
	GrantedAt time.Time `json:"granted_at" db:"granted_at"`
}

// RoleRequest represents a request to grant or revoke a role
type RoleRequest struct {
	Account string `json:"account"`
	Role    Role   `json:"role"`
}
