package assets

import (
	"strings"

	"github.com/uptrace/bun"
)

// Role is the role an authenticated user acts under
type Role = string

const (
	// RoleApprover decides pending approvals
	RoleApprover Role = "approver"
	// RoleITUser manages assets on behalf of owners
	RoleITUser Role = "ituser"
	// RoleEndUser owns assets and can only view them
	RoleEndUser Role = "enduser"
)

// NormalizeRole lowercases a stored role value. Roles are free text in
// the credential table and compared case-insensitively, so we
// normalize exactly once, at session creation.
func NormalizeRole(raw string) Role {
	return Role(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := NormalizeRole(roleStr)
	return role, IsValidRole(role)
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleApprover, RoleITUser, RoleEndUser:
		return true
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleApprover,
		RoleITUser,
		RoleEndUser,
	}
}

// Status is the asset's lifecycle state. The literal display strings
// are what the durable table stores, compared case-sensitively.
type Status = string

const (
	StatusAvailable       Status = "Available"
	StatusInUse           Status = "In Use"
	StatusPendingApproval Status = "Pending Approval"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
)

// IsValidStatus checks if the status is one of the five lifecycle states
func IsValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// GetAllStatuses returns all lifecycle states
func GetAllStatuses() []Status {
	return []Status{
		StatusAvailable,
		StatusInUse,
		StatusPendingApproval,
		StatusApproved,
		StatusRejected,
	}
}

// User is a credential record. The engine only reads these; user
// provisioning happens out of band.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	Username      string `bun:"username,pk,notnull" json:"username,omitempty"`
	PasswordHash  string `bun:"password_hash,notnull" json:"password_hash,omitempty"`
	Role          string `bun:"user_role,notnull" json:"user_role,omitempty"`
}

// Asset is an ownable record tracked through the lifecycle engine.
// Status is mutated exclusively through Engine.SetStatus, never by
// direct field assignment from UI code.
type Asset struct {
	bun.BaseModel `bun:"table:assets,alias:ast"`
	ID            string `bun:"id,pk,notnull" json:"id,omitempty"`
	Owner         string `bun:"username,notnull" json:"username,omitempty"`
	Name          string `bun:"name,notnull" json:"name,omitempty"`
	Status        Status `bun:"status,notnull" json:"status,omitempty"`
}

// NormalizeID canonicalizes an asset id for comparison. Ids may arrive
// as different primitive representations (numeric cells, padded
// strings), so every lookup compares trimmed string forms.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// SameID reports whether two asset ids refer to the same record.
func SameID(a, b string) bool {
	return NormalizeID(a) == NormalizeID(b)
}
