package entity

// Role represents the access level of an account.
type Role string

const (
	// RoleAdmin grants full management access.
	RoleAdmin Role = "admin"
	// RoleAgent marks an account with a professional agent profile.
	RoleAgent Role = "agent"
	// RoleUser is the default role for new signups.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	default:
		return false
	}
}
