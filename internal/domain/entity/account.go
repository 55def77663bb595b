// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	// AccountActive allows the account to authenticate and act.
	AccountActive AccountStatus = "active"
	// AccountBlocked rejects the account at authentication time.
	AccountBlocked AccountStatus = "blocked"
)

// IsValid checks if the AccountStatus is a valid value.
func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountBlocked
}

// Account is the identity record of the system. It is the source of truth
// for name, email, phone and profile picture; an agent-role account owns
// exactly one AgentProfile that mirrors those fields.
type Account struct {
	ID             uuid.UUID     `json:"id"`
	Name           string        `json:"user_name"`
	Email          string        `json:"user_email"`
	Phone          string        `json:"user_phone"`
	PasswordHash   string        `json:"-"`
	ProfilePicture string        `json:"profile_picture"` // media reference, possibly externally hosted
	Role           Role          `json:"role"`
	Status         AccountStatus `json:"status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
