package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentStatus is the lifecycle state of an agent profile.
type AgentStatus string

const (
	// AgentActive lets the agent authenticate and appear publicly.
	AgentActive AgentStatus = "active"
	// AgentInactive is a reversible admin-initiated deactivation.
	AgentInactive AgentStatus = "inactive"
	// AgentSuspended blocks authentication until an admin re-activates.
	AgentSuspended AgentStatus = "suspended"
)

// IsValid checks if the AgentStatus is a valid value.
func (s AgentStatus) IsValid() bool {
	switch s {
	case AgentActive, AgentInactive, AgentSuspended:
		return true
	default:
		return false
	}
}

// PortfolioKind tags a portfolio entry as an image or a video.
type PortfolioKind string

const (
	PortfolioImage PortfolioKind = "image"
	PortfolioVideo PortfolioKind = "video"
)

// PortfolioItem is one entry in an agent's portfolio.
type PortfolioItem struct {
	URL  string        `json:"url"`
	Kind PortfolioKind `json:"type"`
}

// UnmarshalJSON accepts either the structured {url, type} form or a bare URL
// string, which older clients still send. Bare strings default to images.
func (p *PortfolioItem) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var url string
		if err := json.Unmarshal(data, &url); err != nil {
			return err
		}
		p.URL = url
		p.Kind = PortfolioImage

		return nil
	}

	type plain PortfolioItem
	var item plain
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	if item.Kind == "" {
		item.Kind = PortfolioImage
	}
	*p = PortfolioItem(item)

	return nil
}

// AgentProfile is the professional record owned by exactly one agent-role
// Account. The account id is a weak reference: identity fields (name, email,
// phone, avatar) are mirrored from the Account, which stays the source of
// truth. Profiles are created lazily the first time an agent-role account is
// accessed without one, or explicitly by an admin.
type AgentProfile struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"user_id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"agent_name"`
	Email       string          `json:"agent_email"`
	Phone       string          `json:"agent_phone"`
	AvatarURL   string          `json:"avatar_url"`
	Title       string          `json:"agent_role"` // professional label, e.g. "Senior Broker"
	Location    string          `json:"agent_location"`
	Bio         string          `json:"agent_bio"`
	Experience  string          `json:"experience"`
	Languages   []string        `json:"languages"`
	Communities []string        `json:"communities"`
	Specialties []string        `json:"specialties"`
	Portfolio   []PortfolioItem `json:"agent_portfolio"`
	Status      AgentStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
