package usecase

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/media"

	"github.com/google/uuid"
)

// AgentUsecase defines the interface for agent-profile business operations.
type AgentUsecase interface {
	// GetOwnProfile returns the caller's profile, creating it lazily for
	// agent-role accounts that do not have one yet.
	GetOwnProfile(ctx context.Context, accountID uuid.UUID) (*entity.AgentProfile, error)
	// UpdateOwnProfile applies a partial self-update, reconciles avatar and
	// portfolio media, and mirrors identity changes back to the account.
	UpdateOwnProfile(ctx context.Context, accountID uuid.UUID, input *UpdateAgentInput) (*entity.AgentProfile, error)
	// List pages the public agent directory, newest first.
	List(ctx context.Context, query ListAgentsQuery) (*Page[*entity.AgentProfile], error)
	GetBySlug(ctx context.Context, slug string) (*entity.AgentProfile, error)
	// Create registers a new agent account together with its profile. Admin only.
	Create(ctx context.Context, input *CreateAgentInput) (*entity.AgentProfile, error)
	// UpdateByID is the admin edit of another agent, restricted to status.
	UpdateByID(ctx context.Context, accountID uuid.UUID, status entity.AgentStatus) (*entity.AgentProfile, error)
	// UpdateStatus sets the status of the profile identified by account id or
	// slug. A nil status toggles between active and inactive.
	UpdateStatus(ctx context.Context, ref string, status *entity.AgentStatus) (*entity.AgentProfile, error)
}

// --- Input DTOs ---

// UpdateAgentInput defines a partial agent-profile update. Empty strings
// leave scalar fields untouched; Raw* fields carry JSON-encoded lists from
// multipart form values.
type UpdateAgentInput struct {
	Name           string
	Email          string
	Phone          string
	Title          string
	Location       string
	Bio            string
	Experience     string
	RawLanguages   string
	RawCommunities string
	RawSpecialties string
	RawPortfolio   string
	Avatar         *media.Attachment
	ProposedAvatar *string
}

// CreateAgentInput defines the data an admin supplies to register an agent.
type CreateAgentInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	Password string `validate:"required,min=6"`
	Title    string
	Location string
	Bio      string
	Avatar   *media.Attachment
}

// ListAgentsQuery pages the public agent directory.
type ListAgentsQuery struct {
	Page  int
	Limit int
}
