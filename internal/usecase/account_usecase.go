package usecase

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/media"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for identity-related business operations.
type AccountUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateAccountInput) (*ProfileView, error)
	// List pages all accounts except the caller's own. Admin only.
	List(ctx context.Context, callerID uuid.UUID, query ListAccountsQuery) (*Page[*entity.Account], error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AccountStatus) (*entity.Account, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.Account, error)
	// Delete cascades: agent profile media and row, created listings' media
	// and rows, the account's own picture, then the account row.
	Delete(ctx context.Context, id uuid.UUID) error
	DashboardStats(ctx context.Context, callerID uuid.UUID, role entity.Role) (*DashboardStats, error)
}

// --- Input DTOs ---

// SignupInput defines the data required to register an account.
type SignupInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	Password string `validate:"required,min=6"`
	Role     string
	Picture  *media.Attachment
}

// LoginInput carries the login identifier (email or phone) and password.
type LoginInput struct {
	LoginID  string `validate:"required"`
	Password string `validate:"required"`
}

// UpdateAccountInput defines a partial self-update. Nil pointers leave the
// persisted value untouched; changed identity fields propagate to the paired
// agent profile. Professional fields and Raw* lists only apply to agent-role
// accounts and are forwarded to the profile.
type UpdateAccountInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	Picture         *media.Attachment
	ProposedPicture *string // URL to keep, or empty string to clear

	Location       string
	Bio            string
	Experience     string
	RawLanguages   string
	RawCommunities string
	RawSpecialties string
	RawPortfolio   string
}

// ListAccountsQuery narrows and pages the admin account listing.
type ListAccountsQuery struct {
	Role  string
	Page  int
	Limit int
}

// --- Output DTOs ---

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	Account *entity.Account
	Token   string
}

// ProfileView merges the account with its agent profile, when one exists.
type ProfileView struct {
	*entity.Account
	AgentProfile *entity.AgentProfile `json:"agent_profile,omitempty"`
}

// DashboardStats summarizes the caller's visible slice of the system.
type DashboardStats struct {
	TotalProperties int64 `json:"total_properties"`
	TotalAgents     int64 `json:"total_agents"`
	TotalUsers      int64 `json:"total_users"`
	MyProperties    int64 `json:"my_properties"`
}
