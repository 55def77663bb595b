package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// AgentRepository persists AgentProfile entities.
type AgentRepository interface {
	Create(ctx context.Context, profile *entity.AgentProfile) error
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.AgentProfile, error)
	FindBySlug(ctx context.Context, slug string) (*entity.AgentProfile, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, profile *entity.AgentProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByAccountIDs returns the profiles backing the given accounts,
	// in no particular order. Accounts without a profile are skipped.
	FindByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.AgentProfile, error)
}
