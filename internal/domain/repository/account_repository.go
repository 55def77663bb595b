// Package repository defines the persistence contracts the domain depends on.
package repository

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors returned by repository implementations. Usecases translate
// them into domain errors with the right HTTP semantics.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAgentNotFound   = errors.New("agent profile not found")
	ErrListingNotFound = errors.New("listing not found")
	ErrDuplicateKey    = errors.New("duplicate key")
)

// ListAccountsFilter narrows and pages the admin account listing.
type ListAccountsFilter struct {
	ExcludeID uuid.UUID // omit the caller's own record
	Role      *entity.Role
	Offset    int
	Limit     int
}

// AccountRepository persists Account entities.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	// FindByLogin matches the login identifier against email or phone.
	FindByLogin(ctx context.Context, loginID string) (*entity.Account, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	Update(ctx context.Context, account *entity.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of accounts plus the total matching count.
	List(ctx context.Context, filter ListAccountsFilter) ([]*entity.Account, int64, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
