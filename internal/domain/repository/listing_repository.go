package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// ListListingsFilter narrows and pages the public listing index.
type ListListingsFilter struct {
	Category  string
	Type      string
	Country   string // matched against country OR emirate
	CreatedBy uuid.UUID
	Search    string // substring match over title, community, location
	Featured  *bool
	IsNew     *bool
	Bedrooms  *int
	MinPrice  *float64
	MaxPrice  *float64
	Offset    int
	Limit     int
}

// ListingRepository persists Listing entities.
type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of listings plus the total matching count,
	// newest first.
	List(ctx context.Context, filter ListListingsFilter) ([]*entity.Listing, int64, error)
	// FindByCreator returns every listing created by the given account.
	// Used by the account cascade delete.
	FindByCreator(ctx context.Context, accountID uuid.UUID) ([]*entity.Listing, error)
	Count(ctx context.Context) (int64, error)
	CountByCreator(ctx context.Context, accountID uuid.UUID) (int64, error)
}
