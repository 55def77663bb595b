package usecase

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/media"

	"github.com/google/uuid"
)

// ListingUsecase defines the interface for property listing business operations.
type ListingUsecase interface {
	Create(ctx context.Context, creatorID uuid.UUID, input *CreateListingInput) (*entity.Listing, error)
	List(ctx context.Context, query ListListingsQuery) (*Page[*entity.Listing], error)
	GetBySlug(ctx context.Context, slug string) (*entity.Listing, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateListingInput) (*entity.Listing, error)
	// AssignAgents replaces the listing's agent reference list.
	AssignAgents(ctx context.Context, id uuid.UUID, rawAgents string) (*entity.Listing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) (*entity.Listing, error)
	// Delete purges hero, gallery and brochure media, then the row. Admin only.
	Delete(ctx context.Context, id uuid.UUID) error
}

// --- Input DTOs ---

// CreateListingInput defines the data required to create a listing. Raw*
// fields carry JSON-encoded values from multipart form fields.
type CreateListingInput struct {
	Title         string `validate:"required"`
	Headline      string
	Description   string `validate:"required"`
	Developer     string
	Community     string
	Location      string
	Emirate       string
	Country       string
	Category      string  `validate:"required"`
	StartingPrice float64 `validate:"required,gt=0"`
	Currency      string
	Handover      string
	Featured      bool
	IsNew         bool
	Status        string

	RawTypes        string
	RawAmenities    string
	RawNearbyPlaces string
	RawUnits        string
	RawPaymentPlan  string
	RawAgents       string
	RawBrochures    string

	Hero      *media.Attachment
	Gallery   []media.Attachment
	Brochures []media.Attachment
}

// UpdateListingInput defines a partial listing update. Nil pointers and
// empty strings leave the persisted value untouched; proposed media fields
// of nil mean "no change" and drive the reconciler's no-op rule.
type UpdateListingInput struct {
	Title         string
	Headline      string
	Description   string
	Developer     string
	Community     string
	Location      string
	Emirate       string
	Country       string
	Category      string
	StartingPrice *float64
	Currency      string
	Handover      string
	Featured      *bool
	IsNew         *bool
	Status        string

	RawTypes        string
	RawAmenities    string
	RawNearbyPlaces string
	RawUnits        string
	RawPaymentPlan  string
	RawAgents       string

	ProposedHero     *string
	ProposedGallery  *string // JSON list of retained URLs
	ProposedBrochure *string // JSON list of brochure descriptors

	Hero      *media.Attachment
	Gallery   []media.Attachment
	Brochures []media.Attachment
}

// ListListingsQuery narrows and pages the public listing index.
type ListListingsQuery struct {
	Category  string
	Type      string
	Country   string
	Search    string
	Featured  *bool
	IsNew     *bool
	Bedrooms  *int
	MinPrice  *float64
	MaxPrice  *float64
	CreatedBy uuid.UUID
	Page      int
	Limit     int
}
