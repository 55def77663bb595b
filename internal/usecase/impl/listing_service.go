package impl

import (
	"context"
	"log/slog"

	"estate/config"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/jsonfield"
	"estate/internal/media"
	"estate/internal/usecase"
	"estate/internal/util"

	"github.com/google/uuid"
)

// listingService implements usecase.ListingUsecase.
type listingService struct {
	listingRepo repository.ListingRepository
	reconciler  *media.Reconciler
	cfg         *config.Config
	logger      *slog.Logger
}

// NewListingService is the constructor for listingService.
func NewListingService(
	listingRepo repository.ListingRepository,
	reconciler *media.Reconciler,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ListingUsecase {
	return &listingService{
		listingRepo: listingRepo,
		reconciler:  reconciler,
		cfg:         cfg,
		logger:      logger,
	}
}

// Create persists a new listing, uploading hero, gallery and brochure media.
func (s *listingService) Create(ctx context.Context, creatorID uuid.UUID, input *usecase.CreateListingInput) (*entity.Listing, error) {
	// Decode every JSON field before the first remote call so a malformed
	// field aborts with no side effects.
	types, err := jsonfield.DecodeList[string](input.RawTypes, "property_types")
	if err != nil {
		return nil, err
	}
	amenities, err := jsonfield.DecodeList[string](input.RawAmenities, "amenities")
	if err != nil {
		return nil, err
	}
	nearby, err := jsonfield.DecodeList[entity.NearbyPlace](input.RawNearbyPlaces, "nearby_locations")
	if err != nil {
		return nil, err
	}
	units, err := jsonfield.DecodeList[entity.Unit](input.RawUnits, "units")
	if err != nil {
		return nil, err
	}
	paymentPlan, err := jsonfield.DecodeList[entity.PaymentMilestone](input.RawPaymentPlan, "payment_plan")
	if err != nil {
		return nil, err
	}
	agents, err := jsonfield.DecodeList[uuid.UUID](input.RawAgents, "agents")
	if err != nil {
		return nil, err
	}
	brochureChanges, err := jsonfield.DecodeList[media.BrochureChange](input.RawBrochures, "brochure_pdfs")
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	hero := ""
	if input.Hero != nil {
		hero, _, err = s.reconciler.Single(ctx, "", nil, input.Hero, folderProperties)
		if err != nil {
			return nil, err
		}
	}
	gallery, _, err := s.reconciler.List(ctx, nil, nil, input.Gallery, folderProperties)
	if err != nil {
		return nil, err
	}
	brochures, _, err := s.reconciler.Brochures(ctx, nil, brochureChanges, input.Brochures, folderFiles)
	if err != nil {
		return nil, err
	}

	listing := &entity.Listing{
		Slug:          slug,
		Title:         input.Title,
		Headline:      input.Headline,
		Description:   input.Description,
		Developer:     input.Developer,
		Community:     input.Community,
		Location:      input.Location,
		Emirate:       input.Emirate,
		Country:       input.Country,
		Category:      input.Category,
		StartingPrice: input.StartingPrice,
		Currency:      input.Currency,
		Handover:      input.Handover,
		Featured:      input.Featured,
		IsNew:         input.IsNew,
		Status:        entity.ListingActive,
		HeroImage:     hero,
		Gallery:       gallery,
		Brochures:     brochures,
		CreatedBy:     creatorID,
	}
	if listing.Country == "" {
		listing.Country = "UAE"
	}
	if listing.Currency == "" {
		listing.Currency = "AED"
	}
	if input.Status == string(entity.ListingInactive) {
		listing.Status = entity.ListingInactive
	}
	if types != nil {
		listing.Types = *types
	}
	if amenities != nil {
		listing.Amenities = *amenities
	}
	if nearby != nil {
		listing.NearbyPlaces = *nearby
	}
	if units != nil {
		listing.Units = *units
	}
	if paymentPlan != nil {
		listing.PaymentPlan = *paymentPlan
	}
	if agents != nil {
		listing.AgentIDs = *agents
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrSlugConflict
		}

		return nil, err
	}

	return listing, nil
}

// List pages the public listing index, newest first.
func (s *listingService) List(ctx context.Context, query usecase.ListListingsQuery) (*usecase.Page[*entity.Listing], error) {
	page, limit, offset := clampPage(query.Page, query.Limit, s.cfg.Pagination)

	listings, total, err := s.listingRepo.List(ctx, repository.ListListingsFilter{
		Category:  query.Category,
		Type:      query.Type,
		Country:   query.Country,
		CreatedBy: query.CreatedBy,
		Search:    query.Search,
		Featured:  query.Featured,
		IsNew:     query.IsNew,
		Bedrooms:  query.Bedrooms,
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	return usecase.NewPage(listings, page, limit, total), nil
}

// GetBySlug returns the listing behind a public slug.
func (s *listingService) GetBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	listing, err := s.listingRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, err
	}

	return listing, nil
}

// Update applies a partial update and reconciles hero, gallery and brochure
// media against the proposed state.
func (s *listingService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateListingInput) (*entity.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, err
	}

	types, err := jsonfield.DecodeList[string](input.RawTypes, "property_types")
	if err != nil {
		return nil, err
	}
	amenities, err := jsonfield.DecodeList[string](input.RawAmenities, "amenities")
	if err != nil {
		return nil, err
	}
	nearby, err := jsonfield.DecodeList[entity.NearbyPlace](input.RawNearbyPlaces, "nearby_locations")
	if err != nil {
		return nil, err
	}
	units, err := jsonfield.DecodeList[entity.Unit](input.RawUnits, "units")
	if err != nil {
		return nil, err
	}
	paymentPlan, err := jsonfield.DecodeList[entity.PaymentMilestone](input.RawPaymentPlan, "payment_plan")
	if err != nil {
		return nil, err
	}
	agents, err := jsonfield.DecodeList[uuid.UUID](input.RawAgents, "agents")
	if err != nil {
		return nil, err
	}
	var proposedGallery *[]string
	if input.ProposedGallery != nil {
		proposedGallery, err = jsonfield.DecodeList[string](*input.ProposedGallery, "gallery")
		if err != nil {
			return nil, err
		}
	}
	var proposedBrochures *[]media.BrochureChange
	if input.ProposedBrochure != nil {
		proposedBrochures, err = jsonfield.DecodeList[media.BrochureChange](*input.ProposedBrochure, "brochure_pdfs")
		if err != nil {
			return nil, err
		}
	}

	if input.Title != "" {
		listing.Title = input.Title
	}
	if input.Headline != "" {
		listing.Headline = input.Headline
	}
	if input.Description != "" {
		listing.Description = input.Description
	}
	if input.Developer != "" {
		listing.Developer = input.Developer
	}
	if input.Community != "" {
		listing.Community = input.Community
	}
	if input.Location != "" {
		listing.Location = input.Location
	}
	if input.Emirate != "" {
		listing.Emirate = input.Emirate
	}
	if input.Country != "" {
		listing.Country = input.Country
	}
	if input.Category != "" {
		listing.Category = input.Category
	}
	if input.StartingPrice != nil {
		listing.StartingPrice = *input.StartingPrice
	}
	if input.Currency != "" {
		listing.Currency = input.Currency
	}
	if input.Handover != "" {
		listing.Handover = input.Handover
	}
	if input.Featured != nil {
		listing.Featured = *input.Featured
	}
	if input.IsNew != nil {
		listing.IsNew = *input.IsNew
	}
	if input.Status != "" {
		status := entity.ListingStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid listing status")
		}
		listing.Status = status
	}
	if types != nil {
		listing.Types = *types
	}
	if amenities != nil {
		listing.Amenities = *amenities
	}
	if nearby != nil {
		listing.NearbyPlaces = *nearby
	}
	if units != nil {
		listing.Units = *units
	}
	if paymentPlan != nil {
		listing.PaymentPlan = *paymentPlan
	}
	if agents != nil {
		listing.AgentIDs = *agents
	}

	hero, _, err := s.reconciler.Single(ctx, listing.HeroImage, input.ProposedHero, input.Hero, folderProperties)
	if err != nil {
		return nil, err
	}
	listing.HeroImage = hero

	gallery, _, err := s.reconciler.List(ctx, listing.Gallery, proposedGallery, input.Gallery, folderProperties)
	if err != nil {
		return nil, err
	}
	listing.Gallery = gallery

	brochures, _, err := s.reconciler.Brochures(ctx, listing.Brochures, proposedBrochures, input.Brochures, folderFiles)
	if err != nil {
		return nil, err
	}
	listing.Brochures = brochures

	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrSlugConflict
		}

		return nil, err
	}

	return listing, nil
}

// AssignAgents replaces the listing's agent reference list.
func (s *listingService) AssignAgents(ctx context.Context, id uuid.UUID, rawAgents string) (*entity.Listing, error) {
	agents, err := jsonfield.DecodeList[uuid.UUID](rawAgents, "agents")
	if err != nil {
		return nil, err
	}
	if agents == nil {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Field 'agents' is required")
	}

	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, err
	}

	listing.AgentIDs = *agents
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// UpdateStatus flips the listing between active and inactive.
func (s *listingService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ListingStatus) (*entity.Listing, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid listing status")
	}

	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, err
	}

	listing.Status = status
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// Delete purges the listing's media, then removes the row. Media deletes are
// best-effort; only the row deletion can fail the operation.
func (s *listingService) Delete(ctx context.Context, id uuid.UUID) error {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return domainerrors.ErrListingNotFound
		}

		return err
	}

	attempts := s.reconciler.Purge(ctx, listingMediaRefs(listing)...)

	if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
		return err
	}

	s.logger.Info("listing deleted",
		"listingID", listing.ID,
		"slug", listing.Slug,
		"mediaDeletes", attempts,
	)

	return nil
}

func (s *listingService) uniqueSlug(ctx context.Context, title string) (string, error) {
	slug := util.Slugify(title)
	taken, err := s.listingRepo.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if taken {
		slug = util.SlugWithSuffix(slug)
	}

	return slug, nil
}
