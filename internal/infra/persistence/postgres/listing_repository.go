package postgres

import (
	"context"
	"encoding/json"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listingRepository implements the repository.ListingRepository interface.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{
		db: db,
	}
}

// Create persists a new listing.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	// Update the entity with generated values
	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// FindByID retrieves a listing by its unique ID.
func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listingM model.ListingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by ID")
	}

	return toListingDomain(&listingM), nil
}

// FindBySlug retrieves a listing by its public slug.
func (repo *listingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Listing, error) {
	var listingM model.ListingModel

	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by slug")
	}

	return toListingDomain(&listingM), nil
}

// SlugExists reports whether a listing already claims the slug.
func (repo *listingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check listing slug existence")
	}

	return count > 0, nil
}

// Update persists every field of the listing.
func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ?", listing.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(listingM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateKey
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// Delete removes the listing row.
func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ListingModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete listing")
	}
	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// List returns a page of listings plus the total matching count, newest first.
func (repo *listingRepository) List(ctx context.Context, filter repository.ListListingsFilter) ([]*entity.Listing, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ListingModel{})
	query = applyListingFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count listings")
	}

	var listingModels []*model.ListingModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&listingModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list listings")
	}

	listings := make([]*entity.Listing, 0, len(listingModels))
	for _, listingM := range listingModels {
		listings = append(listings, toListingDomain(listingM))
	}

	return listings, total, nil
}

// FindByCreator returns every listing created by the given account.
func (repo *listingRepository) FindByCreator(ctx context.Context, accountID uuid.UUID) ([]*entity.Listing, error) {
	var listingModels []*model.ListingModel

	if err := repo.db.WithContext(ctx).
		Where("created_by = ?", accountID).
		Order("created_at DESC").
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find listings by creator")
	}

	listings := make([]*entity.Listing, 0, len(listingModels))
	for _, listingM := range listingModels {
		listings = append(listings, toListingDomain(listingM))
	}

	return listings, nil
}

// Count counts all listings.
func (repo *listingRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count listings")
	}

	return count, nil
}

// CountByCreator counts the listings created by an account.
func (repo *listingRepository) CountByCreator(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("created_by = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count listings by creator")
	}

	return count, nil
}

// applyListingFilter translates the domain filter into SQL predicates.
// JSONB containment covers list-shaped columns (types, units).
func applyListingFilter(query *gorm.DB, filter repository.ListListingsFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", filter.Category)
	}
	if filter.Type != "" {
		query = query.Where("types @> ?", jsonArray(filter.Type))
	}
	if filter.Country != "" {
		query = query.Where("country ILIKE ? OR emirate ILIKE ?", filter.Country, filter.Country)
	}
	if filter.CreatedBy != uuid.Nil {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR community ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.IsNew != nil {
		query = query.Where("is_new = ?", *filter.IsNew)
	}
	if filter.Bedrooms != nil {
		containment, _ := json.Marshal([]map[string]int{{"bedrooms": *filter.Bedrooms}})
		query = query.Where("units @> ?", string(containment))
	}
	if filter.MinPrice != nil {
		query = query.Where("starting_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("starting_price <= ?", *filter.MaxPrice)
	}

	return query
}

// jsonArray renders a single string as a JSON array literal for @> matching.
func jsonArray(value string) string {
	encoded, _ := json.Marshal([]string{value})

	return string(encoded)
}

// --- Mapper Functions ---

// toListingDomain converts a GORM ListingModel to a domain Listing entity.
func toListingDomain(data *model.ListingModel) *entity.Listing {
	if data == nil {
		return nil
	}

	return &entity.Listing{
		ID:            data.ID,
		Slug:          data.Slug,
		Title:         data.Title,
		Headline:      data.Headline,
		Description:   data.Description,
		Developer:     data.Developer,
		Community:     data.Community,
		Location:      data.Location,
		Emirate:       data.Emirate,
		Country:       data.Country,
		Category:      data.Category,
		Types:         data.Types,
		StartingPrice: data.StartingPrice,
		Currency:      data.Currency,
		Handover:      data.Handover,
		Featured:      data.Featured,
		IsNew:         data.IsNew,
		Status:        entity.ListingStatus(data.Status),
		HeroImage:     data.HeroImage,
		Gallery:       data.Gallery,
		Brochures:     data.Brochures,
		Amenities:     data.Amenities,
		NearbyPlaces:  data.NearbyPlaces,
		Units:         data.Units,
		PaymentPlan:   data.PaymentPlan,
		AgentIDs:      data.AgentIDs,
		CreatedBy:     data.CreatedBy,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromListingDomain converts a domain Listing entity to a GORM ListingModel.
func fromListingDomain(data *entity.Listing) *model.ListingModel {
	if data == nil {
		return nil
	}

	return &model.ListingModel{
		ID:            data.ID,
		Slug:          data.Slug,
		Title:         data.Title,
		Headline:      data.Headline,
		Description:   data.Description,
		Developer:     data.Developer,
		Community:     data.Community,
		Location:      data.Location,
		Emirate:       data.Emirate,
		Country:       data.Country,
		Category:      data.Category,
		Types:         data.Types,
		StartingPrice: data.StartingPrice,
		Currency:      data.Currency,
		Handover:      data.Handover,
		Featured:      data.Featured,
		IsNew:         data.IsNew,
		Status:        string(data.Status),
		HeroImage:     data.HeroImage,
		Gallery:       data.Gallery,
		Brochures:     data.Brochures,
		Amenities:     data.Amenities,
		NearbyPlaces:  data.NearbyPlaces,
		Units:         data.Units,
		PaymentPlan:   data.PaymentPlan,
		AgentIDs:      data.AgentIDs,
		CreatedBy:     data.CreatedBy,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
