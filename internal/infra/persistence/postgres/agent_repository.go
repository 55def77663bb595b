package postgres

import (
	"context"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// agentRepository implements the repository.AgentRepository interface.
type agentRepository struct {
	db *gorm.DB
}

// NewAgentRepository is the constructor for agentRepository.
func NewAgentRepository(db *gorm.DB) repository.AgentRepository {
	return &agentRepository{
		db: db,
	}
}

// Create persists a new agent profile.
func (repo *agentRepository) Create(ctx context.Context, profile *entity.AgentProfile) error {
	profileM := fromAgentDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create agent profile")
	}

	// Update the entity with generated values
	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindByAccountID retrieves the profile owned by an account.
func (repo *agentRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.AgentProfile, error) {
	var profileM model.AgentProfileModel

	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAgentNotFound
		}

		return nil, errors.Wrap(err, "failed to find agent profile by account ID")
	}

	return toAgentDomain(&profileM), nil
}

// FindBySlug retrieves a profile by its public slug.
func (repo *agentRepository) FindBySlug(ctx context.Context, slug string) (*entity.AgentProfile, error) {
	var profileM model.AgentProfileModel

	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAgentNotFound
		}

		return nil, errors.Wrap(err, "failed to find agent profile by slug")
	}

	return toAgentDomain(&profileM), nil
}

// SlugExists reports whether a profile already claims the slug.
func (repo *agentRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AgentProfileModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check agent slug existence")
	}

	return count > 0, nil
}

// Update persists every field of the profile.
func (repo *agentRepository) Update(ctx context.Context, profile *entity.AgentProfile) error {
	profileM := fromAgentDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.AgentProfileModel{}).
		Where("id = ?", profile.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(profileM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateKey
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update agent profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAgentNotFound
	}

	return nil
}

// Delete removes the profile row.
func (repo *agentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AgentProfileModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete agent profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAgentNotFound
	}

	return nil
}

// FindByAccountIDs returns the profiles backing the given accounts.
func (repo *agentRepository) FindByAccountIDs(ctx context.Context, accountIDs []uuid.UUID) ([]*entity.AgentProfile, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	var profileModels []*model.AgentProfileModel
	if err := repo.db.WithContext(ctx).
		Where("account_id IN ?", accountIDs).
		Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find agent profiles by account IDs")
	}

	profiles := make([]*entity.AgentProfile, 0, len(profileModels))
	for _, profileM := range profileModels {
		profiles = append(profiles, toAgentDomain(profileM))
	}

	return profiles, nil
}

// --- Mapper Functions ---

// toAgentDomain converts a GORM AgentProfileModel to a domain AgentProfile entity.
func toAgentDomain(data *model.AgentProfileModel) *entity.AgentProfile {
	if data == nil {
		return nil
	}

	return &entity.AgentProfile{
		ID:          data.ID,
		AccountID:   data.AccountID,
		Slug:        data.Slug,
		Name:        data.Name,
		Email:       data.Email,
		Phone:       data.Phone,
		AvatarURL:   data.AvatarURL,
		Title:       data.Title,
		Location:    data.Location,
		Bio:         data.Bio,
		Experience:  data.Experience,
		Languages:   data.Languages,
		Communities: data.Communities,
		Specialties: data.Specialties,
		Portfolio:   data.Portfolio,
		Status:      entity.AgentStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromAgentDomain converts a domain AgentProfile entity to a GORM AgentProfileModel.
func fromAgentDomain(data *entity.AgentProfile) *model.AgentProfileModel {
	if data == nil {
		return nil
	}

	return &model.AgentProfileModel{
		ID:          data.ID,
		AccountID:   data.AccountID,
		Slug:        data.Slug,
		Name:        data.Name,
		Email:       data.Email,
		Phone:       data.Phone,
		AvatarURL:   data.AvatarURL,
		Title:       data.Title,
		Location:    data.Location,
		Bio:         data.Bio,
		Experience:  data.Experience,
		Languages:   data.Languages,
		Communities: data.Communities,
		Specialties: data.Specialties,
		Portfolio:   data.Portfolio,
		Status:      string(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
