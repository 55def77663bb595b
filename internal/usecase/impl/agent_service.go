package impl

import (
	"context"
	"log/slog"

	"estate/config"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/errors"
	"estate/internal/jsonfield"
	"estate/internal/media"
	"estate/internal/usecase"

	"github.com/google/uuid"
)

// agentService implements usecase.AgentUsecase.
type agentService struct {
	accountRepo repository.AccountRepository
	agentRepo   repository.AgentRepository
	hasher      service.PasswordHasher
	reconciler  *media.Reconciler
	cfg         *config.Config
	logger      *slog.Logger
}

// NewAgentService is the constructor for agentService.
func NewAgentService(
	accountRepo repository.AccountRepository,
	agentRepo repository.AgentRepository,
	hasher service.PasswordHasher,
	reconciler *media.Reconciler,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AgentUsecase {
	return &agentService{
		accountRepo: accountRepo,
		agentRepo:   agentRepo,
		hasher:      hasher,
		reconciler:  reconciler,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetOwnProfile returns the caller's profile, creating it lazily.
func (s *agentService) GetOwnProfile(ctx context.Context, accountID uuid.UUID) (*entity.AgentProfile, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}
	if account.Role != entity.RoleAgent {
		return nil, domainerrors.ErrForbidden
	}

	return s.findOrCreateProfile(ctx, account)
}

// UpdateOwnProfile applies a partial self-update, reconciles the avatar and
// portfolio, and mirrors identity changes back to the account.
func (s *agentService) UpdateOwnProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateAgentInput) (*entity.AgentProfile, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}
	if account.Role != entity.RoleAgent {
		return nil, domainerrors.ErrForbidden
	}

	profile, err := s.findOrCreateProfile(ctx, account)
	if err != nil {
		return nil, err
	}

	// Decode every JSON field before the first remote call so a malformed
	// field aborts with no side effects.
	languages, err := jsonfield.DecodeList[string](input.RawLanguages, "languages")
	if err != nil {
		return nil, err
	}
	communities, err := jsonfield.DecodeList[string](input.RawCommunities, "communities")
	if err != nil {
		return nil, err
	}
	specialties, err := jsonfield.DecodeList[string](input.RawSpecialties, "specialties")
	if err != nil {
		return nil, err
	}
	portfolio, err := jsonfield.DecodeList[entity.PortfolioItem](input.RawPortfolio, "agent_portfolio")
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		profile.Name = input.Name
	}
	if input.Email != "" {
		profile.Email = input.Email
	}
	if input.Phone != "" {
		profile.Phone = input.Phone
	}
	if input.Title != "" {
		profile.Title = input.Title
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.Experience != "" {
		profile.Experience = input.Experience
	}
	if languages != nil {
		profile.Languages = *languages
	}
	if communities != nil {
		profile.Communities = *communities
	}
	if specialties != nil {
		profile.Specialties = *specialties
	}

	avatar, _, err := s.reconciler.Single(ctx, profile.AvatarURL, input.ProposedAvatar, input.Avatar, folderProfiles)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = avatar

	finalPortfolio, _, err := s.reconciler.Portfolio(ctx, profile.Portfolio, portfolio, nil, folderProfiles)
	if err != nil {
		return nil, err
	}
	profile.Portfolio = finalPortfolio

	if err := s.agentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	// The account stays the source of truth for identity fields.
	account.Name = profile.Name
	account.Email = profile.Email
	account.Phone = profile.Phone
	account.ProfilePicture = profile.AvatarURL
	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrAccountExists
		}

		return nil, err
	}

	return profile, nil
}

// List pages the public agent directory. Agent-role accounts without a
// persisted profile appear as synthesized views so the directory never
// hides an agent.
func (s *agentService) List(ctx context.Context, query usecase.ListAgentsQuery) (*usecase.Page[*entity.AgentProfile], error) {
	page, limit, offset := clampPage(query.Page, query.Limit, s.cfg.Pagination)

	role := entity.RoleAgent
	accounts, total, err := s.accountRepo.List(ctx, repository.ListAccountsFilter{
		Role:   &role,
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	accountIDs := make([]uuid.UUID, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
	}

	profiles, err := s.agentRepo.FindByAccountIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	byAccount := make(map[uuid.UUID]*entity.AgentProfile, len(profiles))
	for _, profile := range profiles {
		byAccount[profile.AccountID] = profile
	}

	items := make([]*entity.AgentProfile, 0, len(accounts))
	for _, account := range accounts {
		if profile, ok := byAccount[account.ID]; ok {
			items = append(items, profile)

			continue
		}
		items = append(items, &entity.AgentProfile{
			AccountID: account.ID,
			Name:      account.Name,
			Email:     account.Email,
			Phone:     account.Phone,
			AvatarURL: account.ProfilePicture,
			Title:     "Agent",
			Status:    entity.AgentActive,
		})
	}

	return usecase.NewPage(items, page, limit, total), nil
}

// GetBySlug returns the public profile behind a slug.
func (s *agentService) GetBySlug(ctx context.Context, slug string) (*entity.AgentProfile, error) {
	profile, err := s.agentRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, domainerrors.ErrAgentNotFound
		}

		return nil, err
	}

	return profile, nil
}

// Create registers a new agent account together with its profile.
func (s *agentService) Create(ctx context.Context, input *usecase.CreateAgentInput) (*entity.AgentProfile, error) {
	exists, err := s.accountRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrAccountExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	avatar := ""
	if input.Avatar != nil {
		avatar, _, err = s.reconciler.Single(ctx, "", nil, input.Avatar, folderProfiles)
		if err != nil {
			return nil, err
		}
	}

	account := &entity.Account{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   hash,
		ProfilePicture: avatar,
		Role:           entity.RoleAgent,
		Status:         entity.AccountActive,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrAccountExists
		}

		return nil, err
	}

	profile, err := s.findOrCreateProfile(ctx, account)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Title != "" {
		profile.Title = input.Title
		changed = true
	}
	if input.Location != "" {
		profile.Location = input.Location
		changed = true
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
		changed = true
	}
	if changed {
		if err := s.agentRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// UpdateByID is the admin edit of another agent, restricted to status.
func (s *agentService) UpdateByID(ctx context.Context, accountID uuid.UUID, status entity.AgentStatus) (*entity.AgentProfile, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid agent status")
	}

	profile, err := s.agentRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, domainerrors.ErrAgentNotFound
		}

		return nil, err
	}

	profile.Status = status
	if err := s.agentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UpdateStatus sets the status of the profile identified by account id or
// slug. A nil status toggles between active and inactive.
func (s *agentService) UpdateStatus(ctx context.Context, ref string, status *entity.AgentStatus) (*entity.AgentProfile, error) {
	var profile *entity.AgentProfile
	var err error

	if accountID, parseErr := uuid.Parse(ref); parseErr == nil {
		profile, err = s.agentRepo.FindByAccountID(ctx, accountID)
	} else {
		profile, err = s.agentRepo.FindBySlug(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return nil, domainerrors.ErrAgentNotFound
		}

		return nil, err
	}

	if status != nil {
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid agent status")
		}
		profile.Status = *status
	} else if profile.Status == entity.AgentActive {
		profile.Status = entity.AgentInactive
	} else {
		profile.Status = entity.AgentActive
	}

	if err := s.agentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// findOrCreateProfile loads the profile backing an account, creating it
// lazily on first access.
func (s *agentService) findOrCreateProfile(ctx context.Context, account *entity.Account) (*entity.AgentProfile, error) {
	profile, err := s.agentRepo.FindByAccountID(ctx, account.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrAgentNotFound) {
		return nil, err
	}

	return createAgentProfile(ctx, s.agentRepo, account)
}
