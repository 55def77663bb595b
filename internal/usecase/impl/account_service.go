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
	"estate/internal/util"

	"github.com/google/uuid"
)

// accountService implements usecase.AccountUsecase.
type accountService struct {
	accountRepo repository.AccountRepository
	agentRepo   repository.AgentRepository
	listingRepo repository.ListingRepository
	hasher      service.PasswordHasher
	tokens      service.TokenService
	reconciler  *media.Reconciler
	cfg         *config.Config
	logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(
	accountRepo repository.AccountRepository,
	agentRepo repository.AgentRepository,
	listingRepo repository.ListingRepository,
	hasher service.PasswordHasher,
	tokens service.TokenService,
	reconciler *media.Reconciler,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		accountRepo: accountRepo,
		agentRepo:   agentRepo,
		listingRepo: listingRepo,
		hasher:      hasher,
		tokens:      tokens,
		reconciler:  reconciler,
		cfg:         cfg,
		logger:      logger,
	}
}

// Signup registers a new account, uploading the optional profile picture and
// creating the agent profile up front for agent-role signups.
func (s *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthResult, error) {
	exists, err := s.accountRepo.ExistsByEmailOrPhone(ctx, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrAccountExists
	}

	// Admin can never be self-assigned.
	role := entity.Role(input.Role)
	if role != entity.RoleAgent {
		role = entity.RoleUser
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	picture := ""
	if input.Picture != nil {
		picture, _, err = s.reconciler.Single(ctx, "", nil, input.Picture, folderProfiles)
		if err != nil {
			return nil, domainerrors.ErrRemoteService.WrapMessage(err.Error())
		}
	}

	account := &entity.Account{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		PasswordHash:   hash,
		ProfilePicture: picture,
		Role:           role,
		Status:         entity.AccountActive,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrAccountExists
		}

		return nil, err
	}

	if role == entity.RoleAgent {
		if _, err := createAgentProfile(ctx, s.agentRepo, account); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	return &usecase.AuthResult{Account: account, Token: token}, nil
}

// Login authenticates by email or phone. Blocked accounts and inactive or
// suspended agents are rejected with distinct messages.
func (s *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	account, err := s.accountRepo.FindByLogin(ctx, input.LoginID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, err
	}

	if !s.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if account.Status == entity.AccountBlocked {
		return nil, domainerrors.ErrAccountBlocked
	}

	if account.Role == entity.RoleAgent {
		profile, err := s.agentRepo.FindByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, repository.ErrAgentNotFound) {
			return nil, err
		}
		if profile != nil {
			switch profile.Status {
			case entity.AgentInactive:
				return nil, domainerrors.ErrAgentInactive
			case entity.AgentSuspended:
				return nil, domainerrors.ErrAgentSuspended
			}
		}
	}

	token, err := s.tokens.Generate(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}

	return &usecase.AuthResult{Account: account, Token: token}, nil
}

// GetProfile returns the caller's account merged with its agent profile,
// creating the profile lazily for agent-role accounts.
func (s *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.ProfileView, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}

	view := &usecase.ProfileView{Account: account}
	if account.Role != entity.RoleAgent {
		return view, nil
	}

	profile, err := s.agentRepo.FindByAccountID(ctx, account.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrAgentNotFound) {
			return nil, err
		}
		profile, err = createAgentProfile(ctx, s.agentRepo, account)
		if err != nil {
			return nil, err
		}
	}
	view.AgentProfile = profile

	return view, nil
}

// UpdateProfile applies a partial self-update and mirrors identity changes
// to the paired agent profile so the two views never diverge.
func (s *accountService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.ProfileView, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

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
		account.Name = input.Name
	}
	if input.Email != "" {
		account.Email = input.Email
	}
	if input.Phone != "" {
		account.Phone = input.Phone
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "hash password")
		}
		account.PasswordHash = hash
	}

	picture, _, err := s.reconciler.Single(ctx, account.ProfilePicture, input.ProposedPicture, input.Picture, folderProfiles)
	if err != nil {
		return nil, domainerrors.ErrRemoteService.WrapMessage(err.Error())
	}
	account.ProfilePicture = picture

	if err := s.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrAccountExists
		}

		return nil, err
	}

	view := &usecase.ProfileView{Account: account}
	if account.Role != entity.RoleAgent {
		return view, nil
	}

	profile, err := s.agentRepo.FindByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAgentNotFound) {
			return view, nil
		}

		return nil, err
	}

	mirrorAccount(account, profile)
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
	// Plain field write; portfolio media reconciliation only runs through
	// the agent self-update path.
	if portfolio != nil {
		profile.Portfolio = *portfolio
	}
	if err := s.agentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	view.AgentProfile = profile

	return view, nil
}

// List pages all accounts except the caller's own.
func (s *accountService) List(ctx context.Context, callerID uuid.UUID, query usecase.ListAccountsQuery) (*usecase.Page[*entity.Account], error) {
	page, limit, offset := clampPage(query.Page, query.Limit, s.cfg.Pagination)

	filter := repository.ListAccountsFilter{
		ExcludeID: callerID,
		Offset:    offset,
		Limit:     limit,
	}
	if query.Role != "" {
		role := entity.Role(query.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid role filter")
		}
		filter.Role = &role
	}

	accounts, total, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return usecase.NewPage(accounts, page, limit, total), nil
}

// UpdateStatus sets an account's status. Admin only.
func (s *accountService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AccountStatus) (*entity.Account, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid account status")
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}

	account.Status = status
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateRole sets an account's role. Admin only.
func (s *accountService) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.Account, error) {
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithMessage("Invalid role")
	}

	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, err
	}

	account.Role = role
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Delete removes an account and everything it owns: the agent profile and
// its media, every listing it created and their media, and its own picture.
// The media sweep is sequential and best-effort; only row deletions fail the
// operation.
func (s *accountService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return err
	}

	profile, err := s.agentRepo.FindByAccountID(ctx, account.ID)
	if err != nil && !errors.Is(err, repository.ErrAgentNotFound) {
		return err
	}

	listings, err := s.listingRepo.FindByCreator(ctx, account.ID)
	if err != nil {
		return err
	}

	// One sweep over everything the account owns. The profile avatar
	// mirrors the account picture, so the combined purge deletes shared
	// references exactly once.
	refs := []string{account.ProfilePicture}
	if profile != nil {
		refs = append(refs, profile.AvatarURL)
		for _, item := range profile.Portfolio {
			refs = append(refs, item.URL)
		}
	}
	for _, listing := range listings {
		refs = append(refs, listingMediaRefs(listing)...)
	}
	s.reconciler.Purge(ctx, refs...)

	if profile != nil {
		if err := s.agentRepo.Delete(ctx, profile.ID); err != nil {
			return err
		}
	}
	for _, listing := range listings {
		if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
			return err
		}
	}

	if err := s.accountRepo.Delete(ctx, account.ID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return err
	}

	s.logger.Info("account deleted",
		"accountID", account.ID,
		"listingsRemoved", len(listings),
		"hadAgentProfile", profile != nil,
	)

	return nil
}

// DashboardStats summarizes the caller's visible slice of the system.
func (s *accountService) DashboardStats(ctx context.Context, callerID uuid.UUID, role entity.Role) (*usecase.DashboardStats, error) {
	stats := &usecase.DashboardStats{}

	if role == entity.RoleAdmin {
		total, err := s.listingRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		agents, err := s.accountRepo.CountByRole(ctx, entity.RoleAgent)
		if err != nil {
			return nil, err
		}
		users, err := s.accountRepo.CountByRole(ctx, entity.RoleUser)
		if err != nil {
			return nil, err
		}
		stats.TotalProperties = total
		stats.TotalAgents = agents
		stats.TotalUsers = users

		return stats, nil
	}

	mine, err := s.listingRepo.CountByCreator(ctx, callerID)
	if err != nil {
		return nil, err
	}
	stats.MyProperties = mine

	return stats, nil
}

// createAgentProfile builds and persists the agent profile backing an
// account, mirroring identity fields and picking a unique slug.
func createAgentProfile(ctx context.Context, agentRepo repository.AgentRepository, account *entity.Account) (*entity.AgentProfile, error) {
	slug := util.Slugify(account.Name)
	taken, err := agentRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		slug = util.SlugWithSuffix(slug)
	}

	profile := &entity.AgentProfile{
		AccountID: account.ID,
		Slug:      slug,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		AvatarURL: account.ProfilePicture,
		Title:     "Agent",
		Status:    entity.AgentActive,
	}
	if err := agentRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrSlugConflict
		}

		return nil, err
	}

	return profile, nil
}

// mirrorAccount copies the identity fields an account owns onto its profile.
func mirrorAccount(account *entity.Account, profile *entity.AgentProfile) {
	profile.Name = account.Name
	profile.Email = account.Email
	profile.Phone = account.Phone
	profile.AvatarURL = account.ProfilePicture
}

// listingMediaRefs collects every media reference a listing owns.
func listingMediaRefs(listing *entity.Listing) []string {
	refs := make([]string, 0, 2+len(listing.Gallery)+len(listing.Brochures))
	refs = append(refs, listing.HeroImage)
	refs = append(refs, listing.Gallery...)
	for _, brochure := range listing.Brochures {
		refs = append(refs, brochure.FileURL)
	}

	return refs
}
