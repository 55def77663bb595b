package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"estate/config"
	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/media"

	"github.com/google/uuid"
)

const testHost = "https://cdn.example.test/estate-media/"

func testPaginationConfig() *config.Config {
	return &config.Config{
		Pagination: &config.PaginationConfig{DefaultPageSize: 10, MaxPageSize: 100},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- media store fake ---

// fakeMediaStore records remote calls and derives deterministic URLs so
// tests can predict reconciled state.
type fakeMediaStore struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (s *fakeMediaStore) Upload(_ context.Context, _ []byte, folder, filename string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads = append(s.uploads, filename)

	return testHost + folder + "/" + filename, nil
}

func (s *fakeMediaStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, ref)

	return nil
}

func (s *fakeMediaStore) RefFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, testHost)
}

func (s *fakeMediaStore) remoteCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.uploads) + len(s.deletes)
}

func (s *fakeMediaStore) sortedDeletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]string(nil), s.deletes...)
	sort.Strings(out)

	return out
}

func newFakeReconciler(store *fakeMediaStore) *media.Reconciler {
	return media.NewReconciler(store, testLogger())
}

// --- password hasher / token fakes ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

type fakeTokenService struct{}

func (fakeTokenService) Generate(accountID uuid.UUID, role entity.Role) (string, error) {
	return "token:" + accountID.String() + ":" + role.String(), nil
}

func (fakeTokenService) Validate(string) (*service.TokenClaims, error) { return nil, nil }

func (fakeTokenService) TTL() time.Duration { return 30 * 24 * time.Hour }

// --- account repository fake ---

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == account.Email || existing.Phone == account.Phone {
			return repository.ErrDuplicateKey
		}
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	clone := *account

	return &clone, nil
}

func (r *fakeAccountRepo) FindByLogin(_ context.Context, loginID string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == loginID || account.Phone == loginID {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email || account.Phone == phone {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	clone := *account
	r.accounts[account.ID] = &clone

	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, id)

	return nil
}

func (r *fakeAccountRepo) List(_ context.Context, filter repository.ListAccountsFilter) ([]*entity.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Account
	for _, account := range r.accounts {
		if account.ID == filter.ExcludeID {
			continue
		}
		if filter.Role != nil && account.Role != *filter.Role {
			continue
		}
		clone := *account
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (r *fakeAccountRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, account := range r.accounts {
		if account.Role == role {
			count++
		}
	}

	return count, nil
}

// --- agent repository fake ---

type fakeAgentRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.AgentProfile
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{profiles: make(map[uuid.UUID]*entity.AgentProfile)}
}

func (r *fakeAgentRepo) Create(_ context.Context, profile *entity.AgentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.profiles {
		if existing.Slug == profile.Slug || existing.AccountID == profile.AccountID {
			return repository.ErrDuplicateKey
		}
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	clone := *profile
	r.profiles[profile.ID] = &clone

	return nil
}

func (r *fakeAgentRepo) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.AgentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, profile := range r.profiles {
		if profile.AccountID == accountID {
			clone := *profile

			return &clone, nil
		}
	}

	return nil, repository.ErrAgentNotFound
}

func (r *fakeAgentRepo) FindBySlug(_ context.Context, slug string) (*entity.AgentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, profile := range r.profiles {
		if profile.Slug == slug {
			clone := *profile

			return &clone, nil
		}
	}

	return nil, repository.ErrAgentNotFound
}

func (r *fakeAgentRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, profile := range r.profiles {
		if profile.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeAgentRepo) Update(_ context.Context, profile *entity.AgentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; !ok {
		return repository.ErrAgentNotFound
	}
	profile.UpdatedAt = time.Now()
	clone := *profile
	r.profiles[profile.ID] = &clone

	return nil
}

func (r *fakeAgentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return repository.ErrAgentNotFound
	}
	delete(r.profiles, id)

	return nil
}

func (r *fakeAgentRepo) FindByAccountIDs(_ context.Context, accountIDs []uuid.UUID) ([]*entity.AgentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[uuid.UUID]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	var matched []*entity.AgentProfile
	for _, profile := range r.profiles {
		if _, ok := wanted[profile.AccountID]; ok {
			clone := *profile
			matched = append(matched, &clone)
		}
	}

	return matched, nil
}

// --- listing repository fake ---

type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*entity.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.listings {
		if existing.Slug == listing.Slug {
			return repository.ErrDuplicateKey
		}
	}
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	clone := *listing
	r.listings[listing.ID] = &clone

	return nil
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	clone := *listing

	return &clone, nil
}

func (r *fakeListingRepo) FindBySlug(_ context.Context, slug string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, listing := range r.listings {
		if listing.Slug == slug {
			clone := *listing

			return &clone, nil
		}
	}

	return nil, repository.ErrListingNotFound
}

func (r *fakeListingRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, listing := range r.listings {
		if listing.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeListingRepo) Update(_ context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ID]; !ok {
		return repository.ErrListingNotFound
	}
	listing.UpdatedAt = time.Now()
	clone := *listing
	r.listings[listing.ID] = &clone

	return nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return repository.ErrListingNotFound
	}
	delete(r.listings, id)

	return nil
}

func (r *fakeListingRepo) List(_ context.Context, filter repository.ListListingsFilter) ([]*entity.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Listing
	for _, listing := range r.listings {
		if filter.Category != "" && !strings.EqualFold(listing.Category, filter.Category) {
			continue
		}
		if filter.CreatedBy != uuid.Nil && listing.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Featured != nil && listing.Featured != *filter.Featured {
			continue
		}
		if filter.IsNew != nil && listing.IsNew != *filter.IsNew {
			continue
		}
		clone := *listing
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (r *fakeListingRepo) FindByCreator(_ context.Context, accountID uuid.UUID) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Listing
	for _, listing := range r.listings {
		if listing.CreatedBy == accountID {
			clone := *listing
			matched = append(matched, &clone)
		}
	}

	return matched, nil
}

func (r *fakeListingRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.listings)), nil
}

func (r *fakeListingRepo) CountByCreator(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, listing := range r.listings {
		if listing.CreatedBy == accountID {
			count++
		}
	}

	return count, nil
}
