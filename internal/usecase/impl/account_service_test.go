package impl

import (
	"context"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/media"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	service     usecase.AccountUsecase
	accountRepo *fakeAccountRepo
	agentRepo   *fakeAgentRepo
	listingRepo *fakeListingRepo
	store       *fakeMediaStore
}

func newAccountFixture() *accountFixture {
	store := &fakeMediaStore{}
	accountRepo := newFakeAccountRepo()
	agentRepo := newFakeAgentRepo()
	listingRepo := newFakeListingRepo()

	return &accountFixture{
		service: NewAccountService(
			accountRepo, agentRepo, listingRepo,
			fakeHasher{}, fakeTokenService{},
			newFakeReconciler(store),
			testPaginationConfig(), testLogger(),
		),
		accountRepo: accountRepo,
		agentRepo:   agentRepo,
		listingRepo: listingRepo,
		store:       store,
	}
}

func (f *accountFixture) signup(t *testing.T, name, email, phone, role string) *entity.Account {
	t.Helper()

	result, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)

	return result.Account
}

func TestSignupIssuesTokenAndDefaultsRole(t *testing.T) {
	f := newAccountFixture()

	result, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Jane Doe",
		Email:    "jane@example.test",
		Phone:    "+971500000001",
		Password: "secret123",
		Role:     "admin", // must not be honored
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, result.Account.Role)
	assert.Equal(t, entity.AccountActive, result.Account.Status)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "secret123", result.Account.PasswordHash)
}

func TestSignupDuplicateRejected(t *testing.T) {
	f := newAccountFixture()
	f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	_, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Other",
		Email:    "jane@example.test",
		Phone:    "+971500000099",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountExists)
}

func TestSignupAgentCreatesProfile(t *testing.T) {
	f := newAccountFixture()

	account := f.signup(t, "Omar Khalid", "omar@example.test", "+971500000002", "agent")

	assert.Equal(t, entity.RoleAgent, account.Role)
	profile, err := f.agentRepo.FindByAccountID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "omar-khalid", profile.Slug)
	assert.Equal(t, "Omar Khalid", profile.Name)
	assert.Equal(t, "Agent", profile.Title)
	assert.Equal(t, entity.AgentActive, profile.Status)
}

func TestSignupWithPictureUploads(t *testing.T) {
	f := newAccountFixture()

	result, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Jane",
		Email:    "jane@example.test",
		Phone:    "+971500000001",
		Password: "secret123",
		Picture:  &media.Attachment{Filename: "me.jpg", Data: []byte("x")},
	})

	require.NoError(t, err)
	assert.Equal(t, testHost+folderProfiles+"/me.jpg", result.Account.ProfilePicture)
}

func TestLoginByEmailOrPhone(t *testing.T) {
	f := newAccountFixture()
	f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	for _, loginID := range []string{"jane@example.test", "+971500000001"} {
		result, err := f.service.Login(context.Background(), &usecase.LoginInput{
			LoginID:  loginID,
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAccountFixture()
	f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	_, err := f.service.Login(context.Background(), &usecase.LoginInput{
		LoginID:  "jane@example.test",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	f := newAccountFixture()
	account := f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")
	_, err := f.service.UpdateStatus(context.Background(), account.ID, entity.AccountBlocked)
	require.NoError(t, err)

	_, err = f.service.Login(context.Background(), &usecase.LoginInput{
		LoginID:  "jane@example.test",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountBlocked)
}

func TestLoginAgentStatusGate(t *testing.T) {
	tests := []struct {
		name    string
		status  entity.AgentStatus
		wantErr error
	}{
		{name: "inactive", status: entity.AgentInactive, wantErr: domainerrors.ErrAgentInactive},
		{name: "suspended", status: entity.AgentSuspended, wantErr: domainerrors.ErrAgentSuspended},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAccountFixture()
			account := f.signup(t, "Omar", "omar@example.test", "+971500000002", "agent")

			profile, err := f.agentRepo.FindByAccountID(context.Background(), account.ID)
			require.NoError(t, err)
			profile.Status = tt.status
			require.NoError(t, f.agentRepo.Update(context.Background(), profile))

			_, err = f.service.Login(context.Background(), &usecase.LoginInput{
				LoginID:  "omar@example.test",
				Password: "secret123",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetProfileLazyCreatesAgentProfile(t *testing.T) {
	f := newAccountFixture()
	account := f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	// promote to agent without a profile
	_, err := f.service.UpdateRole(context.Background(), account.ID, entity.RoleAgent)
	require.NoError(t, err)

	view, err := f.service.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, view.AgentProfile)
	assert.Equal(t, "jane", view.AgentProfile.Slug)

	_, err = f.agentRepo.FindByAccountID(context.Background(), account.ID)
	assert.NoError(t, err)
}

func TestUpdateProfileReplacesPictureAndMirrors(t *testing.T) {
	f := newAccountFixture()

	result, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Omar",
		Email:    "omar@example.test",
		Phone:    "+971500000002",
		Password: "secret123",
		Role:     "agent",
		Picture:  &media.Attachment{Filename: "old.jpg", Data: []byte("x")},
	})
	require.NoError(t, err)
	account := result.Account

	view, err := f.service.UpdateProfile(context.Background(), account.ID, &usecase.UpdateAccountInput{
		Name:    "Omar K.",
		Picture: &media.Attachment{Filename: "new.jpg", Data: []byte("y")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Omar K.", view.Account.Name)
	assert.Equal(t, testHost+folderProfiles+"/new.jpg", view.Account.ProfilePicture)
	// old picture deleted exactly once
	assert.Equal(t, []string{folderProfiles + "/old.jpg"}, f.store.deletes)

	// mirrored onto the agent profile
	require.NotNil(t, view.AgentProfile)
	assert.Equal(t, "Omar K.", view.AgentProfile.Name)
	assert.Equal(t, view.Account.ProfilePicture, view.AgentProfile.AvatarURL)
}

func TestUpdateProfileNoMediaChangeNoRemoteCalls(t *testing.T) {
	f := newAccountFixture()
	account := f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	_, err := f.service.UpdateProfile(context.Background(), account.ID, &usecase.UpdateAccountInput{
		Name: "Jane Updated",
	})

	require.NoError(t, err)
	assert.Zero(t, f.store.remoteCalls())
}

func TestListExcludesCaller(t *testing.T) {
	f := newAccountFixture()
	admin := f.signup(t, "Admin", "admin@example.test", "+971500000000", "user")
	f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")
	f.signup(t, "Omar", "omar@example.test", "+971500000002", "agent")

	page, err := f.service.List(context.Background(), admin.ID, usecase.ListAccountsQuery{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 1, page.Pages)
	for _, account := range page.Items {
		assert.NotEqual(t, admin.ID, account.ID)
	}
}

func TestDeleteCascadesMediaAndRows(t *testing.T) {
	f := newAccountFixture()

	result, err := f.service.Signup(context.Background(), &usecase.SignupInput{
		Name:     "Omar",
		Email:    "omar@example.test",
		Phone:    "+971500000002",
		Password: "secret123",
		Role:     "agent",
		Picture:  &media.Attachment{Filename: "avatar.jpg", Data: []byte("x")},
	})
	require.NoError(t, err)
	account := result.Account

	listing := &entity.Listing{
		Slug:      "marina-tower",
		Title:     "Marina Tower",
		HeroImage: testHost + folderProperties + "/hero.jpg",
		Gallery:   []string{testHost + folderProperties + "/g1.jpg", "https://elsewhere.test/ext.jpg"},
		Brochures: []entity.Brochure{{Title: "Plan", FileURL: testHost + folderFiles + "/plan.pdf"}},
		CreatedBy: account.ID,
	}
	require.NoError(t, f.listingRepo.Create(context.Background(), listing))

	require.NoError(t, f.service.Delete(context.Background(), account.ID))

	_, err = f.accountRepo.FindByID(context.Background(), account.ID)
	assert.Error(t, err)
	_, err = f.agentRepo.FindByAccountID(context.Background(), account.ID)
	assert.Error(t, err)
	_, err = f.listingRepo.FindByID(context.Background(), listing.ID)
	assert.Error(t, err)

	// avatar uploaded at signup mirrors into the profile, so it is purged once
	// via the profile sweep; the external gallery URL is never touched
	assert.Equal(t, []string{
		folderFiles + "/plan.pdf",
		folderProfiles + "/avatar.jpg",
		folderProperties + "/g1.jpg",
		folderProperties + "/hero.jpg",
	}, f.store.sortedDeletes())
}

func TestDashboardStats(t *testing.T) {
	f := newAccountFixture()
	admin := f.signup(t, "Admin", "admin@example.test", "+971500000000", "user")
	agent := f.signup(t, "Omar", "omar@example.test", "+971500000002", "agent")
	f.signup(t, "Jane", "jane@example.test", "+971500000001", "user")

	require.NoError(t, f.listingRepo.Create(context.Background(), &entity.Listing{
		Slug: "one", Title: "One", CreatedBy: agent.ID,
	}))
	require.NoError(t, f.listingRepo.Create(context.Background(), &entity.Listing{
		Slug: "two", Title: "Two", CreatedBy: uuid.New(),
	}))

	adminStats, err := f.service.DashboardStats(context.Background(), admin.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminStats.TotalProperties)
	assert.Equal(t, int64(1), adminStats.TotalAgents)
	assert.Equal(t, int64(2), adminStats.TotalUsers)

	agentStats, err := f.service.DashboardStats(context.Background(), agent.ID, entity.RoleAgent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), agentStats.MyProperties)
}
