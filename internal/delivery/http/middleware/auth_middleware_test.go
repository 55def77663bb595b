package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"estate/config"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	claims *service.TokenClaims
	err    error
}

func (s stubTokens) Generate(uuid.UUID, entity.Role) (string, error) { return "", nil }

func (s stubTokens) Validate(string) (*service.TokenClaims, error) { return s.claims, s.err }

func (s stubTokens) TTL() time.Duration { return time.Hour }

type stubAccounts struct {
	account *entity.Account
	err     error
}

func (s stubAccounts) Create(context.Context, *entity.Account) error { return nil }

func (s stubAccounts) FindByID(context.Context, uuid.UUID) (*entity.Account, error) {
	return s.account, s.err
}

func (s stubAccounts) FindByLogin(context.Context, string) (*entity.Account, error) {
	return s.account, s.err
}

func (s stubAccounts) ExistsByEmailOrPhone(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s stubAccounts) Update(context.Context, *entity.Account) error { return nil }

func (s stubAccounts) Delete(context.Context, uuid.UUID) error { return nil }

func (s stubAccounts) List(context.Context, repository.ListAccountsFilter) ([]*entity.Account, int64, error) {
	return nil, 0, nil
}

func (s stubAccounts) CountByRole(context.Context, entity.Role) (int64, error) { return 0, nil }

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{CookieName: "token"}

	return cfg
}

func newAuthContext(t *testing.T, configure func(*http.Request)) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	if configure != nil {
		configure(req)
	}

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func activeAccount(role entity.Role) *entity.Account {
	return &entity.Account{
		ID:     uuid.New(),
		Role:   role,
		Status: entity.AccountActive,
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	m := NewAuthMiddleware(stubTokens{}, stubAccounts{}, testAuthConfig())
	c := newAuthContext(t, nil)

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthenticateCookieToken(t *testing.T) {
	account := activeAccount(entity.RoleAgent)
	m := NewAuthMiddleware(
		stubTokens{claims: &service.TokenClaims{AccountID: account.ID, Role: account.Role}},
		stubAccounts{account: account},
		testAuthConfig(),
	)
	c := newAuthContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "signed"})
	})

	called := false
	err := m.Authenticate(func(c echo.Context) error {
		called = true
		assert.Equal(t, account.ID, c.Get(ContextAccountID))
		assert.Equal(t, entity.RoleAgent, c.Get(ContextRole))

		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthenticateBearerFallback(t *testing.T) {
	account := activeAccount(entity.RoleUser)
	m := NewAuthMiddleware(
		stubTokens{claims: &service.TokenClaims{AccountID: account.ID, Role: account.Role}},
		stubAccounts{account: account},
		testAuthConfig(),
	)
	c := newAuthContext(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer signed")
	})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.NoError(t, err)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	m := NewAuthMiddleware(
		stubTokens{err: domainerrors.ErrUnauthorized},
		stubAccounts{},
		testAuthConfig(),
	)
	c := newAuthContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthenticateBlockedAccount(t *testing.T) {
	account := activeAccount(entity.RoleUser)
	account.Status = entity.AccountBlocked
	m := NewAuthMiddleware(
		stubTokens{claims: &service.TokenClaims{AccountID: account.ID, Role: account.Role}},
		stubAccounts{account: account},
		testAuthConfig(),
	)
	c := newAuthContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "signed"})
	})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrAccountBlocked)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	m := NewAuthMiddleware(
		stubTokens{claims: &service.TokenClaims{AccountID: uuid.New(), Role: entity.RoleUser}},
		stubAccounts{err: repository.ErrAccountNotFound},
		testAuthConfig(),
	)
	c := newAuthContext(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "signed"})
	})

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestRequireRoles(t *testing.T) {
	m := NewAuthMiddleware(stubTokens{}, stubAccounts{}, testAuthConfig())
	next := func(echo.Context) error { return nil }

	c := newAuthContext(t, nil)
	c.Set(ContextRole, entity.RoleAgent)
	err := m.RequireRole(entity.RoleAdmin)(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	c = newAuthContext(t, nil)
	c.Set(ContextRole, entity.RoleAgent)
	err = m.RequireRoles(entity.RoleAdmin, entity.RoleAgent)(next)(c)
	assert.NoError(t, err)

	// missing role means Authenticate never ran
	c = newAuthContext(t, nil)
	err = m.RequireRole(entity.RoleAdmin)(next)(c)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
