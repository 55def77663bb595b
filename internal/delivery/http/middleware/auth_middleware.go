// Package middleware holds the authentication gate and the error mapper for
// the HTTP delivery.
package middleware

import (
	"slices"
	"strings"

	"estate/config"
	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/errors"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for handlers to read.
const (
	ContextAccountID = "accountID"
	ContextRole      = "role"
)

// AuthMiddleware authenticates requests from the token cookie (with an
// Authorization Bearer fallback) and enforces role requirements.
type AuthMiddleware struct {
	tokens   service.TokenService
	accounts repository.AccountRepository
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens service.TokenService, accounts repository.AccountRepository, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts, cfg: cfg}
}

// Authenticate validates the access token and loads the caller's identity
// into the request context. Blocked accounts are rejected even with a valid
// token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.extractToken(c)
		if token == "" {
			return domainerrors.ErrUnauthorized
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		account, err := m.accounts.FindByID(c.Request().Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrUnauthorized
			}

			return err
		}
		if account.Status == entity.AccountBlocked {
			return domainerrors.ErrAccountBlocked
		}

		// The persisted role wins over the token claim so role changes take
		// effect without re-login.
		c.Set(ContextAccountID, account.ID)
		c.Set(ContextRole, account.Role)

		return next(c)
	}
}

// RequireRole restricts a route to one role. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return m.RequireRoles(role)
}

// RequireRoles restricts a route to any of the given roles.
func (m *AuthMiddleware) RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextRole).(entity.Role)
			if !ok || !slices.Contains(roles, role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(m.cfg.Auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		return token
	}

	return ""
}
