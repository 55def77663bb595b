package service

import (
	"time"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      entity.Role
}

// TokenService issues and verifies the signed, time-limited tokens used for
// cookie-based authentication.
type TokenService interface {
	// Generate creates a signed token identifying the account.
	Generate(accountID uuid.UUID, role entity.Role) (string, error)
	// Validate verifies the token signature and expiry and returns its claims.
	Validate(token string) (*TokenClaims, error)
	// TTL returns the configured token lifetime, used for the cookie expiry.
	TTL() time.Duration
}
