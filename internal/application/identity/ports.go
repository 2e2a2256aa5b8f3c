package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/seorganiza/backend/internal/domain/identity"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenPair holds one access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenClaims are the validated contents of a token
type TokenClaims struct {
	UserID    uuid.UUID
	Username  string
	Superuser bool
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager issues and validates token pairs
type TokenManager interface {
	IssuePair(user *identity.User) (*TokenPair, error)
	ParseAccess(token string) (*TokenClaims, error)
	ParseRefresh(token string) (*TokenClaims, error)
}

// TokenBlacklist revokes tokens by ID until they would have expired
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
