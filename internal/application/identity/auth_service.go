package identity

import (
	"context"
	"errors"
	"time"

	"github.com/seorganiza/backend/internal/domain/identity"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// AuthService handles login, logout and token refresh
type AuthService struct {
	userRepo  identity.UserRepository
	tokens    TokenManager
	blacklist TokenBlacklist
	hasher    PasswordHasher
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo identity.UserRepository, tokens TokenManager, blacklist TokenBlacklist, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		hasher:    hasher,
	}
}

// Login verifies the credentials and issues a token pair. Unknown
// users and wrong passwords produce the same error so the response
// never reveals which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.tokens.IssuePair(user)
}

// Refresh exchanges a valid refresh token for a new pair. The used
// refresh token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Refresh token has been revoked")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Account no longer exists")
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}

	if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return nil, err
	}
	return s.tokens.IssuePair(user)
}

// Logout revokes the given tokens until their natural expiry. Tokens
// that fail to parse are ignored so logout always succeeds.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.tokens.ParseAccess(accessToken); err == nil {
		if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
			return err
		}
	}
	if refreshToken == "" {
		return nil
	}
	if claims, err := s.tokens.ParseRefresh(refreshToken); err == nil {
		if err := s.blacklist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
			return err
		}
	}
	return nil
}
