package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appidentity "github.com/seorganiza/backend/internal/application/identity"
	"github.com/seorganiza/backend/internal/domain/identity"
	"github.com/seorganiza/backend/internal/infrastructure/config"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// JWTService issues and validates HS256-signed token pairs
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
}

// NewJWTService creates a JWT service from configuration
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
	}
}

type claims struct {
	Username  string `json:"username"`
	Superuser bool   `json:"superuser"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// IssuePair signs a fresh access/refresh pair for the user. Each token
// carries its own JTI so either can be revoked independently.
func (s *JWTService) IssuePair(user *identity.User) (*appidentity.TokenPair, error) {
	access, err := s.sign(user, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &appidentity.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// ParseAccess validates an access token and returns its claims
func (s *JWTService) ParseAccess(token string) (*appidentity.TokenClaims, error) {
	return s.parse(token, tokenTypeAccess)
}

// ParseRefresh validates a refresh token and returns its claims
func (s *JWTService) ParseRefresh(token string) (*appidentity.TokenClaims, error) {
	return s.parse(token, tokenTypeRefresh)
}

func (s *JWTService) sign(user *identity.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Username:  user.Username,
		Superuser: user.Superuser,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *JWTService) parse(tokenString, wantType string) (*appidentity.TokenClaims, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if c.TokenType != wantType {
		return nil, fmt.Errorf("expected %s token, got %s", wantType, c.TokenType)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}

	return &appidentity.TokenClaims{
		UserID:    userID,
		Username:  c.Username,
		Superuser: c.Superuser,
		TokenID:   c.ID,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
