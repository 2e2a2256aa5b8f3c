package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/seorganiza/backend/internal/domain/identity"
)

// CreateUserInput carries the data needed to register a user
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	Superuser bool
}

// UserResponse is the outward representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Superuser   bool       `json:"superuser"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Superuser:   u.Superuser,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
