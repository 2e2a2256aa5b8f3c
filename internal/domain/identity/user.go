package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/seorganiza/backend/internal/domain/shared"
)

// User is the aggregate root for an application account. Only
// superusers may manage other accounts.
type User struct {
	shared.BaseAggregateRoot
	Username     string `gorm:"not null;uniqueIndex;size:150"`
	Email        string `gorm:"size:254"`
	PasswordHash string `gorm:"not null;size:255"`
	Superuser    bool   `gorm:"not null;default:false"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with the given credentials. The password hash
// is produced by the caller; the domain never sees plaintext passwords.
func NewUser(username, email, passwordHash string, superuser bool) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username cannot be empty")
	}
	if len(username) > 150 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username cannot exceed 150 characters")
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid email address")
		}
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      passwordHash,
		Superuser:         superuser,
		Active:            true,
	}, nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_INPUT", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.IncrementVersion()
}

// Deactivate disables the account without deleting it
func (u *User) Deactivate() {
	u.Active = false
	u.IncrementVersion()
}

// CanLogin reports whether the account may authenticate
func (u *User) CanLogin() bool {
	return u.Active
}
