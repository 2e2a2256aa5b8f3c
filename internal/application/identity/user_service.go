package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/seorganiza/backend/internal/domain/identity"
	"github.com/seorganiza/backend/internal/domain/shared"
)

// minPasswordLength matches the shortest password accepted at registration
const minPasswordLength = 8

// UserService handles account management. Every operation names the
// acting user explicitly and is restricted to superusers.
type UserService struct {
	userRepo identity.UserRepository
	hasher   PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// CreateUser registers a new account on behalf of a superuser
func (s *UserService) CreateUser(ctx context.Context, actingUserID uuid.UUID, input CreateUserInput) (*UserResponse, error) {
	if err := s.requireSuperuser(ctx, actingUserID); err != nil {
		return nil, err
	}

	if len(input.Password) < minPasswordLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.Username, input.Email, hash, input.Superuser)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers retrieves all accounts on behalf of a superuser
func (s *UserService) ListUsers(ctx context.Context, actingUserID uuid.UUID, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	if err := s.requireSuperuser(ctx, actingUserID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetUser retrieves one account on behalf of a superuser
func (s *UserService) GetUser(ctx context.Context, actingUserID, id uuid.UUID) (*UserResponse, error) {
	if err := s.requireSuperuser(ctx, actingUserID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// DeleteUser removes an account on behalf of a superuser. A superuser
// can never delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, actingUserID, targetID uuid.UUID) error {
	if err := s.requireSuperuser(ctx, actingUserID); err != nil {
		return err
	}

	if actingUserID == targetID {
		return shared.NewDomainError("INVALID_INPUT", "You cannot delete your own account")
	}

	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

// EnsureAdmin creates the initial superuser when it does not exist
// yet. Called once at startup with credentials from configuration.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	admin, err := identity.NewUser(username, "", hash, true)
	if err != nil {
		return err
	}
	return s.userRepo.Save(ctx, admin)
}

func (s *UserService) requireSuperuser(ctx context.Context, actingUserID uuid.UUID) error {
	acting, err := s.userRepo.FindByID(ctx, actingUserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrForbidden
		}
		return err
	}
	if !acting.Active || !acting.Superuser {
		return shared.ErrForbidden
	}
	return nil
}
