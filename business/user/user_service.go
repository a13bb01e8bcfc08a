package user

import (
	"context"
	"fmt"

	"agrilink/domain"
	"agrilink/pkg/logger"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByRole(ctx context.Context, role string) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", err)
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUsersByRole(ctx context.Context, role string) ([]domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidArgument, role)
	}
	return s.userRepo.FindByRole(ctx, role)
}

type UpdateProfileInput struct {
	Name              string
	Location          string
	PreferredLanguage string
	Role              string
}

// UpdateProfile edits a profile. Only the account owner or an admin may
// edit, and only admins may change roles.
func (s *userService) UpdateProfile(ctx context.Context, identity domain.Identity, id uint, input UpdateProfileInput) (domain.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if !identity.OwnerOrAdmin(existing.ID) {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrForbidden)
	}

	if input.Name != "" {
		existing.Name = input.Name
	}
	if input.Location != "" {
		existing.Location = input.Location
	}
	if input.PreferredLanguage != "" {
		if !domain.ValidLanguage(input.PreferredLanguage) {
			return domain.User{}, fmt.Errorf("%w: invalid language %q", domain.ErrInvalidArgument, input.PreferredLanguage)
		}
		existing.PreferredLanguage = input.PreferredLanguage
	}
	if input.Role != "" && input.Role != existing.Role {
		if !identity.IsAdmin() {
			return domain.User{}, fmt.Errorf("role change: %w", domain.ErrForbidden)
		}
		if !domain.ValidRole(input.Role) {
			return domain.User{}, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidArgument, input.Role)
		}
		existing.Role = input.Role
	}

	if err := s.userRepo.Update(ctx, &existing); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	return existing, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", err)
		return err
	}

	return nil
}
