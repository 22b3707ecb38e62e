package service

import (
	"context"
	"time"

	"github.com/dinith-rusiru/internExam1/internal/core/domain"
	"github.com/dinith-rusiru/internExam1/internal/core/ports"
)

// UserService implements the admin user management operations.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Update(ctx context.Context, callerID, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Role != nil {
		if !domain.ValidRole(*patch.Role) {
			return nil, domain.ErrInvalidRole
		}
		// Callers may not change their own role. Re-asserting the current
		// role is not a change.
		if id == callerID && *patch.Role != user.Role {
			return nil, domain.ErrSelfAction
		}
		user.Role = *patch.Role
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if id == callerID {
		return domain.ErrSelfAction
	}
	// Deleting an id that no longer exists is treated as success, matching the
	// store's delete-if-exists semantics.
	return s.repo.DeleteByID(ctx, id)
}
