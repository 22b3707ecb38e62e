package ports

import (
	"context"

	"github.com/dinith-rusiru/internExam1/internal/core/domain"
)

// UserRepository defines the persistence operations for user accounts.
type UserRepository interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteByID removes the user if present. Deleting an id that does not
	// exist is not an error.
	DeleteByID(ctx context.Context, id string) error
}
