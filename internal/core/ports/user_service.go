package ports

import (
	"context"

	"github.com/dinith-rusiru/internExam1/internal/core/domain"
)

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	// Update applies patch to the user with the given id. callerID is the
	// authenticated caller; changing one's own role is rejected.
	Update(ctx context.Context, callerID, id string, patch domain.UserPatch) (*domain.User, error)
	// Delete removes the user with the given id. Deleting one's own account is
	// rejected; deleting an unknown id succeeds.
	Delete(ctx context.Context, callerID, id string) error
}
