package ports

import (
	"context"
	"time"

	"github.com/dinith-rusiru/internExam1/internal/core/domain"
)

type AuthService interface {
	// Register creates an account and returns a signed token for it.
	// callerRole is the role of the authenticated caller, if any; creating an
	// admin account requires an admin caller.
	Register(ctx context.Context, name, email, password, role, callerRole string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Identify resolves the user behind a validated token ("who am I").
	Identify(ctx context.Context, userID string) (*domain.User, error)
}

// TokenDenylist records revoked token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
