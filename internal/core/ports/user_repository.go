package ports

import (
	"context"

	"github.com/vidtube/user-service/internal/core/domain"
)

// UserRepository defines the interface for user persistence. The store owns
// uniqueness: Create returns domain.ErrUserExists when username or email
// collide, and lookups return domain.ErrUserNotFound on a miss.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindSanitizedByID fetches the record with the secret fields projected
	// out at the store, so they never reach the caller.
	FindSanitizedByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	// SetRefreshToken overwrites the single stored refresh token. A
	// single-field update: no full-record validation runs.
	SetRefreshToken(ctx context.Context, id, token string) error
	// ClearRefreshToken removes the stored refresh token entirely.
	ClearRefreshToken(ctx context.Context, id string) error
}
