package ports

import (
	"context"
	"io"

	"github.com/vidtube/user-service/internal/core/domain"
)

// FileUpload is a file received from the transport layer, ready to be
// streamed to the media store.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// RegisterInput carries the registration form fields plus the uploaded
// images. Avatar is required; CoverImage may be nil.
type RegisterInput struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *FileUpload
	CoverImage *FileUpload
}

// LoginInput carries login credentials. Username and email are
// alternatives: the lookup matches either.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is the successful login payload: the sanitized user plus the
// issued token pair.
type LoginResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// UserService orchestrates registration and the session lifecycle.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

// TokenIssuer mints an access/refresh pair for a user identity and persists
// the refresh token on the record.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (domain.TokenPair, error)
}

// PasswordHasher abstracts password hashing so the algorithm is swappable.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
