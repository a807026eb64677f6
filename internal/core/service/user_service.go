package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidtube/user-service/internal/core/domain"
	"github.com/vidtube/user-service/internal/core/ports"
)

// ProfileCache abstracts the sanitized-profile cache (Redis).
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}

type userService struct {
	repo     ports.UserRepository
	uploader ports.MediaUploader
	tokens   ports.TokenIssuer
	hasher   ports.PasswordHasher
	cache    ProfileCache
	log      zerolog.Logger
}

// NewUserService returns a ports.UserService implementation. The cache is
// optional; when nil every profile read goes to the store.
func NewUserService(
	repo ports.UserRepository,
	uploader ports.MediaUploader,
	tokens ports.TokenIssuer,
	hasher ports.PasswordHasher,
	cache ProfileCache,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		repo:     repo,
		uploader: uploader,
		tokens:   tokens,
		hasher:   hasher,
		cache:    cache,
		log:      log,
	}
}

// Register creates an account:
//  1. all four text fields must be non-empty,
//  2. username/email must not collide with an existing record,
//  3. the avatar file is mandatory and must upload to a usable URL,
//  4. a cover image upload failure is tolerated; the account is created
//     without one,
//  5. the created record is re-fetched sanitized before being returned.
func (s *userService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := validateRegisterFields(in); err != nil {
		return nil, err
	}

	username := strings.ToLower(in.Username)

	// Duplicate check runs before any upload so a conflicting request never
	// touches the media store.
	if _, err := s.repo.FindByUsernameOrEmail(ctx, username, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if err != domain.ErrUserNotFound {
		return nil, err
	}

	if in.Avatar == nil {
		return nil, domain.Validation("avatar file is required")
	}

	avatarURL, err := s.uploader.Upload(ctx, in.Avatar)
	if err != nil || avatarURL == "" {
		s.log.Error().Err(err).Str("username", username).Msg("avatar upload failed")
		return nil, domain.ErrUploadFailed
	}

	coverImageURL := ""
	if in.CoverImage != nil {
		coverImageURL, err = s.uploader.Upload(ctx, in.CoverImage)
		if err != nil {
			// Cover image is optional: proceed without it.
			s.log.Warn().Err(err).Str("username", username).Msg("cover image upload failed, continuing without")
			coverImageURL = ""
		}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:      username,
		Email:         in.Email,
		FullName:      in.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		PasswordHash:  hash,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	sanitized, err := s.repo.FindSanitizedByID(ctx, created.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("created user re-fetch failed")
		return nil, domain.ErrUserCreation
	}

	return sanitized, nil
}

// Login authenticates by username or email. The request is rejected only
// when both identifiers are absent: supplying either one is enough for the
// lookup, which matches on whichever is present.
func (s *userService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.Username == "" && in.Email == "" {
		return nil, domain.Validation("username or email is required")
	}

	user, err := s.repo.FindByUsernameOrEmail(ctx, strings.ToLower(in.Username), in.Email)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sanitized, err := s.repo.FindSanitizedByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{User: sanitized, Tokens: tokens}, nil
}

// Logout invalidates the caller's session by removing the stored refresh
// token. Cookie clearing is the transport layer's job.
func (s *userService) Logout(ctx context.Context, userID string) error {
	return s.repo.ClearRefreshToken(ctx, userID)
}

// CurrentUser returns the sanitized record of an authenticated caller,
// served from the profile cache when possible.
func (s *userService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		user, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		} else if user != nil {
			return user, nil
		}
	}

	user, err := s.repo.FindSanitizedByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return user, nil
}

func validateRegisterFields(in ports.RegisterInput) error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return domain.Validation("fullName is required")
	case strings.TrimSpace(in.Email) == "":
		return domain.Validation("email is required")
	case strings.TrimSpace(in.Username) == "":
		return domain.Validation("username is required")
	case in.Password == "":
		return domain.Validation("password is required")
	}
	return nil
}
