package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/vidtube/user-service/internal/core/domain"
	"github.com/vidtube/user-service/internal/core/ports"
)

// TokenService implements ports.TokenIssuer. It signs an HS256 access/refresh
// pair for a user and stores the refresh token on the record, overwriting
// whatever was there before.
//
// Every internal failure on this path (lookup, signing, persistence) is
// collapsed into domain.ErrTokenGeneration: the caller is already
// authenticated, so the root cause is logged here rather than exposed.
type TokenService struct {
	repo       ports.UserRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewTokenService(repo ports.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 10 * 24 * time.Hour
	}
	return &TokenService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *TokenService) Issue(ctx context.Context, userID string) (domain.TokenPair, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("token issuance: user lookup failed")
		return domain.TokenPair{}, domain.ErrTokenGeneration
	}

	accessToken, err := s.signAccessToken(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("token issuance: access token signing failed")
		return domain.TokenPair{}, domain.ErrTokenGeneration
	}

	refreshToken, err := s.signRefreshToken(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("token issuance: refresh token signing failed")
		return domain.TokenPair{}, domain.ErrTokenGeneration
	}

	if err := s.repo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("token issuance: refresh token persistence failed")
		return domain.TokenPair{}, domain.ErrTokenGeneration
	}

	return domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *TokenService) signAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *TokenService) signRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
