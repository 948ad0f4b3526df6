package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-blog-api/internal/auth"
	"go-blog-api/internal/model"
)

// UserStore is the persistence surface the auth flow needs. The pgx-backed
// repository satisfies it; tests substitute an in-memory fake.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token string) error
	RefreshTokenMatches(ctx context.Context, userID int64, token string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

type AuthService struct {
	codec *auth.Codec
	users UserStore
}

func NewAuthService(codec *auth.Codec, users UserStore) *AuthService {
	return &AuthService{codec: codec, users: users}
}

// Login verifies the credential and issues a fresh token pair. An unknown
// username and a wrong password are indistinguishable to the caller, and a
// failed login writes nothing.
func (s *AuthService) Login(ctx context.Context, username string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.TokenPair{}, fmt.Errorf("login lookup: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := s.issueAndRecord(ctx, user.ID)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return model.TokenPair{}, fmt.Errorf("record last login: %w", err)
	}

	return pair, nil
}

// Refresh exchanges a refresh token for a new pair, rotating the stored
// value. A given refresh token exchanges successfully at most once; the
// second attempt with the same value fails as revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, model.ErrTokenExpired) {
			return model.TokenPair{}, model.ErrTokenExpired
		}
		return model.TokenPair{}, model.ErrInvalidToken
	}

	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.TokenPair{}, model.ErrInvalidToken
		}
		return model.TokenPair{}, fmt.Errorf("refresh lookup: %w", err)
	}

	matches, err := s.users.RefreshTokenMatches(ctx, claims.UserID, refreshToken)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("refresh token match: %w", err)
	}
	if !matches {
		// Covers both "never issued" and "already rotated away".
		return model.TokenPair{}, model.ErrTokenRevoked
	}

	return s.issueAndRecord(ctx, claims.UserID)
}

// Logout forgets the user's stored refresh token. Outstanding access
// tokens stay valid until expiry; only the refresh path is cut.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// issueAndRecord mints the full pair before any write so that a persistence
// failure never leaves a half-issued session behind.
func (s *AuthService) issueAndRecord(ctx context.Context, userID int64) (model.TokenPair, error) {
	pair, err := s.codec.IssuePair(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue token pair: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, userID, pair.RefreshToken); err != nil {
		return model.TokenPair{}, fmt.Errorf("record refresh token: %w", err)
	}

	return pair, nil
}
