package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"cryptoboard/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for the session protocol.
type Service struct {
	users  UserRepositoryInterface
	tokens TokenServiceInterface
}

func NewService(users UserRepositoryInterface, tokens TokenServiceInterface) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
	}
}

// Register creates the user and opens a session in one step: the new row is
// persisted already carrying the refresh-token hash, so a freshly registered
// user can call protected endpoints with zero extra round trips.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	refreshRaw, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, nil, err
	}
	refreshHash := s.tokens.HashRefreshToken(refreshRaw)
	refreshExpiry := s.tokens.RefreshExpiry()

	user := &domain.User{
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:       hashedPassword,
		Name:               strings.TrimSpace(req.Name),
		RefreshTokenHash:   &refreshHash,
		RefreshTokenExpiry: &refreshExpiry,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

// Login verifies credentials and rotates the refresh token. The overwrite
// silently invalidates any other active session for the same user; the loser
// of that race simply has to authenticate again.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Uniform failure: never reveal whether the email exists.
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	refreshRaw, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, nil, err
	}
	refreshHash := s.tokens.HashRefreshToken(refreshRaw)
	refreshExpiry := s.tokens.RefreshExpiry()

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshHash, refreshExpiry); err != nil {
		return nil, nil, err
	}
	user.RefreshTokenHash = &refreshHash
	user.RefreshTokenExpiry = &refreshExpiry

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshRaw}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is NOT rotated: the same value stays usable until its
// original expiry or until a later login replaces it.
//
// Expired tokens are purged lazily, right here when presented; a second
// attempt with the same token then fails as unrecognized rather than expired.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*domain.User, string, error) {
	hash := s.tokens.HashRefreshToken(refreshRaw)

	user, err := s.users.GetByRefreshTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidRefreshToken
		}
		return nil, "", err
	}

	if user.RefreshTokenExpiry == nil || time.Now().After(*user.RefreshTokenExpiry) {
		if err := s.users.ClearRefreshToken(ctx, user.ID); err != nil {
			return nil, "", err
		}
		return nil, "", ErrRefreshTokenExpired
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, accessToken, nil
}

// Logout revokes the presented refresh token server-side when it is
// recognized. Unknown or absent tokens are not an error: logout never fails
// the caller.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	if refreshRaw == "" {
		return nil
	}

	hash := s.tokens.HashRefreshToken(refreshRaw)
	user, err := s.users.GetByRefreshTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return s.users.ClearRefreshToken(ctx, user.ID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
