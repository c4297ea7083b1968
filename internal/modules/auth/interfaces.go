package auth

import (
	"context"
	"time"

	"cryptoboard/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, userID int64, hash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID int64) error
}

// TokenServiceInterface — issued/verified credentials, mockable in tests
type TokenServiceInterface interface {
	GenerateAccessToken(userID int64) (string, error)
	GenerateRefreshToken() (string, error)
	HashRefreshToken(raw string) string
	RefreshExpiry() time.Time
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}
