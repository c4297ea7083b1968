package repository

import (
	"context"
	"strings"
	"time"

	"cryptoboard/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	Email              string     `gorm:"column:email;uniqueIndex"`
	PasswordHash       string     `gorm:"column:password_hash"`
	Name               string     `gorm:"column:name"`
	RefreshTokenHash   *string    `gorm:"column:refresh_token_hash;index"`
	RefreshTokenExpiry *time.Time `gorm:"column:refresh_token_expiry"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                 m.ID,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Name:               m.Name,
		RefreshTokenHash:   m.RefreshTokenHash,
		RefreshTokenExpiry: m.RefreshTokenExpiry,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:                 u.ID,
		Email:              strings.TrimSpace(strings.ToLower(u.Email)),
		PasswordHash:       u.PasswordHash,
		Name:               u.Name,
		RefreshTokenHash:   u.RefreshTokenHash,
		RefreshTokenExpiry: u.RefreshTokenExpiry,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// GetByRefreshTokenHash finds the user whose stored refresh token hash matches.
// Possession of the matching plaintext is the sole refresh credential.
func (r *UserRepository) GetByRefreshTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("refresh_token_hash = ?", hash).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

// SetRefreshToken overwrites the user's refresh token state. The previous
// token, if any, stops being recognized as soon as this commits.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, hash string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"refresh_token_hash":   hash,
			"refresh_token_expiry": expiry,
		}).Error
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"refresh_token_hash":   nil,
			"refresh_token_expiry": nil,
		}).Error
}

// ClearExpiredRefreshTokens is used by the cleanup binary; the handlers
// themselves only purge lazily, when an expired token is presented.
func (r *UserRepository) ClearExpiredRefreshTokens(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("refresh_token_expiry IS NOT NULL AND refresh_token_expiry < ?", now).
		Updates(map[string]any{
			"refresh_token_hash":   nil,
			"refresh_token_expiry": nil,
		})
	return tx.RowsAffected, tx.Error
}
