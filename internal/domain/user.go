package domain

import "time"

// User holds the credential record plus the single active refresh token.
//
// Security notes:
// - We never store the raw refresh token, only its SHA-256 hash.
// - A user has at most one live refresh token: register/login/refresh overwrite
//   the stored hash, which immediately invalidates whatever was there before.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email" validate:"required,email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`

	RefreshTokenHash   *string    `json:"-"`
	RefreshTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasActiveRefreshToken reports whether the user carries an unexpired refresh token.
func (u *User) HasActiveRefreshToken(now time.Time) bool {
	return u.RefreshTokenHash != nil && u.RefreshTokenExpiry != nil && now.Before(*u.RefreshTokenExpiry)
}
