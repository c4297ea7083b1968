package preferences

import (
	"context"

	"cryptoboard/internal/domain"
)

type PreferencesRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error)
	Upsert(ctx context.Context, p *domain.Preferences) error
}
