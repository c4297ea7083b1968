package repository

import (
	"context"
	"time"

	"cryptoboard/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

type preferencesModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	UserID          int64     `gorm:"column:user_id;uniqueIndex;not null"`
	ExperienceLevel string    `gorm:"column:experience_level;not null"`
	RiskTolerance   string    `gorm:"column:risk_tolerance;not null"`
	InvestmentGoals []string  `gorm:"column:investment_goals;serializer:json;type:json"`
	FavoriteCryptos []string  `gorm:"column:favorite_cryptos;serializer:json;type:json"`
	ContentTypes    []string  `gorm:"column:content_types;serializer:json;type:json"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (preferencesModel) TableName() string { return "preferences" }

func toDomainPreferences(m preferencesModel) *domain.Preferences {
	return &domain.Preferences{
		ID:              m.ID,
		UserID:          m.UserID,
		ExperienceLevel: domain.ExperienceLevel(m.ExperienceLevel),
		RiskTolerance:   domain.RiskTolerance(m.RiskTolerance),
		InvestmentGoals: m.InvestmentGoals,
		FavoriteCryptos: m.FavoriteCryptos,
		ContentTypes:    m.ContentTypes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toPreferencesModel(p *domain.Preferences) preferencesModel {
	return preferencesModel{
		ID:              p.ID,
		UserID:          p.UserID,
		ExperienceLevel: string(p.ExperienceLevel),
		RiskTolerance:   string(p.RiskTolerance),
		InvestmentGoals: p.InvestmentGoals,
		FavoriteCryptos: p.FavoriteCryptos,
		ContentTypes:    p.ContentTypes,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error) {
	var m preferencesModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPreferences(m), nil
}

// Upsert creates the row on first save and replaces all fields on subsequent saves.
func (r *PreferencesRepository) Upsert(ctx context.Context, p *domain.Preferences) error {
	m := toPreferencesModel(p)
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"experience_level", "risk_tolerance", "investment_goals",
			"favorite_cryptos", "content_types", "updated_at",
		}),
	}).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPreferences(m)
	return nil
}
