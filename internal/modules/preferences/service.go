package preferences

import (
	"context"
	"errors"

	"cryptoboard/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	repo PreferencesRepositoryInterface
}

func NewService(repo PreferencesRepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.Preferences, error) {
	prefs, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return prefs, nil
}

// Save upserts the full preferences document. Partial updates are not
// supported: every save replaces all fields, matching the onboarding flow
// which always submits the complete form.
func (s *Service) Save(ctx context.Context, userID int64, req SaveRequest) (*domain.Preferences, error) {
	contentTypes := req.ContentTypes
	if contentTypes == nil {
		contentTypes = []string{}
	}

	prefs := &domain.Preferences{
		UserID:          userID,
		ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
		RiskTolerance:   domain.RiskTolerance(req.RiskTolerance),
		InvestmentGoals: req.InvestmentGoals,
		FavoriteCryptos: req.FavoriteCryptos,
		ContentTypes:    contentTypes,
	}

	if err := s.repo.Upsert(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
