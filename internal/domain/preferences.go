package domain

import "time"

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

type RiskTolerance string

const (
	RiskLow      RiskTolerance = "low"
	RiskModerate RiskTolerance = "moderate"
	RiskHigh     RiskTolerance = "high"
)

// Preferences drive what the dashboard aggregates for a user.
type Preferences struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	RiskTolerance   RiskTolerance   `json:"risk_tolerance"`
	InvestmentGoals []string        `json:"investment_goals"`
	FavoriteCryptos []string        `json:"favorite_cryptos"`
	ContentTypes    []string        `json:"content_types"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
