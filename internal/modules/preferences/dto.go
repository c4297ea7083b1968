package preferences

type SaveRequest struct {
	ExperienceLevel string   `json:"experience_level" binding:"required,oneof=beginner intermediate advanced"`
	RiskTolerance   string   `json:"risk_tolerance" binding:"required,oneof=low moderate high"`
	InvestmentGoals []string `json:"investment_goals" binding:"required,min=1"`
	FavoriteCryptos []string `json:"favorite_cryptos" binding:"required,min=1"`
	ContentTypes    []string `json:"content_types"`
}

type PreferencesResponse struct {
	ExperienceLevel string   `json:"experience_level"`
	RiskTolerance   string   `json:"risk_tolerance"`
	InvestmentGoals []string `json:"investment_goals"`
	FavoriteCryptos []string `json:"favorite_cryptos"`
	ContentTypes    []string `json:"content_types"`
}
