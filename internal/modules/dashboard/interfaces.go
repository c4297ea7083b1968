package dashboard

import (
	"context"

	"cryptoboard/internal/domain"
)

// PreferencesReader is the slice of the preferences repository the dashboard
// needs. A missing row is reported as gorm.ErrRecordNotFound, not an error
// condition here.
type PreferencesReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error)
}

// MarketClient fetches current market data for the given symbols.
type MarketClient interface {
	TopCoins(ctx context.Context, limit int, favorites []string) ([]Crypto, error)
}

type NewsClient interface {
	LatestNews(ctx context.Context, limit int) ([]NewsArticle, error)
}

type MemeProvider interface {
	TrendingMemes(ctx context.Context, limit int) ([]Meme, error)
}

// AIClient produces the advisor blurb from preferences plus market data.
type AIClient interface {
	Analyze(ctx context.Context, prefs *domain.Preferences, market []Crypto) (string, error)
}

// MarketCache stores market sections keyed by favorites set. A miss is
// (nil, nil), matching the redis convention.
type MarketCache interface {
	Get(ctx context.Context, key string) ([]Crypto, error)
	Set(ctx context.Context, key string, coins []Crypto) error
}
